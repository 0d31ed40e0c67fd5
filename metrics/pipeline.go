package metrics

import (
	"context"
	"sync"

	"github.com/jonwraymond/otelcore/resource"
	"github.com/jonwraymond/otelcore/trace"
)

// ScopeMetrics groups every Metric collected for one InstrumentationScope.
type ScopeMetrics struct {
	Scope   trace.InstrumentationScope
	Metrics []Metric
}

// Metric is one named StreamId's collected data points.
type Metric struct {
	StreamId StreamId
	Points   []DataPoint
}

// ResourceMetrics is a single collection pass's output: every
// ScopeMetrics observed by the pipeline, alongside the Resource
// describing the producing entity.
type ResourceMetrics struct {
	Resource     *resource.Resource
	ScopeMetrics []ScopeMetrics
}

// Reader drives collection: Pipeline.Collect calls every registered
// observable callback, then gathers each aggregator's current data
// points.
type Reader interface {
	// Collect triggers one collection pass over pipeline and returns its
	// ResourceMetrics.
	Collect(ctx context.Context, pipeline *Pipeline) (ResourceMetrics, error)
}

// Callback is registered against an asynchronous (Observable*)
// instrument; Pipeline.Collect invokes it once per collection pass
// before gathering that instrument's data points.
type Callback func(ctx context.Context) error

// Instrument is the handle CreateInstrument returns: a synchronous
// instrument's Record routes a measurement to every aggregator its
// descriptor resolved to (one per matching, non-dropped View).
type Instrument struct {
	aggs []aggregator
}

// Record routes value to every aggregator this instrument resolved to.
// A Counter/UpDownCounter calls this "Add"; a Histogram calls it
// "Record" — same underlying routing either way.
func (i *Instrument) Record(value float64, attrs ...trace.KeyValue) {
	for _, a := range i.aggs {
		a.record(value, attrs)
	}
}

// Pipeline associates a Resource and Resolver (built from a View list)
// with a set of aggregators shared across instruments that resolve to
// the same StreamId.
type Pipeline struct {
	mu        sync.Mutex
	resource  *resource.Resource
	resolver  *Resolver
	reader    Reader
	aggs      map[StreamId]aggregator
	scopes    map[string][]InstrumentSync
	callbacks []scopedCallback
}

type scopedCallback struct {
	scope trace.InstrumentationScope
	fn    Callback
}

// NewPipeline builds a Pipeline over res, reporting through reader, with
// instruments routed through views (see Resolver).
func NewPipeline(res *resource.Resource, reader Reader, log DiagnosticLogger, views ...View) *Pipeline {
	if res == nil {
		res = resource.Default()
	}
	return &Pipeline{
		resource: res,
		resolver: NewResolver(log, views...),
		reader:   reader,
		aggs:     make(map[StreamId]aggregator),
		scopes:   make(map[string][]InstrumentSync),
	}
}

// CreateInstrument resolves desc against the pipeline's views, caches
// (or reuses) an aggregator per distinct StreamId, and returns a handle
// synchronous instruments call Record through.
//
// Steps mirror the pipeline sketch: resolve views, compute StreamId,
// reuse a cached aggregator across views/registrations of the same
// stream, skip incompatible-or-dropped resolutions, and track the
// result in the owning scope's InstrumentSync list.
func (p *Pipeline) CreateInstrument(desc InstrumentDescriptor, numberKind NumberKind, temporality Temporality) *Instrument {
	p.mu.Lock()
	defer p.mu.Unlock()

	syncs := p.resolver.Resolve(desc, numberKind, temporality)
	p.scopes[desc.Scope.Name] = append(p.scopes[desc.Scope.Name], syncs...)

	inst := &Instrument{}
	for _, s := range syncs {
		if s.Skipped {
			continue
		}
		agg, ok := p.aggs[s.StreamId]
		if !ok {
			agg = newAggregator(s.StreamId.Aggregation)
			p.aggs[s.StreamId] = agg
		}
		inst.aggs = append(inst.aggs, agg)
	}
	return inst
}

// RegisterCallback registers fn to run, scoped to scope, on every
// Collect pass — the hook asynchronous (Observable*) instruments use to
// report their current value.
func (p *Pipeline) RegisterCallback(scope trace.InstrumentationScope, fn Callback) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callbacks = append(p.callbacks, scopedCallback{scope: scope, fn: fn})
}

// runCallbacks invokes every registered callback in registration order,
// continuing past failures, and returns the first error encountered.
func (p *Pipeline) runCallbacks(ctx context.Context) error {
	p.mu.Lock()
	callbacks := append([]scopedCallback(nil), p.callbacks...)
	p.mu.Unlock()

	var firstErr error
	for _, c := range callbacks {
		if err := c.fn(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// collect runs every registered callback, then snapshots every
// aggregator's current data points into a ResourceMetrics, grouped by
// the scope that created each StreamId.
func (p *Pipeline) collect(ctx context.Context) (ResourceMetrics, error) {
	cbErr := p.runCallbacks(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	rm := ResourceMetrics{Resource: p.resource}
	for scopeName, syncs := range p.scopes {
		var scope trace.InstrumentationScope
		seen := make(map[StreamId]bool)
		var metrics []Metric
		for _, s := range syncs {
			if s.Skipped || seen[s.StreamId] {
				continue
			}
			seen[s.StreamId] = true
			scope = s.Descriptor.Scope
			if agg, ok := p.aggs[s.StreamId]; ok {
				metrics = append(metrics, Metric{StreamId: s.StreamId, Points: agg.collect()})
			}
		}
		if len(metrics) == 0 {
			continue
		}
		if scope.Name == "" {
			scope.Name = scopeName
		}
		rm.ScopeMetrics = append(rm.ScopeMetrics, ScopeMetrics{Scope: scope, Metrics: metrics})
	}
	return rm, cbErr
}

// Collect triggers one collection pass. If the Pipeline was built with
// a Reader, Reader.Collect drives it (so a Reader can add its own
// pre/post-processing); otherwise the Pipeline collects directly.
func (p *Pipeline) Collect(ctx context.Context) (ResourceMetrics, error) {
	if p.reader != nil {
		return p.reader.Collect(ctx, p)
	}
	return p.collect(ctx)
}

// Streams exposes the resolver's distinct StreamId set, for tests and
// diagnostics.
func (p *Pipeline) Streams() []StreamId {
	return p.resolver.Streams()
}
