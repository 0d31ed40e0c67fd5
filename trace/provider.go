package trace

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"

	"github.com/jonwraymond/otelcore/resource"
)

// resourceSetter is implemented by Processors that need the late-bound
// Resource forwarded to their Exporter once the TracerProvider is built.
type resourceSetter interface {
	setResource(*resource.Resource)
}

// tracerProviderInner is the shared state behind every TracerProvider
// handle and every Tracer it vends. It never changes after Build, except
// for isShutdown.
type tracerProviderInner struct {
	resource    *resource.Resource
	processors  []Processor
	sampler     Sampler
	idGenerator IdGenerator
	limits      SpanLimits
	isShutdown  atomic.Bool
}

// TracerProvider owns a Resource and an ordered list of Processors, and
// vends Tracer handles scoped by InstrumentationScope. Safe for
// concurrent use; cheap to share since it is a handle around shared
// state, not a copy of it.
type TracerProvider struct {
	inner *tracerProviderInner
}

// TracerProviderBuilder builds a TracerProvider via a fluent chain of
// With* calls, finished with Build.
type TracerProviderBuilder struct {
	resource    *resource.Resource
	processors  []Processor
	sampler     Sampler
	idGenerator IdGenerator
	limits      SpanLimits
}

// NewTracerProviderBuilder returns an empty builder; Build fills in
// defaults for anything left unset.
func NewTracerProviderBuilder() *TracerProviderBuilder {
	return &TracerProviderBuilder{limits: DefaultSpanLimits}
}

// WithResource sets the Resource describing the producing entity.
// Default: resource.Default().
func (b *TracerProviderBuilder) WithResource(r *resource.Resource) *TracerProviderBuilder {
	b.resource = r
	return b
}

// WithSpanProcessor registers a Processor. Processors run in
// registration order for OnStart/OnEnd/ForceFlush/Shutdown.
func (b *TracerProviderBuilder) WithSpanProcessor(p Processor) *TracerProviderBuilder {
	b.processors = append(b.processors, p)
	return b
}

// WithSampler sets the Sampler consulted at span start. Default:
// ParentBased(AlwaysOnSampler()).
func (b *TracerProviderBuilder) WithSampler(s Sampler) *TracerProviderBuilder {
	b.sampler = s
	return b
}

// WithIDGenerator sets the IdGenerator used for new traces/spans.
// Default: NewRandomIDGenerator().
func (b *TracerProviderBuilder) WithIDGenerator(g IdGenerator) *TracerProviderBuilder {
	b.idGenerator = g
	return b
}

// WithSpanLimits overrides the per-span attribute/event/link caps.
// Default: DefaultSpanLimits.
func (b *TracerProviderBuilder) WithSpanLimits(l SpanLimits) *TracerProviderBuilder {
	b.limits = l
	return b
}

// Build finalizes the TracerProvider. The Resource is propagated to
// every registered Processor that accepts one before the first span can
// be started.
func (b *TracerProviderBuilder) Build() *TracerProvider {
	res := b.resource
	if res == nil {
		res = resource.Default()
	}
	sampler := b.sampler
	if sampler == nil {
		sampler = ParentBased(AlwaysOnSampler())
	}
	idGen := b.idGenerator
	if idGen == nil {
		idGen = NewRandomIDGenerator()
	}
	limits := b.limits
	if limits == (SpanLimits{}) {
		limits = DefaultSpanLimits
	}

	inner := &tracerProviderInner{
		resource:    res,
		processors:  append([]Processor(nil), b.processors...),
		sampler:     sampler,
		idGenerator: idGen,
		limits:      limits,
	}
	for _, p := range inner.processors {
		if rs, ok := p.(resourceSetter); ok {
			rs.setResource(res)
		}
	}

	tp := &TracerProvider{inner: inner}
	// Best-effort safety net: if every handle to tp is dropped without an
	// explicit Shutdown, run one on its behalf so processors still flush
	// and release their exporters. This is not a substitute for calling
	// Shutdown: it only runs when the garbage collector happens to reclaim
	// tp, which is unspecified timing, never a calling-convention guarantee.
	runtime.AddCleanup(tp, func(inner *tracerProviderInner) {
		if inner.isShutdown.CompareAndSwap(false, true) {
			for _, p := range inner.processors {
				p.Shutdown(context.Background())
			}
		}
	}, inner)
	return tp
}

// Resource returns the Resource shared by every Tracer and Span this
// provider produces.
func (tp *TracerProvider) Resource() *resource.Resource {
	return tp.inner.resource
}

// TracerOption configures a Tracer obtained from TracerProvider.Tracer.
type TracerOption func(*InstrumentationScope)

// WithInstrumentationVersion sets the instrumenting library's version.
func WithInstrumentationVersion(v string) TracerOption {
	return func(s *InstrumentationScope) { s.Version = v }
}

// WithSchemaURL sets the semantic-convention schema URL the
// instrumenting library conforms to.
func WithSchemaURL(url string) TracerOption {
	return func(s *InstrumentationScope) { s.SchemaURL = url }
}

// WithScopeAttributes attaches attributes to the InstrumentationScope
// itself.
func WithScopeAttributes(attrs ...KeyValue) TracerOption {
	return func(s *InstrumentationScope) { s.Attributes = append(s.Attributes, attrs...) }
}

// Tracer returns a Tracer scoped to the named instrumenting library.
// Valid before and after Shutdown: after shutdown, the returned Tracer's
// Start always yields a no-op Span.
func (tp *TracerProvider) Tracer(name string, opts ...TracerOption) Tracer {
	scope := InstrumentationScope{Name: name}
	for _, opt := range opts {
		opt(&scope)
	}
	return &tracerImpl{scope: scope, inner: tp.inner}
}

// Shutdown shuts down every registered Processor in registration order,
// collecting (not short-circuiting on) individual failures. It is
// idempotent: the first caller to observe isShutdown transition from
// false to true drives shutdown and returns its aggregate result; every
// later call returns ErrAlreadyShutdown immediately.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if !tp.inner.isShutdown.CompareAndSwap(false, true) {
		return ErrAlreadyShutdown
	}
	var errs []error
	for _, p := range tp.inner.processors {
		if err := p.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ForceFlush flushes every registered Processor, succeeding only if all
// of them succeed; failures from individual processors are collected and
// joined rather than causing an early return.
func (tp *TracerProvider) ForceFlush(ctx context.Context) error {
	var errs []error
	for _, p := range tp.inner.processors {
		if err := p.ForceFlush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
