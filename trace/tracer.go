package trace

import (
	"context"
	"time"
)

// Tracer starts Spans scoped to one InstrumentationScope. Obtained from
// TracerProvider.Tracer; safe for concurrent use.
type Tracer interface {
	// Start creates a Span as a child of the span (if any) found in ctx,
	// returning a new context carrying it. The returned Span must be
	// ended exactly once with End.
	Start(ctx context.Context, name string, opts ...SpanStartOption) (context.Context, Span)
}

// spanConfig accumulates SpanStartOption settings.
type spanConfig struct {
	kind    SpanKind
	attrs   []KeyValue
	links   []Link
	newRoot bool
}

// SpanStartOption configures a single Tracer.Start call.
type SpanStartOption func(*spanConfig)

// WithSpanKind sets the new span's kind. Default: SpanKindInternal.
func WithSpanKind(kind SpanKind) SpanStartOption {
	return func(c *spanConfig) { c.kind = kind }
}

// WithAttributes sets attributes present on the span from creation.
func WithAttributes(attrs ...KeyValue) SpanStartOption {
	return func(c *spanConfig) { c.attrs = append(c.attrs, attrs...) }
}

// WithLinks attaches links present on the span from creation.
func WithLinks(links ...Link) SpanStartOption {
	return func(c *spanConfig) { c.links = append(c.links, links...) }
}

// WithNewRoot starts a new trace even if ctx carries a valid parent
// span, instead of becoming a child of it.
func WithNewRoot() SpanStartOption {
	return func(c *spanConfig) { c.newRoot = true }
}

// tracerImpl is the concrete Tracer. It holds no state of its own beyond
// its scope and a pointer to the shared provider state, so vending many
// Tracers from one TracerProvider is cheap.
type tracerImpl struct {
	scope InstrumentationScope
	inner *tracerProviderInner
}

var _ Tracer = (*tracerImpl)(nil)

func (t *tracerImpl) Start(ctx context.Context, name string, opts ...SpanStartOption) (context.Context, Span) {
	if t.inner.isShutdown.Load() {
		sp := noopSpan{}
		return ContextWithSpan(ctx, sp), sp
	}

	cfg := spanConfig{kind: SpanKindInternal}
	for _, opt := range opts {
		opt(&cfg)
	}

	parent := SpanFromContext(ctx).SpanContext()
	if cfg.newRoot {
		parent = SpanContext{}
	}

	var traceID TraceID
	var spanID SpanID
	var parentSpanID SpanID

	if parent.IsValid() {
		traceID = parent.TraceID()
		spanID = t.inner.idGenerator.NewSpanID(ctx, traceID)
		parentSpanID = parent.SpanID()
	} else {
		traceID, spanID = t.inner.idGenerator.NewIDs(ctx)
	}
	state := parent.TraceState()

	result := t.inner.sampler.ShouldSample(SamplingParameters{
		ParentContext: parent,
		TraceID:       traceID,
		Name:          name,
		Kind:          cfg.kind,
		Attributes:    cfg.attrs,
	})

	flags := parent.TraceFlags().WithSampled(result.Decision == RecordAndSample)
	sc := NewSpanContext(traceID, spanID, flags, false, state)

	sp := &span{
		spanContext: sc,
		parentID:    parentSpanID,
		kind:        cfg.kind,
		name:        name,
		scope:       t.scope,
		limits:      t.inner.limits,
	}
	sp.startTime = time.Now()
	sp.appendAttributes(cfg.attrs)
	for _, l := range cfg.links {
		sp.AddLink(l)
	}
	sp.onEnd = func(data SpanData) {
		for _, p := range t.inner.processors {
			p.OnEnd(data)
		}
	}

	for _, p := range t.inner.processors {
		p.OnStart(ctx, sp)
	}

	return ContextWithSpan(ctx, sp), sp
}
