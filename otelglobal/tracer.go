package otelglobal

import (
	"context"
	"sync"

	"github.com/jonwraymond/otelcore/trace"
)

var (
	tracerMu sync.RWMutex
	tracerTP *trace.TracerProvider
)

// SetTracerProvider installs the process-wide default TracerProvider.
// Call once during application startup; later calls replace the prior
// provider for any Tracer obtained afterward (Tracers already handed
// out keep pointing at their original provider's state).
func SetTracerProvider(tp *trace.TracerProvider) {
	tracerMu.Lock()
	defer tracerMu.Unlock()
	tracerTP = tp
}

// Tracer returns a Tracer from the installed TracerProvider, or a
// no-op Tracer if none has been installed: the static no-op Provider
// spec.md §5 requires, initialized lazily and never torn down.
func Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	tracerMu.RLock()
	tp := tracerTP
	tracerMu.RUnlock()
	if tp == nil {
		return noopTracer{}
	}
	return tp.Tracer(name, opts...)
}

// noopTracer satisfies trace.Tracer without recording anything: Start
// attaches an invalid, non-recording SpanContext so SpanFromContext
// still returns a well-formed (if inert) Span.
type noopTracer struct{}

var _ trace.Tracer = noopTracer{}

func (noopTracer) Start(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	sp := trace.NewNonRecordingSpan(trace.SpanContext{})
	return trace.ContextWithSpan(ctx, sp), sp
}
