package logs

import (
	"context"
	"time"

	"github.com/jonwraymond/otelcore/trace"
)

// Logger emits log Records scoped to one InstrumentationScope. Obtained
// from LoggerProvider.Logger; safe for concurrent use.
type Logger interface {
	// Emit fills in ObservedTimestamp and TraceContext if unset, attaches
	// the Logger's InstrumentationScope, and fans the finished Record out
	// to every registered Processor in registration order.
	Emit(ctx context.Context, r Record)
}

// loggerImpl is the concrete Logger. It holds no state of its own beyond
// its scope and a pointer to the shared provider state, so vending many
// Loggers from one LoggerProvider is cheap.
type loggerImpl struct {
	scope trace.InstrumentationScope
	inner *loggerProviderInner
}

var _ Logger = (*loggerImpl)(nil)

func (l *loggerImpl) Emit(ctx context.Context, r Record) {
	if l.inner.isShutdown.Load() {
		return
	}

	if r.ObservedTimestamp.IsZero() {
		r.ObservedTimestamp = time.Now()
	}
	if !r.TraceContext.IsValid() {
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
			r.TraceContext = sc
		}
	}
	r.InstrumentationScope = l.scope

	for _, p := range l.inner.processors {
		p.OnEmit(ctx, r)
	}
}
