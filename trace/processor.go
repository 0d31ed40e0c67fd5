package trace

import "context"

// Processor is notified as spans start and end, and is given a chance to
// flush and shut down alongside its owning TracerProvider.
type Processor interface {
	// OnStart is called synchronously on the goroutine that calls
	// Tracer.Start, after the Span's SpanContext has been assigned.
	OnStart(ctx context.Context, s Span)
	// OnEnd is called synchronously on the goroutine that calls
	// Span.End, with the frozen SpanData. Implementations must not
	// block the caller for long; SimpleProcessor accepts the
	// synchronous cost deliberately, BatchProcessor never blocks.
	OnEnd(s SpanData)
	// Shutdown flushes and releases the Processor's resources. After it
	// returns, OnEnd must not be called again.
	Shutdown(ctx context.Context) error
	// ForceFlush blocks until all spans queued before the call have
	// been handed to the Exporter, or ctx is done.
	ForceFlush(ctx context.Context) error
}
