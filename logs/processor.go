package logs

import "context"

// Processor receives every emitted Record, unlike trace.Processor which
// only forwards sampled spans: there is no sampling decision in the log
// data model.
type Processor interface {
	// OnEmit is called synchronously from Logger.Emit with the finished
	// Record.
	OnEmit(ctx context.Context, r Record)
	// Shutdown releases any resources held by the processor and its
	// exporter. Idempotent per-implementation.
	Shutdown(ctx context.Context) error
	// ForceFlush exports any buffered records and waits for in-flight
	// exports to complete.
	ForceFlush(ctx context.Context) error
}
