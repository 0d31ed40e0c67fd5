package trace

import "errors"

// ErrAlreadyShutdown is returned by TracerProvider.Shutdown when it has
// already run (idempotent: the second and later calls are no-ops that
// report this error rather than repeating teardown).
var ErrAlreadyShutdown = errors.New("trace: provider already shut down")

// ErrExportTimeout is not returned by this package: a ForceFlush or
// Shutdown whose ctx is done before the processor finishes returns
// ctx.Err() instead.
var ErrExportTimeout = errors.New("trace: export timed out")

// ErrQueueFull is not returned or reported by this package: when
// BatchProcessor.OnEnd drops a span because its queue is full, the drop
// is only counted (see BatchProcessor.Dropped). OnEnd itself never
// returns an error to the caller.
var ErrQueueFull = errors.New("trace: batch processor queue full, span dropped")

// ErrInvalidConfig is returned by a BatchConfig validation helper when a
// caller-supplied value cannot be reconciled (currently unused since the
// only inter-field invariant, max_export_batch_size <= max_queue_size, is
// silently clamped rather than rejected; kept for parity with the
// upstream SDK's config error surface for future fields).
var ErrInvalidConfig = errors.New("trace: invalid batch processor config")
