package batchqueue

import "time"

// Config carries the tuning knobs trace.BatchConfig and logs.BatchConfig
// translate into when constructing a Processor. It deliberately has no
// env-var parsing of its own — that belongs to the domain-specific config
// types that wrap it.
type Config struct {
	MaxQueueSize         int
	ScheduledDelay       time.Duration
	MaxExportBatchSize   int
	MaxExportTimeout     time.Duration
	MaxConcurrentExports int

	// OnFirstDrop, if set, is called exactly once the first time Enqueue
	// drops an item, because the queue is full or the Processor has shut
	// down. Later drops are counted (see Processor.Dropped) but do not
	// call it again.
	OnFirstDrop func()
	// OnExportError, if set, is called from the worker (or, when
	// MaxConcurrentExports > 1, from an export goroutine) whenever
	// Exporter.Export returns a non-nil error. Export errors are never
	// otherwise surfaced to the Enqueue caller.
	OnExportError func(error)
	// Logger receives export failures at debug severity and the
	// lifetime drop summary (warn severity) emitted on shutdown when
	// Dropped() > 0. Defaults to a no-op when nil.
	Logger DiagnosticLogger
}

// DiagnosticLogger receives the batching engine's otherwise-swallowed
// diagnostics: per-call export errors at debug severity, and the
// lifetime drop summary at shutdown.
type DiagnosticLogger interface {
	Warn(msg string, fields ...KV)
	Debug(msg string, fields ...KV)
}

// KV is a single structured logging field.
type KV struct {
	Key   string
	Value any
}

type noopDiagnosticLogger struct{}

func (noopDiagnosticLogger) Warn(string, ...KV)  {}
func (noopDiagnosticLogger) Debug(string, ...KV) {}
