// Package trace implements the tracing half of the telemetry pipeline: the
// TraceID/SpanID/TraceFlags/SpanContext data model, TracerProvider
// lifecycle (resource ownership, processor registration, idempotent
// shutdown), the SimpleProcessor and BatchProcessor span processors, and
// the Exporter contract they drive.
//
// It is a pure instrumentation library: no wire format, no transport.
// Consumers plug in an Exporter (OTLP, Zipkin, a test double, ...) and get
// buffering, batching, and shutdown ordering for free.
//
// # Core components
//
//   - [TracerProvider]: owns a Resource and an ordered list of Processors,
//     vends [Tracer] instances scoped by [InstrumentationScope].
//   - [Tracer]: starts [Span]s.
//   - [SimpleProcessor]: synchronous, one span per Export call.
//   - [BatchProcessor]: bounded-queue, background-worker batching built on
//     [batchqueue.Processor].
//   - [Exporter]: the pluggable sink every Processor drives.
//
// # Thread safety
//
// TracerProvider, Tracer, and both Processors are safe for concurrent use.
// Span is safe for concurrent End/SetStatus/SetAttributes calls but, like
// the upstream SDKs this is modeled on, is intended to be ended by a
// single goroutine.
package trace
