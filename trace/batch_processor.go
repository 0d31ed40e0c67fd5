package trace

import (
	"context"

	"github.com/jonwraymond/otelcore/batchqueue"
	"github.com/jonwraymond/otelcore/resource"
)

// exporterAdapter satisfies batchqueue.Exporter[SpanData] by delegating
// to an Exporter, so BatchProcessor can reuse the generic engine instead
// of re-implementing its queueing and worker loop.
type exporterAdapter struct {
	exporter Exporter
}

func (a exporterAdapter) Export(ctx context.Context, spans []SpanData) error {
	return a.exporter.Export(ctx, spans)
}
func (a exporterAdapter) Shutdown(ctx context.Context) error { return a.exporter.Shutdown(ctx) }
func (a exporterAdapter) SetResource(res *resource.Resource) { a.exporter.SetResource(res) }

// BatchProcessor buffers finished spans and exports them in batches on a
// background worker, bounding memory via BatchConfig.MaxQueueSize and
// reporting drops rather than blocking Span.End.
type BatchProcessor struct {
	engine *batchqueue.Processor[SpanData]
}

var _ Processor = (*BatchProcessor)(nil)

// BatchProcessorOption customizes a BatchProcessor built by
// NewBatchProcessor.
type BatchProcessorOption func(*batchqueue.Config)

// WithBatchProcessorLogger installs the sink per-export debug logs and
// the shutdown drop summary (warn severity) are reported to. Defaults
// to a no-op when not given.
func WithBatchProcessorLogger(l batchqueue.DiagnosticLogger) BatchProcessorOption {
	return func(c *batchqueue.Config) { c.Logger = l }
}

// NewBatchProcessor builds a BatchProcessor. onDrop, if non-nil, is
// called exactly once the first time a span is dropped, because the
// queue is full or the processor has shut down. onExportError, if non-nil, is called whenever a batch
// export fails or times out.
func NewBatchProcessor(exporter Exporter, cfg BatchConfig, onDrop func(), onExportError func(error), opts ...BatchProcessorOption) *BatchProcessor {
	qcfg := batchqueue.Config{
		MaxQueueSize:         cfg.MaxQueueSize,
		ScheduledDelay:       cfg.ScheduledDelay,
		MaxExportBatchSize:   cfg.MaxExportBatchSize,
		MaxExportTimeout:     cfg.MaxExportTimeout,
		MaxConcurrentExports: cfg.MaxConcurrentExports,
		OnFirstDrop:          onDrop,
		OnExportError:        onExportError,
	}
	for _, opt := range opts {
		opt(&qcfg)
	}
	return &BatchProcessor{
		engine: batchqueue.NewProcessor[SpanData](exporterAdapter{exporter: exporter}, qcfg),
	}
}

// OnStart is a no-op; BatchProcessor only acts at span end.
func (p *BatchProcessor) OnStart(context.Context, Span) {}

// OnEnd enqueues s for background export if it was sampled. Never
// blocks; a full queue drops the span.
func (p *BatchProcessor) OnEnd(s SpanData) {
	if !s.SpanContext.IsSampled() {
		return
	}
	p.engine.Enqueue(s)
}

// Shutdown flushes buffered spans, shuts down the Exporter, and stops
// the worker goroutine. Idempotent: later calls return
// batchqueue.ErrAlreadyShutdown.
func (p *BatchProcessor) Shutdown(ctx context.Context) error {
	return p.engine.Shutdown(ctx)
}

// ForceFlush exports buffered spans and waits for in-flight exports to
// complete, or returns ctx.Err().
func (p *BatchProcessor) ForceFlush(ctx context.Context) error {
	return p.engine.ForceFlush(ctx)
}

// Dropped returns the number of spans dropped since construction because
// the queue was full or the processor had shut down.
func (p *BatchProcessor) Dropped() uint64 {
	return p.engine.Dropped()
}

func (p *BatchProcessor) setResource(res *resource.Resource) {
	p.engine.SetResource(res)
}
