package logs

import (
	"context"
	"sync"

	"github.com/jonwraymond/otelcore/batchqueue"
	"github.com/jonwraymond/otelcore/resource"
)

// SimpleProcessor calls Exporter.Export synchronously from OnEmit, one
// record at a time, serialized by a mutex. Meant for tests and
// low-volume debug pipelines.
type SimpleProcessor struct {
	mu       sync.Mutex
	exporter Exporter
	logger   batchqueue.DiagnosticLogger
}

var _ Processor = (*SimpleProcessor)(nil)

// SimpleProcessorOption customizes a SimpleProcessor built by
// NewSimpleProcessor.
type SimpleProcessorOption func(*SimpleProcessor)

// WithSimpleProcessorLogger installs the sink export errors are reported
// to at debug severity. Defaults to a no-op when not given.
func WithSimpleProcessorLogger(l batchqueue.DiagnosticLogger) SimpleProcessorOption {
	return func(p *SimpleProcessor) { p.logger = l }
}

// NewSimpleProcessor wraps exporter in a SimpleProcessor.
func NewSimpleProcessor(exporter Exporter, opts ...SimpleProcessorOption) *SimpleProcessor {
	p := &SimpleProcessor{exporter: exporter}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OnEmit exports r immediately. Export errors are logged at debug
// severity and discarded; SimpleProcessor offers no retry or
// backpressure.
func (p *SimpleProcessor) OnEmit(ctx context.Context, r Record) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.exporter.Export(ctx, []Record{r}); err != nil && p.logger != nil {
		p.logger.Debug("record export failed", batchqueue.KV{Key: "error", Value: err.Error()})
	}
}

// Shutdown forwards to the exporter.
func (p *SimpleProcessor) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exporter.Shutdown(ctx)
}

// ForceFlush is a no-op: SimpleProcessor never buffers anything to
// flush.
func (p *SimpleProcessor) ForceFlush(context.Context) error {
	return nil
}

func (p *SimpleProcessor) setResource(res *resource.Resource) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exporter.SetResource(res)
}
