package trace

import (
	"context"
	"sync"

	"github.com/jonwraymond/otelcore/batchqueue"
	"github.com/jonwraymond/otelcore/resource"
)

// SimpleProcessor calls Exporter.Export synchronously from OnEnd, one
// span at a time, serialized by a mutex. It is meant for tests and
// low-volume debug pipelines, not production traffic: a slow exporter
// directly stalls every caller's Span.End.
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

// OnStart is a no-op; SimpleProcessor only acts at span end.
func (p *SimpleProcessor) OnStart(context.Context, Span) {}

// OnEnd exports s immediately if it was sampled. Export errors are
// logged at debug severity and discarded; SimpleProcessor offers no
// retry or backpressure.
func (p *SimpleProcessor) OnEnd(s SpanData) {
	if !s.SpanContext.IsSampled() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.exporter.Export(context.Background(), []SpanData{s}); err != nil && p.logger != nil {
		p.logger.Debug("span export failed", batchqueue.KV{Key: "error", Value: err.Error()})
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

// setResource is used by TracerProvider during registration; not part of
// the public Processor interface since only BatchProcessor needs the
// late-binding path exposed separately (SimpleProcessor already holds a
// direct exporter reference).
func (p *SimpleProcessor) setResource(res *resource.Resource) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exporter.SetResource(res)
}
