package trace

import (
	"context"
	"testing"

	"github.com/jonwraymond/otelcore/batchqueue"
)

type simpleProcessorRecordingLogger struct {
	debugCount int
}

func (l *simpleProcessorRecordingLogger) Warn(string, ...batchqueue.KV) {}
func (l *simpleProcessorRecordingLogger) Debug(string, ...batchqueue.KV) {
	l.debugCount++
}

func TestSimpleProcessorExportsSampledOnly(t *testing.T) {
	exp := newFakeExporter()
	p := NewSimpleProcessor(exp)

	sampled := SpanData{SpanContext: NewSpanContext(TraceID{1}, SpanID{1}, FlagsSampled, false, emptyState)}
	notSampled := SpanData{SpanContext: NewSpanContext(TraceID{1}, SpanID{2}, 0, false, emptyState)}

	p.OnEnd(notSampled)
	p.OnEnd(sampled)

	if got := exp.count(); got != 1 {
		t.Errorf("exported count = %d, want 1", got)
	}
}

func TestSimpleProcessorShutdownForwardsToExporter(t *testing.T) {
	exp := newFakeExporter()
	p := NewSimpleProcessor(exp)
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !exp.wasShutdown() {
		t.Errorf("exporter was not shut down")
	}
}

func TestSimpleProcessorLogsExportErrorAtDebug(t *testing.T) {
	exp := newFakeExporter()
	exp.exportErr = context.DeadlineExceeded
	log := &simpleProcessorRecordingLogger{}
	p := NewSimpleProcessor(exp, WithSimpleProcessorLogger(log))

	sampled := SpanData{SpanContext: NewSpanContext(TraceID{1}, SpanID{1}, FlagsSampled, false, emptyState)}
	p.OnEnd(sampled)

	if log.debugCount != 1 {
		t.Errorf("Debug called %d times, want 1 for a failed export", log.debugCount)
	}
}

func TestSimpleProcessorForceFlushIsNoop(t *testing.T) {
	p := NewSimpleProcessor(newFakeExporter())
	if err := p.ForceFlush(context.Background()); err != nil {
		t.Errorf("ForceFlush() error = %v, want nil", err)
	}
}
