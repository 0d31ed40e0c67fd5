package logs

import (
	"context"
	"sync"

	"github.com/jonwraymond/otelcore/resource"
	"github.com/jonwraymond/otelcore/trace"
	"github.com/jonwraymond/otelcore/tracestate"
)

// newTestSpanContext builds a valid SpanContext for tests that need one
// attached to a Record, optionally marked sampled.
func newTestSpanContext(sampled bool) trace.SpanContext {
	var flags trace.TraceFlags
	if sampled {
		flags = trace.FlagsSampled
	}
	return trace.NewSpanContext(trace.TraceID{1}, trace.SpanID{1}, flags, false, tracestate.TraceState{})
}

// fakeExporter is a minimal Exporter test double shared across this
// package's tests.
type fakeExporter struct {
	mu         sync.Mutex
	exported   []Record
	exportErr  error
	shutdownCh chan struct{}
	res        *resource.Resource
}

func newFakeExporter() *fakeExporter {
	return &fakeExporter{shutdownCh: make(chan struct{})}
}

func (f *fakeExporter) Export(_ context.Context, records []Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exported = append(f.exported, records...)
	return f.exportErr
}

func (f *fakeExporter) Shutdown(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	select {
	case <-f.shutdownCh:
	default:
		close(f.shutdownCh)
	}
	return nil
}

func (f *fakeExporter) SetResource(r *resource.Resource) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.res = r
}

func (f *fakeExporter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.exported)
}

func (f *fakeExporter) wasShutdown() bool {
	select {
	case <-f.shutdownCh:
		return true
	default:
		return false
	}
}
