package oteltest

import (
	"context"
	"sync"

	"github.com/jonwraymond/otelcore/resource"
	"github.com/jonwraymond/otelcore/trace"
)

// SpanRecorder is an in-memory trace.Exporter: every exported batch is
// appended to an internal slice, retrievable with Ended. Safe for
// concurrent use.
type SpanRecorder struct {
	mu       sync.Mutex
	spans    []trace.SpanData
	resource *resource.Resource
	shutdown bool
}

// NewSpanRecorder returns an empty SpanRecorder.
func NewSpanRecorder() *SpanRecorder {
	return &SpanRecorder{}
}

var _ trace.Exporter = (*SpanRecorder)(nil)

func (r *SpanRecorder) Export(_ context.Context, spans []trace.SpanData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spans = append(r.spans, spans...)
	return nil
}

func (r *SpanRecorder) Shutdown(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shutdown = true
	return nil
}

func (r *SpanRecorder) SetResource(res *resource.Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resource = res
}

// Ended returns a copy of every SpanData exported so far.
func (r *SpanRecorder) Ended() []trace.SpanData {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]trace.SpanData, len(r.spans))
	copy(out, r.spans)
	return out
}

// Resource returns the Resource most recently set by the provider, or
// nil if none has been set yet.
func (r *SpanRecorder) Resource() *resource.Resource {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resource
}

// WasShutdown reports whether Shutdown has been called.
func (r *SpanRecorder) WasShutdown() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shutdown
}

// Reset clears every recorded span, for reuse across subtests.
func (r *SpanRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spans = nil
}
