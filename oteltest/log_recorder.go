package oteltest

import (
	"context"
	"sync"

	"github.com/jonwraymond/otelcore/logs"
	"github.com/jonwraymond/otelcore/resource"
)

// LogRecorder is an in-memory logs.Exporter: every exported record is
// appended to an internal slice, retrievable with Emitted. Safe for
// concurrent use.
type LogRecorder struct {
	mu       sync.Mutex
	records  []logs.Record
	resource *resource.Resource
	shutdown bool
}

// NewLogRecorder returns an empty LogRecorder.
func NewLogRecorder() *LogRecorder {
	return &LogRecorder{}
}

var _ logs.Exporter = (*LogRecorder)(nil)

func (r *LogRecorder) Export(_ context.Context, records []logs.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, records...)
	return nil
}

func (r *LogRecorder) Shutdown(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shutdown = true
	return nil
}

func (r *LogRecorder) SetResource(res *resource.Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resource = res
}

// Emitted returns a copy of every Record exported so far.
func (r *LogRecorder) Emitted() []logs.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]logs.Record, len(r.records))
	copy(out, r.records)
	return out
}

// Resource returns the Resource most recently set by the provider, or
// nil if none has been set yet.
func (r *LogRecorder) Resource() *resource.Resource {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resource
}

// WasShutdown reports whether Shutdown has been called.
func (r *LogRecorder) WasShutdown() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shutdown
}

// Reset clears every recorded log record, for reuse across subtests.
func (r *LogRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
}
