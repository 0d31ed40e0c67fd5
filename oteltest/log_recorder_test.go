package oteltest

import (
	"context"
	"testing"

	"github.com/jonwraymond/otelcore/logs"
	"github.com/jonwraymond/otelcore/resource"
)

func TestLogRecorderRecordsExportedRecords(t *testing.T) {
	r := NewLogRecorder()
	res := resource.New(resource.String("service.name", "test"))
	r.SetResource(res)

	if err := r.Export(context.Background(), []logs.Record{{Body: "a"}, {Body: "b"}}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	emitted := r.Emitted()
	if len(emitted) != 2 || emitted[0].Body != "a" || emitted[1].Body != "b" {
		t.Fatalf("Emitted() = %+v, want [a b]", emitted)
	}
	if r.Resource() != res {
		t.Errorf("Resource() = %v, want %v", r.Resource(), res)
	}

	r.Reset()
	if len(r.Emitted()) != 0 {
		t.Errorf("Emitted() after Reset = %+v, want empty", r.Emitted())
	}

	if err := r.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !r.WasShutdown() {
		t.Errorf("WasShutdown() = false after Shutdown")
	}
}

func TestLogRecorderEmittedReturnsCopy(t *testing.T) {
	r := NewLogRecorder()
	_ = r.Export(context.Background(), []logs.Record{{Body: "a"}})

	emitted := r.Emitted()
	emitted[0].Body = "mutated"

	if got := r.Emitted()[0].Body; got != "a" {
		t.Errorf("internal state mutated through Emitted() slice: got %q", got)
	}
}
