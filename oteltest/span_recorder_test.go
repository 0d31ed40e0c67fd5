package oteltest

import (
	"context"
	"testing"

	"github.com/jonwraymond/otelcore/resource"
	"github.com/jonwraymond/otelcore/trace"
)

func TestSpanRecorderRecordsExportedSpans(t *testing.T) {
	r := NewSpanRecorder()
	res := resource.New(resource.String("service.name", "test"))
	r.SetResource(res)

	if err := r.Export(context.Background(), []trace.SpanData{{Name: "a"}, {Name: "b"}}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	ended := r.Ended()
	if len(ended) != 2 || ended[0].Name != "a" || ended[1].Name != "b" {
		t.Fatalf("Ended() = %+v, want [a b]", ended)
	}
	if r.Resource() != res {
		t.Errorf("Resource() = %v, want %v", r.Resource(), res)
	}

	r.Reset()
	if len(r.Ended()) != 0 {
		t.Errorf("Ended() after Reset = %+v, want empty", r.Ended())
	}

	if err := r.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !r.WasShutdown() {
		t.Errorf("WasShutdown() = false after Shutdown")
	}
}

func TestSpanRecorderEndedReturnsCopy(t *testing.T) {
	r := NewSpanRecorder()
	_ = r.Export(context.Background(), []trace.SpanData{{Name: "a"}})

	ended := r.Ended()
	ended[0].Name = "mutated"

	if got := r.Ended()[0].Name; got != "a" {
		t.Errorf("internal state mutated through Ended() slice: got %q", got)
	}
}
