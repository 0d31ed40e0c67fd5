package trace

import (
	"context"
	"testing"
)

func TestRandomIDGeneratorProducesValidIDs(t *testing.T) {
	gen := NewRandomIDGenerator()
	tid, sid := gen.NewIDs(context.Background())
	if !tid.IsValid() {
		t.Errorf("NewIDs() TraceID is invalid (all-zero)")
	}
	if !sid.IsValid() {
		t.Errorf("NewIDs() SpanID is invalid (all-zero)")
	}

	sid2 := gen.NewSpanID(context.Background(), tid)
	if !sid2.IsValid() {
		t.Errorf("NewSpanID() returned invalid (all-zero) SpanID")
	}
	if sid2 == sid {
		t.Errorf("NewSpanID() collided with NewIDs()'s SpanID; acceptable in theory but vanishingly unlikely")
	}
}
