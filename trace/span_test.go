package trace

import (
	"errors"
	"testing"

	"github.com/jonwraymond/otelcore/tracestate"
)

func newTestSpan(limits SpanLimits) *span {
	return &span{
		spanContext: NewSpanContext(TraceID{1}, SpanID{1}, FlagsSampled, false, tracestate.TraceState{}),
		limits:      limits,
	}
}

func TestSpanSetStatusDoesNotLetOKRevertError(t *testing.T) {
	s := newTestSpan(DefaultSpanLimits)
	s.SetStatus(StatusError, "boom")
	s.SetStatus(StatusOK, "")
	if s.status.Code != StatusError {
		t.Errorf("status = %v, want StatusError to survive a later OK", s.status.Code)
	}
}

func TestSpanAttributeLimitDropsExcess(t *testing.T) {
	s := newTestSpan(SpanLimits{MaxAttributes: 2, MaxEvents: 2, MaxLinks: 2})
	s.SetAttributes(String("a", "1"), String("b", "2"), String("c", "3"))
	if len(s.attrs) != 2 {
		t.Errorf("len(attrs) = %d, want 2", len(s.attrs))
	}
	if s.droppedAttrs != 1 {
		t.Errorf("droppedAttrs = %d, want 1", s.droppedAttrs)
	}
}

func TestSpanEventLimitDropsExcess(t *testing.T) {
	s := newTestSpan(SpanLimits{MaxAttributes: 2, MaxEvents: 1, MaxLinks: 2})
	s.AddEvent("first")
	s.AddEvent("second")
	if len(s.events) != 1 {
		t.Errorf("len(events) = %d, want 1", len(s.events))
	}
	if s.droppedEvents != 1 {
		t.Errorf("droppedEvents = %d, want 1", s.droppedEvents)
	}
}

func TestSpanEndIsIdempotent(t *testing.T) {
	calls := 0
	s := newTestSpan(DefaultSpanLimits)
	s.onEnd = func(SpanData) { calls++ }
	s.End()
	s.End()
	if calls != 1 {
		t.Errorf("onEnd called %d times, want 1", calls)
	}
}

func TestSpanMutationAfterEndIsNoop(t *testing.T) {
	s := newTestSpan(DefaultSpanLimits)
	s.End()
	s.SetName("renamed")
	s.SetAttributes(String("k", "v"))
	if s.name == "renamed" {
		t.Errorf("SetName took effect after End")
	}
	if len(s.attrs) != 0 {
		t.Errorf("SetAttributes took effect after End")
	}
}

func TestSpanIsRecordingReflectsSampledAndEnded(t *testing.T) {
	s := newTestSpan(DefaultSpanLimits)
	if !s.IsRecording() {
		t.Errorf("IsRecording() = false for sampled, unended span")
	}
	s.End()
	if s.IsRecording() {
		t.Errorf("IsRecording() = true after End")
	}
}

func TestSpanRecordErrorAddsExceptionEvent(t *testing.T) {
	s := newTestSpan(DefaultSpanLimits)
	s.RecordError(errors.New("boom"))
	if len(s.events) != 1 || s.events[0].Name != "exception" {
		t.Fatalf("events = %+v, want one exception event", s.events)
	}
	s.RecordError(nil)
	if len(s.events) != 1 {
		t.Errorf("RecordError(nil) added an event, want no-op")
	}
}

func TestNoopSpan(t *testing.T) {
	var sp Span = noopSpan{}
	if sp.IsRecording() {
		t.Errorf("noopSpan.IsRecording() = true")
	}
	sp.SetName("x")
	sp.SetAttributes(String("k", "v"))
	sp.AddEvent("e")
	sp.AddLink(Link{})
	sp.RecordError(errors.New("x"))
	sp.End()
	if sp.SpanContext().IsValid() {
		t.Errorf("noopSpan.SpanContext() is valid, want invalid")
	}
}
