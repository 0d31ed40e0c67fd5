package trace

import (
	"testing"

	"github.com/jonwraymond/otelcore/tracestate"
)

func TestAlwaysOnAlwaysOff(t *testing.T) {
	p := SamplingParameters{TraceID: TraceID{1}}
	if got := AlwaysOnSampler().ShouldSample(p).Decision; got != RecordAndSample {
		t.Errorf("AlwaysOnSampler decision = %v, want RecordAndSample", got)
	}
	if got := AlwaysOffSampler().ShouldSample(p).Decision; got != Drop {
		t.Errorf("AlwaysOffSampler decision = %v, want Drop", got)
	}
}

func TestTraceIDRatioBasedBounds(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
	}{
		{"zero", 0},
		{"one", 1},
		{"half", 0.5},
		{"negative clamps to zero", -1},
		{"above one clamps to one", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := TraceIDRatioBased(tt.ratio)
			if s.Description() == "" {
				t.Errorf("Description() is empty")
			}
		})
	}
}

func TestTraceIDRatioBasedDeterministic(t *testing.T) {
	s := TraceIDRatioBased(0.5)
	var id TraceID
	for i := range id {
		id[i] = byte(i)
	}
	p := SamplingParameters{TraceID: id}
	d1 := s.ShouldSample(p).Decision
	d2 := s.ShouldSample(p).Decision
	if d1 != d2 {
		t.Errorf("same TraceID produced different decisions: %v then %v", d1, d2)
	}
}

func TestTraceIDRatioBasedAlwaysOnAndOff(t *testing.T) {
	var id TraceID
	for i := range id {
		id[i] = 0xFF
	}
	p := SamplingParameters{TraceID: id}

	if got := TraceIDRatioBased(1).ShouldSample(p).Decision; got != RecordAndSample {
		t.Errorf("ratio=1 decision = %v, want RecordAndSample", got)
	}
	if got := TraceIDRatioBased(0).ShouldSample(p).Decision; got != Drop {
		t.Errorf("ratio=0 decision = %v, want Drop", got)
	}
}

func TestParentBasedDefersToRootWithNoParent(t *testing.T) {
	s := ParentBased(AlwaysOnSampler())
	p := SamplingParameters{ParentContext: SpanContext{}}
	if got := s.ShouldSample(p).Decision; got != RecordAndSample {
		t.Errorf("decision with no parent = %v, want RecordAndSample (from root)", got)
	}
}

func TestParentBasedHonorsRemoteSampledParent(t *testing.T) {
	s := ParentBased(AlwaysOffSampler())
	parent := NewSpanContext(TraceID{1}, SpanID{1}, FlagsSampled, true, tracestate.TraceState{})
	p := SamplingParameters{ParentContext: parent}
	if got := s.ShouldSample(p).Decision; got != RecordAndSample {
		t.Errorf("decision with remote sampled parent = %v, want RecordAndSample", got)
	}
}

func TestParentBasedHonorsLocalNotSampledParent(t *testing.T) {
	s := ParentBased(AlwaysOnSampler())
	parent := NewSpanContext(TraceID{1}, SpanID{1}, 0, false, tracestate.TraceState{})
	p := SamplingParameters{ParentContext: parent}
	if got := s.ShouldSample(p).Decision; got != Drop {
		t.Errorf("decision with local not-sampled parent = %v, want Drop", got)
	}
}

func TestParentBasedCustomDelegates(t *testing.T) {
	s := ParentBased(AlwaysOffSampler(), WithRemoteParentSampled(AlwaysOffSampler()))
	parent := NewSpanContext(TraceID{1}, SpanID{1}, FlagsSampled, true, tracestate.TraceState{})
	p := SamplingParameters{ParentContext: parent}
	if got := s.ShouldSample(p).Decision; got != Drop {
		t.Errorf("decision with overridden remote-sampled delegate = %v, want Drop", got)
	}
}
