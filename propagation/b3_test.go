package propagation

import (
	"context"
	"strings"
	"testing"

	"github.com/jonwraymond/otelcore/trace"
	"github.com/jonwraymond/otelcore/tracestate"
)

const (
	b3TestTraceIDStr = "4bf92f3577b34da6a3ce929d0e0e4736"
	b3TestSpanIDStr  = "00f067aa0ba902b7"
)

func TestB3SingleHeaderExtract(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex(b3TestTraceIDStr)
	spanID, _ := trace.SpanIDFromHex(b3TestSpanIDStr)
	shortTraceID, _ := trace.TraceIDFromHex("0000000000000000a3ce929d0e0e4736")

	tests := []struct {
		header       string
		wantTraceID  trace.TraceID
		wantSpanID   trace.SpanID
		wantSampled  bool
		wantDebug    bool
		wantDeferred bool
	}{
		{b3TestTraceIDStr + "-" + b3TestSpanIDStr, traceID, spanID, false, false, true},
		{b3TestTraceIDStr + "-" + b3TestSpanIDStr + "-0", traceID, spanID, false, false, false},
		{b3TestTraceIDStr + "-" + b3TestSpanIDStr + "-1", traceID, spanID, true, false, false},
		{b3TestTraceIDStr + "-" + b3TestSpanIDStr + "-d", traceID, spanID, false, true, false},
		{b3TestTraceIDStr + "-" + b3TestSpanIDStr + "-1-00000000000000cd", traceID, spanID, true, false, false},
		{"a3ce929d0e0e4736-" + b3TestSpanIDStr + "-1-00000000000000cd", shortTraceID, spanID, true, false, false},
	}

	p := NewB3WithEncoding(B3SingleHeader)
	for _, tt := range tests {
		carrier := MapCarrier{"b3": tt.header}
		ctx := p.Extract(context.Background(), carrier)
		sc := trace.SpanFromContext(ctx).SpanContext()
		if !sc.IsValid() {
			t.Fatalf("header %q: got invalid SpanContext", tt.header)
		}
		if sc.TraceID() != tt.wantTraceID || sc.SpanID() != tt.wantSpanID {
			t.Errorf("header %q: ids = %s/%s, want %s/%s", tt.header, sc.TraceID(), sc.SpanID(), tt.wantTraceID, tt.wantSpanID)
		}
		if sc.TraceFlags().IsDeferred() != tt.wantDeferred {
			t.Errorf("header %q: IsDeferred() = %v, want %v", tt.header, sc.TraceFlags().IsDeferred(), tt.wantDeferred)
		}
		if sc.IsSampled() != tt.wantSampled {
			t.Errorf("header %q: IsSampled() = %v, want %v", tt.header, sc.IsSampled(), tt.wantSampled)
		}
		if sc.TraceFlags().IsDebug() != tt.wantDebug {
			t.Errorf("header %q: IsDebug() = %v, want %v", tt.header, sc.TraceFlags().IsDebug(), tt.wantDebug)
		}
	}
}

func TestB3SingleHeaderInvalidFallsBackToEmpty(t *testing.T) {
	tests := []string{"0", "-"}
	p := NewB3WithEncoding(B3SingleHeader)
	for _, header := range tests {
		carrier := MapCarrier{"b3": header}
		ctx := p.Extract(context.Background(), carrier)
		if trace.SpanFromContext(ctx).SpanContext().IsValid() {
			t.Errorf("header %q produced a valid SpanContext, want empty", header)
		}
	}
}

func TestB3SingleHeaderRejectsMalformed(t *testing.T) {
	tests := []string{
		"ab00000000000000000000000000000000-cd00000000000000-1",                  // wrong trace id length
		"ab000000000000000000000000000000-cd0000000000000000-1",                  // wrong span id length
		"ab000000000000000000000000000000-cd00000000000000-01",                   // wrong sampled state length
		"ab000000000000000000000000000000-cd00000000000000-1-cd0000000000000000", // wrong parent id length
		"qw000000000000000000000000000000-cd00000000000000-1",                    // trace id with non-hex
		"ab000000000000000000000000000000-qw00000000000000-1",                    // span id with non-hex
		"ab000000000000000000000000000000-cd00000000000000-q",                    // sample flag garbage
		"AB000000000000000000000000000000-cd00000000000000-1",                    // uppercase trace id
		"ab000000000000000000000000000000-CD00000000000000-1",                    // uppercase span id
		"ab000000000000000000000000000000-cd00000000000000-1-EF00000000000000",   // uppercase parent id
		"ab000000000000000000000000000000-cd00000000000000-true",                 // "true" not valid on strict single header
	}
	p := NewB3WithEncoding(B3SingleHeader)
	for _, header := range tests {
		carrier := MapCarrier{"b3": header}
		ctx := p.Extract(context.Background(), carrier)
		if trace.SpanFromContext(ctx).SpanContext().IsValid() {
			t.Errorf("header %q attached a valid SpanContext, want rejection", header)
		}
	}
}

func TestB3MultiHeaderExtract(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex(b3TestTraceIDStr)
	spanID, _ := trace.SpanIDFromHex(b3TestSpanIDStr)

	p := NewB3()
	tests := []struct {
		name        string
		carrier     MapCarrier
		wantSampled bool
		wantDebug   bool
	}{
		{"deferred", MapCarrier{"x-b3-traceid": b3TestTraceIDStr, "x-b3-spanid": b3TestSpanIDStr}, false, false},
		{"not sampled", MapCarrier{"x-b3-traceid": b3TestTraceIDStr, "x-b3-spanid": b3TestSpanIDStr, "x-b3-sampled": "0"}, false, false},
		{"sampled", MapCarrier{"x-b3-traceid": b3TestTraceIDStr, "x-b3-spanid": b3TestSpanIDStr, "x-b3-sampled": "1"}, true, false},
		{"legacy true", MapCarrier{"x-b3-traceid": b3TestTraceIDStr, "x-b3-spanid": b3TestSpanIDStr, "x-b3-sampled": "true"}, true, false},
		{"legacy false", MapCarrier{"x-b3-traceid": b3TestTraceIDStr, "x-b3-spanid": b3TestSpanIDStr, "x-b3-sampled": "false"}, false, false},
		{"debug", MapCarrier{"x-b3-traceid": b3TestTraceIDStr, "x-b3-spanid": b3TestSpanIDStr, "x-b3-flags": "1"}, true, true},
		{"debug overrides sampled=0", MapCarrier{"x-b3-traceid": b3TestTraceIDStr, "x-b3-spanid": b3TestSpanIDStr, "x-b3-sampled": "0", "x-b3-flags": "1", "x-b3-parentspanid": "00f067aa0ba90200"}, true, true},
		{"invalid debug flag ignored, sampled used", MapCarrier{"x-b3-traceid": b3TestTraceIDStr, "x-b3-spanid": b3TestSpanIDStr, "x-b3-sampled": "1", "x-b3-flags": "2", "x-b3-parentspanid": "00f067aa0ba90200"}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := p.Extract(context.Background(), tt.carrier)
			sc := trace.SpanFromContext(ctx).SpanContext()
			if !sc.IsValid() {
				t.Fatalf("got invalid SpanContext")
			}
			if sc.TraceID() != traceID || sc.SpanID() != spanID {
				t.Errorf("ids = %s/%s, want %s/%s", sc.TraceID(), sc.SpanID(), traceID, spanID)
			}
			if sc.IsSampled() != tt.wantSampled {
				t.Errorf("IsSampled() = %v, want %v", sc.IsSampled(), tt.wantSampled)
			}
			if sc.TraceFlags().IsDebug() != tt.wantDebug {
				t.Errorf("IsDebug() = %v, want %v", sc.TraceFlags().IsDebug(), tt.wantDebug)
			}
		})
	}
}

func TestB3MultiHeaderMissingIDsYieldsEmpty(t *testing.T) {
	p := NewB3()
	ctx := p.Extract(context.Background(), MapCarrier{"x-b3-sampled": "0"})
	if trace.SpanFromContext(ctx).SpanContext().IsValid() {
		t.Errorf("missing trace/span id produced a valid SpanContext")
	}
}

func TestB3InjectSingleHeader(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex(b3TestTraceIDStr)
	spanID, _ := trace.SpanIDFromHex(b3TestSpanIDStr)
	sc := trace.NewSpanContext(traceID, spanID, trace.FlagsSampled, false, tracestate.TraceState{})
	ctx := trace.ContextWithSpan(context.Background(), trace.NewNonRecordingSpan(sc))

	carrier := MapCarrier{}
	NewB3WithEncoding(B3SingleHeader).Inject(ctx, carrier)
	want := b3TestTraceIDStr + "-" + b3TestSpanIDStr + "-1"
	if got := carrier.Get("b3"); got != want {
		t.Errorf("b3 header = %q, want %q", got, want)
	}
}

func TestB3InjectMultiHeader(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex(b3TestTraceIDStr)
	spanID, _ := trace.SpanIDFromHex(b3TestSpanIDStr)
	sc := trace.NewSpanContext(traceID, spanID, trace.FlagsSampled, false, tracestate.TraceState{})
	ctx := trace.ContextWithSpan(context.Background(), trace.NewNonRecordingSpan(sc))

	carrier := MapCarrier{}
	NewB3().Inject(ctx, carrier)
	if carrier.Get("x-b3-traceid") != b3TestTraceIDStr {
		t.Errorf("x-b3-traceid = %q, want %q", carrier.Get("x-b3-traceid"), b3TestTraceIDStr)
	}
	if carrier.Get("x-b3-spanid") != b3TestSpanIDStr {
		t.Errorf("x-b3-spanid = %q, want %q", carrier.Get("x-b3-spanid"), b3TestSpanIDStr)
	}
	if carrier.Get("x-b3-sampled") != "1" {
		t.Errorf("x-b3-sampled = %q, want %q", carrier.Get("x-b3-sampled"), "1")
	}
}

func TestB3ExtractToleratesOversizedHeader(t *testing.T) {
	huge := strings.Repeat("a", 1<<20)
	p := NewB3WithEncoding(B3SingleAndMultiHeader)
	ctx := p.Extract(context.Background(), MapCarrier{"b3": huge})
	if trace.SpanFromContext(ctx).SpanContext().IsValid() {
		t.Errorf("oversized b3 header produced a valid SpanContext")
	}
}

func TestB3EncodingSupports(t *testing.T) {
	if !B3SingleAndMultiHeader.Supports(B3SingleHeader) {
		t.Errorf("SingleAndMultiHeader should support SingleHeader")
	}
	if !B3SingleAndMultiHeader.Supports(B3MultipleHeader) {
		t.Errorf("SingleAndMultiHeader should support MultipleHeader")
	}
	if B3MultipleHeader.Supports(B3SingleHeader) {
		t.Errorf("MultipleHeader should not support SingleHeader")
	}
}
