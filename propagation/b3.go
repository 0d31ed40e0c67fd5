package propagation

import (
	"context"
	"strings"

	"github.com/jonwraymond/otelcore/trace"
	"github.com/jonwraymond/otelcore/tracestate"
)

const (
	b3SingleHeader  = "b3"
	b3TraceIDHeader = "x-b3-traceid"
	b3SpanIDHeader  = "x-b3-spanid"
	b3SampledHeader = "x-b3-sampled"
	b3FlagsHeader   = "x-b3-flags"
	b3ParentSpanID  = "x-b3-parentspanid"
)

// B3Encoding is a bitmask describing which B3 header form a propagator
// reads or writes.
type B3Encoding uint8

const (
	// B3Unspecified behaves like B3MultipleHeader on inject.
	B3Unspecified B3Encoding = 0
	// B3MultipleHeader uses the separate "x-b3-*" headers.
	B3MultipleHeader B3Encoding = 1
	// B3SingleHeader uses the single "b3" header.
	B3SingleHeader B3Encoding = 2
	// B3SingleAndMultiHeader injects both forms; on extract, the single
	// header takes precedence when present and valid.
	B3SingleAndMultiHeader B3Encoding = B3MultipleHeader | B3SingleHeader
)

// Supports reports whether e includes every bit set in other.
func (e B3Encoding) Supports(other B3Encoding) bool {
	return e&other == other
}

// B3 implements the B3 propagation format, supporting both the single
// "b3" header and the "x-b3-*" multi-header form.
type B3 struct {
	encoding B3Encoding
}

// NewB3 returns a B3 propagator that injects (and, on extract, prefers)
// the multiple-header form, matching the historical default.
func NewB3() B3 {
	return B3{encoding: B3MultipleHeader}
}

// NewB3WithEncoding returns a B3 propagator using the given encoding.
func NewB3WithEncoding(encoding B3Encoding) B3 {
	return B3{encoding: encoding}
}

// Fields implements TextMapPropagator.
func (b B3) Fields() []string {
	fields := []string{}
	if b.encoding.Supports(B3SingleHeader) {
		fields = append(fields, b3SingleHeader)
	}
	if b.encoding.Supports(B3MultipleHeader) || b.encoding == B3Unspecified {
		fields = append(fields, b3TraceIDHeader, b3SpanIDHeader, b3SampledHeader, b3FlagsHeader)
	}
	return fields
}

// Inject implements TextMapPropagator.
func (b B3) Inject(ctx context.Context, carrier TextMapCarrier) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		flag := "0"
		if sc.IsSampled() {
			flag = "1"
		}
		if b.encoding.Supports(B3SingleHeader) {
			carrier.Set(b3SingleHeader, flag)
		}
		if b.encoding.Supports(B3MultipleHeader) || b.encoding == B3Unspecified {
			carrier.Set(b3SampledHeader, flag)
		}
		return
	}

	if b.encoding.Supports(B3SingleHeader) {
		value := sc.TraceID().String() + "-" + sc.SpanID().String()
		if !sc.TraceFlags().IsDeferred() {
			switch {
			case sc.TraceFlags().IsDebug():
				value += "-d"
			case sc.IsSampled():
				value += "-1"
			default:
				value += "-0"
			}
		}
		carrier.Set(b3SingleHeader, value)
	}
	if b.encoding.Supports(B3MultipleHeader) || b.encoding == B3Unspecified {
		carrier.Set(b3TraceIDHeader, sc.TraceID().String())
		carrier.Set(b3SpanIDHeader, sc.SpanID().String())
		switch {
		case sc.TraceFlags().IsDebug():
			carrier.Set(b3FlagsHeader, "1")
		case !sc.TraceFlags().IsDeferred():
			if sc.IsSampled() {
				carrier.Set(b3SampledHeader, "1")
			} else {
				carrier.Set(b3SampledHeader, "0")
			}
		}
	}
}

// Extract implements TextMapPropagator.
func (b B3) Extract(ctx context.Context, carrier TextMapCarrier) context.Context {
	var sc trace.SpanContext
	var ok bool
	if b.encoding.Supports(B3SingleHeader) {
		sc, ok = b.extractSingle(carrier)
	}
	if !ok {
		sc, ok = b.extractMulti(carrier)
	}
	if !ok {
		return ctx
	}
	sc = sc.WithRemote(true)
	return trace.ContextWithSpan(ctx, trace.NewNonRecordingSpan(sc))
}

func (b B3) extractSingle(carrier TextMapCarrier) (trace.SpanContext, bool) {
	header := carrier.Get(b3SingleHeader)
	if header == "" || len(header) > maxHeaderLen {
		return trace.SpanContext{}, false
	}
	parts := strings.Split(header, "-")
	if len(parts) < 2 || len(parts) > 4 {
		return trace.SpanContext{}, false
	}

	traceID, ok := b3TraceID(parts[0])
	if !ok {
		return trace.SpanContext{}, false
	}
	spanID, ok := b3SpanID(parts[1])
	if !ok {
		return trace.SpanContext{}, false
	}

	flags := trace.FlagsDeferred
	if len(parts) > 2 {
		flags, ok = b.extractSampledState(parts[2])
		if !ok {
			return trace.SpanContext{}, false
		}
	}
	if len(parts) == 4 {
		if _, ok := b3SpanID(parts[3]); !ok {
			return trace.SpanContext{}, false
		}
	}

	sc := trace.NewSpanContext(traceID, spanID, flags, true, tracestate.TraceState{})
	if !sc.IsValid() {
		return trace.SpanContext{}, false
	}
	return sc, true
}

func (b B3) extractMulti(carrier TextMapCarrier) (trace.SpanContext, bool) {
	traceID, ok := b3TraceID(carrier.Get(b3TraceIDHeader))
	if !ok {
		return trace.SpanContext{}, false
	}
	spanID, ok := b3SpanID(carrier.Get(b3SpanIDHeader))
	if !ok {
		return trace.SpanContext{}, false
	}
	// The parent span id header, if present, is validated but never
	// otherwise used: a malformed value doesn't fail extraction.
	if parent := carrier.Get(b3ParentSpanID); parent != "" {
		_, _ = b3SpanID(parent)
	}

	flags := trace.FlagsDeferred
	if debugFlags, ok := b3DebugFlag(carrier.Get(b3FlagsHeader)); ok {
		flags = debugFlags
	} else if sampled := carrier.Get(b3SampledHeader); sampled != "" {
		flags, ok = b.extractSampledState(sampled)
		if !ok {
			return trace.SpanContext{}, false
		}
	}

	sc := trace.NewSpanContext(traceID, spanID, flags, true, tracestate.TraceState{})
	if !sc.IsValid() {
		return trace.SpanContext{}, false
	}
	return sc, true
}

func b3TraceID(s string) (trace.TraceID, bool) {
	if s == "" || hasUpper(s) || (len(s) != 16 && len(s) != 32) {
		return trace.TraceID{}, false
	}
	id, err := trace.TraceIDFromHex(leftPad(s, 32))
	if err != nil {
		return trace.TraceID{}, false
	}
	return id, true
}

func b3SpanID(s string) (trace.SpanID, bool) {
	if s == "" || hasUpper(s) || len(s) != 16 {
		return trace.SpanID{}, false
	}
	id, err := trace.SpanIDFromHex(s)
	if err != nil {
		return trace.SpanID{}, false
	}
	return id, true
}

// extractSampledState interprets the sampled/single-header state field.
// "true" is accepted only on a propagator that doesn't speak the strict
// single-header form; "d" (debug) only on one that does.
func (b B3) extractSampledState(s string) (trace.TraceFlags, bool) {
	switch s {
	case "0", "false":
		return 0, true
	case "1":
		return trace.FlagsSampled, true
	case "true":
		if !b.encoding.Supports(B3SingleHeader) {
			return trace.FlagsSampled, true
		}
	case "d":
		if b.encoding.Supports(B3SingleHeader) {
			return trace.FlagsDebug, true
		}
	}
	return 0, false
}

// b3DebugFlag interprets the x-b3-flags header: "1" implies debug+sampled.
func b3DebugFlag(s string) (trace.TraceFlags, bool) {
	switch s {
	case "0":
		return 0, true
	case "1":
		return trace.FlagsDebug | trace.FlagsSampled, true
	default:
		return 0, false
	}
}
