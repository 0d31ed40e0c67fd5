package propagation

import (
	"context"
	"strings"

	"github.com/jonwraymond/otelcore/trace"
	"github.com/jonwraymond/otelcore/tracestate"
)

const (
	traceparentHeader = "traceparent"
	tracestateHeader  = "tracestate"

	// maxW3CVersion is the highest version byte this propagator will
	// extract. 0xff is reserved by the spec as permanently invalid.
	maxW3CVersion = 0xfe
)

// TraceContext implements the W3C Trace Context propagation format:
// https://www.w3.org/TR/trace-context/
type TraceContext struct{}

// Fields implements TextMapPropagator.
func (TraceContext) Fields() []string {
	return []string{traceparentHeader, tracestateHeader}
}

// Inject implements TextMapPropagator.
func (TraceContext) Inject(ctx context.Context, carrier TextMapCarrier) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return
	}
	flags := sc.TraceFlags() & trace.FlagsSampled
	carrier.Set(traceparentHeader, "00-"+sc.TraceID().String()+"-"+sc.SpanID().String()+"-"+byteHex(byte(flags)))
	if state := sc.TraceState().Header(); state != "" {
		carrier.Set(tracestateHeader, state)
	}
}

// Extract implements TextMapPropagator.
func (TraceContext) Extract(ctx context.Context, carrier TextMapCarrier) context.Context {
	sc, ok := parseTraceparent(carrier.Get(traceparentHeader))
	if !ok {
		return ctx
	}

	state := tracestate.TraceState{}
	if raw := carrier.Get(tracestateHeader); raw != "" && len(raw) <= maxHeaderLen {
		if parsed, err := tracestate.Parse(raw); err == nil {
			state = parsed
		}
		// Any parse error falls back to an empty TraceState rather than
		// rejecting the whole extraction: the traceparent header is the
		// load-bearing part.
	}
	sc = sc.WithTraceState(state).WithRemote(true)
	return trace.ContextWithSpan(ctx, trace.NewNonRecordingSpan(sc))
}

// parseTraceparent parses a traceparent header value. It never panics
// and rejects anything it cannot confidently interpret rather than
// guessing.
func parseTraceparent(header string) (trace.SpanContext, bool) {
	if header == "" || len(header) > maxHeaderLen {
		return trace.SpanContext{}, false
	}
	parts := strings.Split(header, "-")
	if len(parts) < 4 {
		return trace.SpanContext{}, false
	}

	versionStr, traceIDStr, spanIDStr, flagsStr := parts[0], parts[1], parts[2], parts[3]
	if len(versionStr) != 2 || hasUpper(versionStr) {
		return trace.SpanContext{}, false
	}
	version, err := hexByte(versionStr)
	if err != nil || version > maxW3CVersion {
		return trace.SpanContext{}, false
	}
	// Version 0 has exactly four dash-separated fields; later versions
	// may append fields this parser doesn't understand yet, and those
	// are tolerated rather than rejected.
	if version == 0 && len(parts) != 4 {
		return trace.SpanContext{}, false
	}

	if hasUpper(traceIDStr) || hasUpper(spanIDStr) || hasUpper(flagsStr) {
		return trace.SpanContext{}, false
	}
	traceID, err := trace.TraceIDFromHex(traceIDStr)
	if err != nil || !traceID.IsValid() {
		return trace.SpanContext{}, false
	}
	spanID, err := trace.SpanIDFromHex(spanIDStr)
	if err != nil || !spanID.IsValid() {
		return trace.SpanContext{}, false
	}
	if len(flagsStr) != 2 {
		return trace.SpanContext{}, false
	}
	flagsByte, err := hexByte(flagsStr)
	if err != nil {
		return trace.SpanContext{}, false
	}
	if version == 0 && flagsByte > 0x01 {
		// Version 0 only defines the SAMPLED bit; any other bit set is a
		// malformed header, not a forward-compat field, at version 0.
		return trace.SpanContext{}, false
	}

	flags := trace.TraceFlags(flagsByte) & trace.FlagsSampled
	sc := trace.NewSpanContext(traceID, spanID, flags, true, tracestate.TraceState{})
	return sc, true
}

func hasUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}

func hexByte(s string) (byte, error) {
	if len(s) != 2 {
		return 0, trace.ErrInvalidHexChars
	}
	hi, err := hexNibble(s[0])
	if err != nil {
		return 0, err
	}
	lo, err := hexNibble(s[1])
	if err != nil {
		return 0, err
	}
	return hi<<4 | lo, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	default:
		return 0, trace.ErrInvalidHexChars
	}
}

func byteHex(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0x0f]})
}
