package propagation

import (
	"context"
	"strconv"
	"strings"

	"github.com/jonwraymond/otelcore/trace"
	"github.com/jonwraymond/otelcore/tracestate"
)

const (
	defaultJaegerHeader        = "uber-trace-id"
	defaultJaegerBaggagePrefix = "uberctx-"
	jaegerDeprecatedParentSpan = "0"
)

// Jaeger implements the Jaeger propagation format: a single
// "uber-trace-id" header carrying "{trace-id}:{span-id}:{parent-id}:{flags}",
// plus "uberctx-"-prefixed headers carrying baggage.
type Jaeger struct {
	header        string
	baggagePrefix string
}

// NewJaeger returns a Jaeger propagator using the default header name
// ("uber-trace-id") and baggage prefix ("uberctx-").
func NewJaeger() Jaeger {
	return Jaeger{header: defaultJaegerHeader, baggagePrefix: defaultJaegerBaggagePrefix}
}

// NewJaegerWithHeader returns a Jaeger propagator using a custom header
// name and baggage prefix. An empty argument falls back to that field's
// default.
func NewJaegerWithHeader(header, baggagePrefix string) Jaeger {
	header = strings.TrimSpace(header)
	baggagePrefix = strings.TrimSpace(baggagePrefix)
	if header == "" {
		header = defaultJaegerHeader
	}
	if baggagePrefix == "" {
		baggagePrefix = defaultJaegerBaggagePrefix
	}
	return Jaeger{header: header, baggagePrefix: baggagePrefix}
}

// Fields implements TextMapPropagator.
func (j Jaeger) Fields() []string {
	return []string{j.header}
}

// Inject implements TextMapPropagator.
func (j Jaeger) Inject(ctx context.Context, carrier TextMapCarrier) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return
	}
	var flag byte
	if sc.IsSampled() {
		if sc.TraceFlags()&trace.FlagsDebug != 0 {
			flag = 0x03
		} else {
			flag = 0x01
		}
	}
	carrier.Set(j.header, sc.TraceID().String()+":"+sc.SpanID().String()+":"+
		jaegerDeprecatedParentSpan+":"+strconv.FormatUint(uint64(flag), 16))
}

// Extract implements TextMapPropagator.
func (j Jaeger) Extract(ctx context.Context, carrier TextMapCarrier) context.Context {
	header := carrier.Get(j.header)
	if header == "" || len(header) > maxHeaderLen {
		return ctx
	}
	if !strings.Contains(header, ":") {
		// Some clients URL-encode the colon; only try this fallback when
		// no literal colon is present, so a value that's legitimately
		// missing a separator still fails cleanly below.
		header = strings.ReplaceAll(header, "%3A", ":")
	}

	parts := strings.Split(header, ":")
	if len(parts) != 4 {
		return ctx
	}

	traceID, ok := jaegerTraceID(parts[0])
	if !ok {
		return ctx
	}
	spanID, ok := jaegerSpanID(parts[1])
	if !ok {
		return ctx
	}
	flags, ok := jaegerFlags(parts[3])
	if !ok {
		return ctx
	}

	state, ok := j.extractBaggage(carrier)
	if !ok {
		return ctx
	}
	sc := trace.NewSpanContext(traceID, spanID, flags, true, state)
	return trace.ContextWithSpan(ctx, trace.NewNonRecordingSpan(sc))
}

func jaegerTraceID(s string) (trace.TraceID, bool) {
	if len(s) > 32 {
		return trace.TraceID{}, false
	}
	id, err := trace.TraceIDFromHex(leftPad(s, 32))
	if err != nil || !id.IsValid() {
		return trace.TraceID{}, false
	}
	return id, true
}

func jaegerSpanID(s string) (trace.SpanID, bool) {
	if len(s) > 16 {
		return trace.SpanID{}, false
	}
	id, err := trace.SpanIDFromHex(leftPad(s, 16))
	if err != nil || !id.IsValid() {
		return trace.SpanID{}, false
	}
	return id, true
}

// jaegerFlags decodes the decimal flags field: bit0 is SAMPLED, bit1 is
// DEBUG (meaningful only alongside SAMPLED), higher bits (e.g. the
// firehose flag) are accepted but not represented.
func jaegerFlags(s string) (trace.TraceFlags, bool) {
	if len(s) > 3 {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, false
	}
	flag := byte(n)
	if flag&0x01 == 0 {
		return 0, true
	}
	flags := trace.FlagsSampled
	if flag&0x02 != 0 {
		flags |= trace.FlagsDebug
	}
	return flags, true
}

// extractBaggage builds a TraceState from the carrier's "uberctx-"-prefixed
// keys. Matching the reference implementation, a malformed baggage key or
// value fails the whole extraction (not just the baggage) rather than
// silently dropping it.
func (j Jaeger) extractBaggage(carrier TextMapCarrier) (tracestate.TraceState, bool) {
	var members []tracestate.Member
	for _, key := range carrier.Keys() {
		if !strings.HasPrefix(key, j.baggagePrefix) {
			continue
		}
		members = append(members, tracestate.Member{Key: key, Value: carrier.Get(key)})
	}
	state, err := tracestate.FromKeyValues(members...)
	if err != nil {
		return tracestate.TraceState{}, false
	}
	return state, true
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
