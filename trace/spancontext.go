package trace

import "github.com/jonwraymond/otelcore/tracestate"

// SpanContext is the immutable identity a Span carries: its TraceID,
// SpanID, TraceFlags, whether it was extracted from a remote propagator,
// and its TraceState. New contexts are always derived from an existing
// one; SpanContext itself is never mutated in place.
type SpanContext struct {
	traceID    TraceID
	spanID     SpanID
	traceFlags TraceFlags
	remote     bool
	traceState tracestate.TraceState
}

// NewSpanContext builds a SpanContext from its immutable fields.
func NewSpanContext(traceID TraceID, spanID SpanID, flags TraceFlags, remote bool, state tracestate.TraceState) SpanContext {
	return SpanContext{
		traceID:    traceID,
		spanID:     spanID,
		traceFlags: flags,
		remote:     remote,
		traceState: state,
	}
}

// TraceID returns the context's TraceID.
func (sc SpanContext) TraceID() TraceID { return sc.traceID }

// SpanID returns the context's SpanID.
func (sc SpanContext) SpanID() SpanID { return sc.spanID }

// TraceFlags returns the context's flags.
func (sc SpanContext) TraceFlags() TraceFlags { return sc.traceFlags }

// IsRemote reports whether this context was extracted from a propagator
// rather than locally generated.
func (sc SpanContext) IsRemote() bool { return sc.remote }

// TraceState returns the context's TraceState.
func (sc SpanContext) TraceState() tracestate.TraceState { return sc.traceState }

// IsSampled is a convenience for TraceFlags().IsSampled().
func (sc SpanContext) IsSampled() bool { return sc.traceFlags.IsSampled() }

// IsValid reports whether both the TraceID and SpanID are non-zero.
func (sc SpanContext) IsValid() bool {
	return sc.traceID.IsValid() && sc.spanID.IsValid()
}

// WithTraceState returns a copy of sc with its TraceState replaced.
func (sc SpanContext) WithTraceState(state tracestate.TraceState) SpanContext {
	sc.traceState = state
	return sc
}

// WithRemote returns a copy of sc with IsRemote set to remote.
func (sc SpanContext) WithRemote(remote bool) SpanContext {
	sc.remote = remote
	return sc
}

// Equal reports whether sc and other carry the same identity (TraceID,
// SpanID, flags, remoteness, and TraceState header).
func (sc SpanContext) Equal(other SpanContext) bool {
	return sc.traceID == other.traceID &&
		sc.spanID == other.spanID &&
		sc.traceFlags == other.traceFlags &&
		sc.remote == other.remote &&
		sc.traceState.Header() == other.traceState.Header()
}
