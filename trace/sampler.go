package trace

import (
	"encoding/binary"
	"fmt"
)

// SamplingDecision is the outcome of a Sampler's ShouldSample call.
type SamplingDecision int

const (
	// Drop means the span will not be recorded or exported, and the
	// SAMPLED flag is cleared on its SpanContext.
	Drop SamplingDecision = iota
	// RecordOnly means the span is not exported and the SAMPLED flag is
	// cleared. Tracer.Start gives it the same non-sampled SpanContext as
	// Drop, so IsRecording reports false for it as well.
	RecordOnly
	// RecordAndSample means the span is recorded and exported; the
	// SAMPLED flag is set.
	RecordAndSample
)

// SamplingParameters are the inputs available to a Sampler at span-start
// time, before the Span itself exists.
type SamplingParameters struct {
	ParentContext SpanContext
	TraceID       TraceID
	Name          string
	Kind          SpanKind
	Attributes    []KeyValue
}

// SamplingResult is a Sampler's verdict: whether to record/export, and
// any attributes the sampler adds. Tracer.Start reads only Decision; it
// does not add Attributes to the span, and the new SpanContext always
// takes the parent's TraceState unchanged.
type SamplingResult struct {
	Decision   SamplingDecision
	Attributes []KeyValue
}

// Sampler decides whether a new span should be recorded and exported.
// Implementations must be safe for concurrent use; Tracer.Start calls
// ShouldSample on every span creation.
type Sampler interface {
	ShouldSample(p SamplingParameters) SamplingResult
	// Description is a human-readable identifier included in logs/debug
	// output, e.g. "TraceIDRatioBased{0.25}".
	Description() string
}

// alwaysOnSampler samples every span.
type alwaysOnSampler struct{}

// AlwaysOnSampler returns a Sampler that samples every span.
func AlwaysOnSampler() Sampler { return alwaysOnSampler{} }

func (alwaysOnSampler) ShouldSample(SamplingParameters) SamplingResult {
	return SamplingResult{Decision: RecordAndSample}
}
func (alwaysOnSampler) Description() string { return "AlwaysOnSampler" }

// alwaysOffSampler samples no spans.
type alwaysOffSampler struct{}

// AlwaysOffSampler returns a Sampler that samples no spans.
func AlwaysOffSampler() Sampler { return alwaysOffSampler{} }

func (alwaysOffSampler) ShouldSample(SamplingParameters) SamplingResult {
	return SamplingResult{Decision: Drop}
}
func (alwaysOffSampler) Description() string { return "AlwaysOffSampler" }

// traceIDRatioSampler samples a deterministic fraction of traces, keyed off
// the low 8 bytes of the TraceID so that every span in a trace gets the
// same decision regardless of which process makes it.
type traceIDRatioSampler struct {
	ratio     float64
	threshold uint64
}

// TraceIDRatioBased returns a Sampler that samples approximately the given
// fraction (clamped to [0, 1]) of traces, keyed off TraceID.
func TraceIDRatioBased(ratio float64) Sampler {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return &traceIDRatioSampler{
		ratio:     ratio,
		threshold: uint64(ratio * (1 << 63)),
	}
}

func (s *traceIDRatioSampler) ShouldSample(p SamplingParameters) SamplingResult {
	x := binary.BigEndian.Uint64(p.TraceID[8:16]) >> 1
	if x < s.threshold {
		return SamplingResult{Decision: RecordAndSample}
	}
	return SamplingResult{Decision: Drop}
}

func (s *traceIDRatioSampler) Description() string {
	return fmt.Sprintf("TraceIDRatioBased{%g}", s.ratio)
}

// parentBasedSampler delegates to root/remote/local sub-samplers
// depending on the parent SpanContext found in SamplingParameters; with no
// parent, it defers to root.
type parentBasedSampler struct {
	root             Sampler
	remoteSampled    Sampler
	remoteNotSampled Sampler
	localSampled     Sampler
	localNotSampled  Sampler
}

// ParentBasedOption configures a ParentBased sampler's delegates.
type ParentBasedOption func(*parentBasedSampler)

// WithRemoteParentSampled overrides the delegate used when the parent is
// remote and sampled. Default: AlwaysOnSampler.
func WithRemoteParentSampled(s Sampler) ParentBasedOption {
	return func(pb *parentBasedSampler) { pb.remoteSampled = s }
}

// WithRemoteParentNotSampled overrides the delegate used when the parent
// is remote and not sampled. Default: AlwaysOffSampler.
func WithRemoteParentNotSampled(s Sampler) ParentBasedOption {
	return func(pb *parentBasedSampler) { pb.remoteNotSampled = s }
}

// WithLocalParentSampled overrides the delegate used when the parent is
// local and sampled. Default: AlwaysOnSampler.
func WithLocalParentSampled(s Sampler) ParentBasedOption {
	return func(pb *parentBasedSampler) { pb.localSampled = s }
}

// WithLocalParentNotSampled overrides the delegate used when the parent is
// local and not sampled. Default: AlwaysOffSampler.
func WithLocalParentNotSampled(s Sampler) ParentBasedOption {
	return func(pb *parentBasedSampler) { pb.localNotSampled = s }
}

// ParentBased returns a Sampler that honors an existing sampling decision
// found on the parent SpanContext, and falls back to root for new traces.
// This is the recommended default for any service that isn't itself the
// entry point of a trace.
func ParentBased(root Sampler, opts ...ParentBasedOption) Sampler {
	pb := &parentBasedSampler{
		root:             root,
		remoteSampled:    AlwaysOnSampler(),
		remoteNotSampled: AlwaysOffSampler(),
		localSampled:     AlwaysOnSampler(),
		localNotSampled:  AlwaysOffSampler(),
	}
	for _, opt := range opts {
		opt(pb)
	}
	return pb
}

func (pb *parentBasedSampler) ShouldSample(p SamplingParameters) SamplingResult {
	psc := p.ParentContext
	if !psc.IsValid() {
		return pb.root.ShouldSample(p)
	}
	switch {
	case psc.IsRemote() && psc.IsSampled():
		return pb.remoteSampled.ShouldSample(p)
	case psc.IsRemote() && !psc.IsSampled():
		return pb.remoteNotSampled.ShouldSample(p)
	case !psc.IsRemote() && psc.IsSampled():
		return pb.localSampled.ShouldSample(p)
	default:
		return pb.localNotSampled.ShouldSample(p)
	}
}

func (pb *parentBasedSampler) Description() string {
	return fmt.Sprintf("ParentBased{root:%s}", pb.root.Description())
}
