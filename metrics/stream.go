package metrics

import "github.com/jonwraymond/otelcore/trace"

// InstrumentDescriptor is what an instrument is created with, before any
// view has had a chance to rename or filter it.
type InstrumentDescriptor struct {
	Scope       trace.InstrumentationScope
	Kind        InstrumentKind
	Name        string
	Description string
	Unit        string
}

// AttributeFilter is a per-key attribute predicate carried on a Stream.
// The Pipeline stores it but does not apply it: collected data points
// keep every attribute whether or not a filter is set.
type AttributeFilter func(key string) bool

// Stream is the resolved name/description/unit/aggregation/filter an
// instrument is routed through, after view matching.
type Stream struct {
	Name            string
	Description     string
	Unit            string
	Aggregation     Aggregation
	AttributeFilter AttributeFilter
}

// StreamId is the dedup key for aggregators within a Pipeline: two
// instruments that resolve to the same StreamId share one aggregator.
type StreamId struct {
	Name        string
	Description string
	Unit        string
	Aggregation Aggregation
	Temporality Temporality
	NumberKind  NumberKind
	Monotonic   bool
}

// streamIdFor computes the StreamId a resolved Stream yields for the
// given instrument descriptor.
func streamIdFor(desc InstrumentDescriptor, s Stream, numberKind NumberKind, temporality Temporality) StreamId {
	return StreamId{
		Name:        s.Name,
		Description: s.Description,
		Unit:        s.Unit,
		Aggregation: s.Aggregation,
		Temporality: temporality,
		NumberKind:  numberKind,
		Monotonic:   isMonotonic(desc.Kind),
	}
}
