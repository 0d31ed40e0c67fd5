package metrics

import "strings"

// View matches instruments by scope/name and, when it matches, derives
// a Stream from the instrument's default one. A View that never matches
// anything is inert.
type View struct {
	match func(InstrumentDescriptor) bool
	apply func(InstrumentDescriptor, Stream) Stream
}

// NewView builds a View selecting instruments whose name matches
// instrumentName (an exact match, or a trailing "*" prefix match) and
// rewriting their Stream with the given ViewOptions.
func NewView(instrumentName string, opts ...ViewOption) View {
	match := exactOrPrefixMatcher(instrumentName)
	return View{
		match: func(d InstrumentDescriptor) bool { return match(d.Name) },
		apply: func(d InstrumentDescriptor, s Stream) Stream {
			for _, opt := range opts {
				opt(&s)
			}
			return s
		},
	}
}

// NewScopeView builds a View selecting every instrument created
// through a Tracer/Meter whose InstrumentationScope.Name matches
// scopeName (exact or trailing "*" prefix).
func NewScopeView(scopeName string, opts ...ViewOption) View {
	match := exactOrPrefixMatcher(scopeName)
	return View{
		match: func(d InstrumentDescriptor) bool { return match(d.Scope.Name) },
		apply: func(d InstrumentDescriptor, s Stream) Stream {
			for _, opt := range opts {
				opt(&s)
			}
			return s
		},
	}
}

func exactOrPrefixMatcher(pattern string) func(string) bool {
	if strings.HasSuffix(pattern, "*") {
		prefix := strings.TrimSuffix(pattern, "*")
		return func(s string) bool { return strings.HasPrefix(s, prefix) }
	}
	return func(s string) bool { return s == pattern }
}

// ViewOption customizes the Stream a matching View derives.
type ViewOption func(*Stream)

// WithName renames the resolved stream.
func WithName(name string) ViewOption {
	return func(s *Stream) { s.Name = name }
}

// WithDescription overrides the resolved stream's description.
func WithDescription(desc string) ViewOption {
	return func(s *Stream) { s.Description = desc }
}

// WithAggregation overrides the resolved stream's aggregation.
func WithAggregation(agg Aggregation) ViewOption {
	return func(s *Stream) { s.Aggregation = agg }
}

// WithAttributeFilter sets the matched stream's AttributeFilter. The
// filter is stored on the Stream only; see AttributeFilter.
func WithAttributeFilter(f AttributeFilter) ViewOption {
	return func(s *Stream) { s.AttributeFilter = f }
}

// Drop builds a View that routes every instrument matching
// instrumentName to AggregationDrop, discarding it entirely.
func Drop(instrumentName string) View {
	return NewView(instrumentName, WithAggregation(AggregationDrop))
}
