package metrics

import "sync"

// DiagnosticLogger receives warnings the resolver cannot surface as an
// error (conflicting registrations, incompatible aggregations). Its
// Warn/Debug methods mirror otelglobal.DiagnosticLogger but take KV
// fields rather than otelglobal.Field, so one value cannot satisfy both.
type DiagnosticLogger interface {
	Warn(msg string, fields ...KV)
	Debug(msg string, fields ...KV)
}

// KV is a single structured logging field.
type KV struct {
	Key   string
	Value any
}

type noopDiagnosticLogger struct{}

func (noopDiagnosticLogger) Warn(string, ...KV)  {}
func (noopDiagnosticLogger) Debug(string, ...KV) {}

// InstrumentSync is the per-scope record a Resolver produces for an
// instrument: the StreamId it was routed to and whether it was skipped
// (aggregation incompatible with the instrument kind, or dropped by a
// matching view).
type InstrumentSync struct {
	Descriptor InstrumentDescriptor
	StreamId   StreamId
	Skipped    bool
}

// Resolver walks a Pipeline's View list for each newly created
// instrument, derives a Stream, computes its StreamId, and dedups
// aggregators across views and across repeat registrations of the same
// stream definition.
type Resolver struct {
	mu        sync.Mutex
	views     []View
	log       DiagnosticLogger
	cache     map[StreamId]struct{}
	canonical map[string]Stream // first-registered Stream per name; wins on conflict
	warned    map[string]bool
}

// NewResolver builds a Resolver over the given views, falling back to a
// single implicit view that keeps every instrument under its own
// default name when views is empty.
func NewResolver(log DiagnosticLogger, views ...View) *Resolver {
	if log == nil {
		log = noopDiagnosticLogger{}
	}
	return &Resolver{
		views:     views,
		log:       log,
		cache:     make(map[StreamId]struct{}),
		canonical: make(map[string]Stream),
		warned:    make(map[string]bool),
	}
}

// Resolve derives every StreamId desc should be routed to: one per
// matching view, deduplicated, with incompatible or view-dropped
// streams marked Skipped rather than omitted (so a pipeline can log
// what happened to every instrument it saw).
func (r *Resolver) Resolve(desc InstrumentDescriptor, numberKind NumberKind, temporality Temporality) []InstrumentSync {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := Stream{
		Name:        desc.Name,
		Description: desc.Description,
		Unit:        desc.Unit,
		Aggregation: defaultAggregation(desc.Kind),
	}

	matched := false
	var out []InstrumentSync
	for _, v := range r.views {
		if v.match == nil || !v.match(desc) {
			continue
		}
		matched = true
		out = append(out, r.resolveOne(desc, v.apply(desc, base), numberKind, temporality))
	}
	if !matched {
		out = append(out, r.resolveOne(desc, base, numberKind, temporality))
	}
	return out
}

func (r *Resolver) resolveOne(desc InstrumentDescriptor, s Stream, numberKind NumberKind, temporality Temporality) InstrumentSync {
	if s.Aggregation != AggregationDrop && !compatible(desc.Kind, s.Aggregation) {
		r.log.Warn("instrument incompatible with resolved aggregation",
			KV{"instrument", desc.Name}, KV{"kind", desc.Kind.String()}, KV{"aggregation", s.Aggregation.String()})
		return InstrumentSync{Descriptor: desc, Skipped: true}
	}

	if prior, ok := r.canonical[s.Name]; ok {
		if streamConflicts(prior, s) && !r.warned[s.Name] {
			r.warned[s.Name] = true
			r.log.Warn("conflicting instrument registration, first definition wins",
				KV{"name", s.Name}, KV{"first_description", prior.Description}, KV{"description", s.Description})
		}
		s = prior // first-registered definition wins
	} else {
		r.canonical[s.Name] = s
	}

	id := streamIdFor(desc, s, numberKind, temporality)

	if s.Aggregation == AggregationDrop {
		return InstrumentSync{Descriptor: desc, StreamId: id, Skipped: true}
	}

	r.cache[id] = struct{}{}
	return InstrumentSync{Descriptor: desc, StreamId: id}
}

// streamConflicts reports whether two resolved streams under the same
// name disagree on description, unit, or aggregation.
func streamConflicts(prior, next Stream) bool {
	return prior.Description != next.Description || prior.Unit != next.Unit || prior.Aggregation != next.Aggregation
}

// Streams returns every distinct StreamId currently cached by the
// resolver, for tests and diagnostics.
func (r *Resolver) Streams() []StreamId {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]StreamId, 0, len(r.cache))
	for id := range r.cache {
		ids = append(ids, id)
	}
	return ids
}
