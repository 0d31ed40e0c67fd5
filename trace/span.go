package trace

import (
	"context"
	"sync"
	"time"
)

// SpanKind describes a span's relationship to its caller/callee.
type SpanKind int

const (
	SpanKindUnspecified SpanKind = iota
	SpanKindInternal
	SpanKindServer
	SpanKindClient
	SpanKindProducer
	SpanKindConsumer
)

// StatusCode is the outcome recorded on a span.
type StatusCode int

const (
	StatusUnset StatusCode = iota
	StatusOK
	StatusError
)

// Status is the span's recorded outcome.
type Status struct {
	Code        StatusCode
	Description string
}

// Event is a timestamped annotation attached to a span.
type Event struct {
	Name       string
	Time       time.Time
	Attributes []KeyValue
}

// Link references another span, e.g. one that caused this one to start.
type Link struct {
	SpanContext SpanContext
	Attributes  []KeyValue
}

// SpanLimits bounds the number of attributes, events, and links a single
// span may accumulate. Items beyond a limit are dropped and counted in
// SpanData.DroppedAttributesCount, DroppedEventsCount, or
// DroppedLinksCount rather than growing memory without bound.
type SpanLimits struct {
	MaxAttributes int
	MaxEvents     int
	MaxLinks      int
}

// DefaultSpanLimits matches the upstream SDK's defaults.
var DefaultSpanLimits = SpanLimits{
	MaxAttributes: 128,
	MaxEvents:     128,
	MaxLinks:      128,
}

// SpanData is the immutable, frozen view of a finished span handed to
// Processors. It is created by freezing a *span on End(); nothing further
// mutates it.
type SpanData struct {
	SpanContext            SpanContext
	ParentSpanID           SpanID
	Kind                   SpanKind
	Name                   string
	StartTime              time.Time
	EndTime                time.Time
	Attributes             []KeyValue
	DroppedAttributesCount int
	Events                 []Event
	DroppedEventsCount     int
	Links                  []Link
	DroppedLinksCount      int
	Status                 Status
	InstrumentationScope   InstrumentationScope
}

// Span is a single unit of work with a start time, an eventual end time,
// and accumulated attributes/events/links. A Span is obtained from
// Tracer.Start and must be ended exactly once with End.
type Span interface {
	// SpanContext returns the span's immutable identity.
	SpanContext() SpanContext
	// IsRecording reports whether the span is sampled and still open;
	// once ended it always reports false.
	IsRecording() bool
	// SetName renames the span.
	SetName(name string)
	// SetStatus sets the span's status. A StatusOK set after a
	// StatusError is ignored, so a recorded error is never reverted.
	SetStatus(code StatusCode, description string)
	// SetAttributes appends attributes, subject to SpanLimits.
	SetAttributes(attrs ...KeyValue)
	// AddEvent appends a timestamped event, subject to SpanLimits.
	AddEvent(name string, attrs ...KeyValue)
	// AddLink appends a link, subject to SpanLimits.
	AddLink(link Link)
	// RecordError is a convenience for AddEvent("exception", ...).
	RecordError(err error, attrs ...KeyValue)
	// End freezes the span and hands it to the owning Tracer's
	// processors. Calling End more than once has no effect after the
	// first call.
	End()
}

// span is the concrete Span implementation.
type span struct {
	mu sync.Mutex

	spanContext SpanContext
	parentID    SpanID
	kind        SpanKind
	name        string
	startTime   time.Time
	endTime     time.Time
	ended       bool

	attrs         []KeyValue
	droppedAttrs  int
	events        []Event
	droppedEvents int
	links         []Link
	droppedLinks  int
	status        Status
	scope         InstrumentationScope
	limits        SpanLimits

	onEnd func(SpanData)
}

var _ Span = (*span)(nil)

func (s *span) SpanContext() SpanContext {
	return s.spanContext
}

func (s *span) IsRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.ended && s.spanContext.IsSampled()
}

func (s *span) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	s.name = name
}

func (s *span) SetStatus(code StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	// Don't let a later OK silently erase a recorded Error.
	if s.status.Code == StatusError && code == StatusOK {
		return
	}
	s.status = Status{Code: code, Description: description}
}

func (s *span) SetAttributes(attrs ...KeyValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	s.appendAttributes(attrs)
}

// appendAttributes must be called with s.mu held.
func (s *span) appendAttributes(attrs []KeyValue) {
	limit := s.limits.MaxAttributes
	if limit <= 0 {
		limit = DefaultSpanLimits.MaxAttributes
	}
	for _, a := range attrs {
		if len(s.attrs) >= limit {
			s.droppedAttrs++
			continue
		}
		s.attrs = append(s.attrs, a)
	}
}

func (s *span) AddEvent(name string, attrs ...KeyValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	limit := s.limits.MaxEvents
	if limit <= 0 {
		limit = DefaultSpanLimits.MaxEvents
	}
	if len(s.events) >= limit {
		s.droppedEvents++
		return
	}
	s.events = append(s.events, Event{Name: name, Time: time.Now(), Attributes: attrs})
}

func (s *span) AddLink(link Link) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	limit := s.limits.MaxLinks
	if limit <= 0 {
		limit = DefaultSpanLimits.MaxLinks
	}
	if len(s.links) >= limit {
		s.droppedLinks++
		return
	}
	s.links = append(s.links, link)
}

func (s *span) RecordError(err error, attrs ...KeyValue) {
	if err == nil {
		return
	}
	all := make([]KeyValue, 0, len(attrs)+1)
	all = append(all, String("exception.message", err.Error()))
	all = append(all, attrs...)
	s.AddEvent("exception", all...)
}

func (s *span) End() {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	s.endTime = time.Now()
	data := SpanData{
		SpanContext:            s.spanContext,
		ParentSpanID:           s.parentID,
		Kind:                   s.kind,
		Name:                   s.name,
		StartTime:              s.startTime,
		EndTime:                s.endTime,
		Attributes:             append([]KeyValue(nil), s.attrs...),
		DroppedAttributesCount: s.droppedAttrs,
		Events:                 append([]Event(nil), s.events...),
		DroppedEventsCount:     s.droppedEvents,
		Links:                  append([]Link(nil), s.links...),
		DroppedLinksCount:      s.droppedLinks,
		Status:                 s.status,
		InstrumentationScope:   s.scope,
	}
	onEnd := s.onEnd
	s.mu.Unlock()

	if onEnd != nil {
		onEnd(data)
	}
}

type spanContextKey struct{}

// ContextWithSpan returns a copy of ctx carrying sp as the current span.
func ContextWithSpan(ctx context.Context, sp Span) context.Context {
	return context.WithValue(ctx, spanContextKey{}, sp)
}

// SpanFromContext returns the current span from ctx, or a no-op span with
// an empty SpanContext if none is set.
func SpanFromContext(ctx context.Context) Span {
	if sp, ok := ctx.Value(spanContextKey{}).(Span); ok {
		return sp
	}
	return noopSpan{}
}

// noopSpan is returned by SpanFromContext when no span is active, and by
// a shutdown TracerProvider's Tracers.
type noopSpan struct{}

var _ Span = noopSpan{}

func (noopSpan) SpanContext() SpanContext       { return SpanContext{} }
func (noopSpan) IsRecording() bool              { return false }
func (noopSpan) SetName(string)                 {}
func (noopSpan) SetStatus(StatusCode, string)   {}
func (noopSpan) SetAttributes(...KeyValue)      {}
func (noopSpan) AddEvent(string, ...KeyValue)   {}
func (noopSpan) AddLink(Link)                   {}
func (noopSpan) RecordError(error, ...KeyValue) {}
func (noopSpan) End()                           {}

// NonRecordingSpan wraps a SpanContext extracted from a remote carrier.
// It carries identity for propagation purposes (so a child span started
// from its context links to the right trace) without recording any data
// of its own.
type NonRecordingSpan struct {
	sc SpanContext
}

// NewNonRecordingSpan wraps sc in a Span that carries identity but
// records nothing.
func NewNonRecordingSpan(sc SpanContext) NonRecordingSpan {
	return NonRecordingSpan{sc: sc}
}

var _ Span = NonRecordingSpan{}

func (s NonRecordingSpan) SpanContext() SpanContext     { return s.sc }
func (NonRecordingSpan) IsRecording() bool              { return false }
func (NonRecordingSpan) SetName(string)                 {}
func (NonRecordingSpan) SetStatus(StatusCode, string)   {}
func (NonRecordingSpan) SetAttributes(...KeyValue)      {}
func (NonRecordingSpan) AddEvent(string, ...KeyValue)   {}
func (NonRecordingSpan) AddLink(Link)                   {}
func (NonRecordingSpan) RecordError(error, ...KeyValue) {}
func (NonRecordingSpan) End()                           {}
