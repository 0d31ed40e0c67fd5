package logs

import (
	"time"

	"github.com/jonwraymond/otelcore/trace"
)

// Severity is the log record's severity level, modeled after the
// OpenTelemetry log data model's severity number ranges. Within a
// level, lower numbers are less severe (e.g. SeverityWarn1 < SeverityWarn4).
type Severity int

const (
	SeverityUnspecified Severity = 0

	SeverityTrace1 Severity = 1
	SeverityTrace2 Severity = 2
	SeverityTrace3 Severity = 3
	SeverityTrace4 Severity = 4

	SeverityDebug1 Severity = 5
	SeverityDebug2 Severity = 6
	SeverityDebug3 Severity = 7
	SeverityDebug4 Severity = 8

	SeverityInfo1 Severity = 9
	SeverityInfo2 Severity = 10
	SeverityInfo3 Severity = 11
	SeverityInfo4 Severity = 12

	SeverityWarn1 Severity = 13
	SeverityWarn2 Severity = 14
	SeverityWarn3 Severity = 15
	SeverityWarn4 Severity = 16

	SeverityError1 Severity = 17
	SeverityError2 Severity = 18
	SeverityError3 Severity = 19
	SeverityError4 Severity = 20

	SeverityFatal1 Severity = 21
	SeverityFatal2 Severity = 22
	SeverityFatal3 Severity = 23
	SeverityFatal4 Severity = 24
)

// Convenience aliases for the common case of one level per severity
// class.
const (
	SeverityTrace = SeverityTrace1
	SeverityDebug = SeverityDebug1
	SeverityInfo  = SeverityInfo1
	SeverityWarn  = SeverityWarn1
	SeverityError = SeverityError1
	SeverityFatal = SeverityFatal1
)

// String returns the OTel short name for the severity's class
// (TRACE/DEBUG/INFO/WARN/ERROR/FATAL), ignoring the within-class number.
func (s Severity) String() string {
	switch {
	case s == SeverityUnspecified:
		return "UNSPECIFIED"
	case s <= SeverityTrace4:
		return "TRACE"
	case s <= SeverityDebug4:
		return "DEBUG"
	case s <= SeverityInfo4:
		return "INFO"
	case s <= SeverityWarn4:
		return "WARN"
	case s <= SeverityError4:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// Record is a single log entry. Timestamp and TraceContext are both
// optional at construction time: Logger.Emit fills ObservedTimestamp
// with the current wall time if ObservedTimestamp is zero, and fills
// TraceContext from the active span in the emitting context if one is
// present and TraceContext is not already set.
type Record struct {
	Timestamp         time.Time
	ObservedTimestamp time.Time
	Severity          Severity
	Body              string
	Attributes        []trace.KeyValue
	TraceContext      trace.SpanContext

	InstrumentationScope trace.InstrumentationScope
}
