package otelglobal

import (
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// NewStdrLogr builds a logr.Logger over the standard library's log
// package, for applications that want SetLogr without pulling in a
// separate logging stack. Equivalent to stdr.New(log.New(os.Stderr,
// "", log.LstdFlags)).
func NewStdrLogr() logr.Logger {
	return stdr.New(log.New(os.Stderr, "", log.LstdFlags))
}

// SetLogr installs l as the process-wide diagnostic sink, for host
// applications already standardized on logr rather than this package's
// own JSON writer. Warn maps to logr's Error (nil error, since these
// are not Go errors) at V(0); Debug maps to V(1).
func SetLogr(l logr.Logger) {
	SetErrorHandler(logrDiagnosticLogger{l: l})
}

type logrDiagnosticLogger struct {
	l logr.Logger
}

func (d logrDiagnosticLogger) Warn(msg string, fields ...Field) {
	d.l.Error(nil, msg, keysAndValues(fields)...)
}

func (d logrDiagnosticLogger) Debug(msg string, fields ...Field) {
	d.l.V(1).Info(msg, keysAndValues(fields)...)
}

func keysAndValues(fields []Field) []any {
	kv := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		kv = append(kv, f.Key, f.Value)
	}
	return kv
}
