package otelglobal

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Field is a single structured diagnostic field.
type Field struct {
	Key   string
	Value any
}

// DiagnosticLogger is the process-wide diagnostic sink installed with
// SetErrorHandler and returned by Handler. No other package in this
// module calls Handler; pipeline components take their own logger. Its
// Warn/Debug methods mirror metrics.DiagnosticLogger but take Field
// rather than metrics.KV, so the installed handler cannot be passed to
// a Pipeline directly.
type DiagnosticLogger interface {
	Warn(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
}

var (
	handlerMu sync.RWMutex
	handler   DiagnosticLogger = newJSONDiagnosticLogger(os.Stderr)
)

// SetErrorHandler installs the process-wide diagnostic sink. Passing
// nil restores the default JSON-stderr logger.
func SetErrorHandler(l DiagnosticLogger) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if l == nil {
		l = newJSONDiagnosticLogger(os.Stderr)
	}
	handler = l
}

// Handler returns the currently installed DiagnosticLogger.
func Handler() DiagnosticLogger {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// jsonDiagnosticLogger is the default DiagnosticLogger: one JSON object
// per line, written under a mutex, matching the teacher's structured
// logger shape (timestamp, level, msg, fields).
type jsonDiagnosticLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func newJSONDiagnosticLogger(w io.Writer) *jsonDiagnosticLogger {
	return &jsonDiagnosticLogger{w: w}
}

func (l *jsonDiagnosticLogger) Warn(msg string, fields ...Field)  { l.log("warn", msg, fields) }
func (l *jsonDiagnosticLogger) Debug(msg string, fields ...Field) { l.log("debug", msg, fields) }

func (l *jsonDiagnosticLogger) log(level, msg string, fields []Field) {
	entry := make(map[string]any, len(fields)+3)
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level
	entry["msg"] = msg
	for _, f := range fields {
		entry[f.Key] = f.Value
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(data)
	l.w.Write([]byte("\n"))
}
