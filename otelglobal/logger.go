package otelglobal

import (
	"context"
	"sync"

	"github.com/jonwraymond/otelcore/logs"
)

var (
	loggerMu sync.RWMutex
	loggerLP *logs.LoggerProvider
)

// SetLoggerProvider installs the process-wide default LoggerProvider.
func SetLoggerProvider(lp *logs.LoggerProvider) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	loggerLP = lp
}

// Logger returns a Logger from the installed LoggerProvider, or a
// no-op Logger if none has been installed.
func Logger(name string, opts ...logs.LoggerOption) logs.Logger {
	loggerMu.RLock()
	lp := loggerLP
	loggerMu.RUnlock()
	if lp == nil {
		return noopLogger{}
	}
	return lp.Logger(name, opts...)
}

// noopLogger satisfies logs.Logger by discarding every Record.
type noopLogger struct{}

var _ logs.Logger = noopLogger{}

func (noopLogger) Emit(context.Context, logs.Record) {}
