package otelglobal

import (
	"context"
	"testing"

	"github.com/jonwraymond/otelcore/logs"
	"github.com/jonwraymond/otelcore/resource"
)

func TestLoggerDefaultsToNoop(t *testing.T) {
	SetLoggerProvider(nil)
	// Must not panic even though nothing is installed.
	Logger("test").Emit(context.Background(), logs.Record{Body: "hi"})
}

func TestLoggerUsesInstalledProvider(t *testing.T) {
	exp := &fakeLogExporter{}
	lp := logs.NewLoggerProviderBuilder().
		WithLogProcessor(logs.NewSimpleProcessor(exp)).
		Build()
	defer lp.Shutdown(context.Background())

	SetLoggerProvider(lp)
	defer SetLoggerProvider(nil)

	Logger("test").Emit(context.Background(), logs.Record{Body: "hi"})
	if exp.count != 1 {
		t.Errorf("exported %d records, want 1", exp.count)
	}
}

type fakeLogExporter struct {
	count int
}

func (e *fakeLogExporter) Export(_ context.Context, records []logs.Record) error {
	e.count += len(records)
	return nil
}
func (*fakeLogExporter) Shutdown(context.Context) error { return nil }
func (*fakeLogExporter) SetResource(*resource.Resource) {}
