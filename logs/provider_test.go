package logs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/otelcore/resource"
)

func TestLoggerProviderShutdownIsIdempotent(t *testing.T) {
	exp := newFakeExporter()
	lp := NewLoggerProviderBuilder().
		WithLogProcessor(NewSimpleProcessor(exp)).
		Build()

	if err := lp.Shutdown(context.Background()); err != nil {
		t.Fatalf("first Shutdown() error = %v", err)
	}
	if err := lp.Shutdown(context.Background()); err != ErrAlreadyShutdown {
		t.Errorf("second Shutdown() error = %v, want ErrAlreadyShutdown", err)
	}
}

func TestLoggerAfterShutdownIsNoop(t *testing.T) {
	exp := newFakeExporter()
	lp := NewLoggerProviderBuilder().
		WithLogProcessor(NewSimpleProcessor(exp)).
		Build()
	lp.Shutdown(context.Background())

	logger := lp.Logger("post-shutdown")
	logger.Emit(context.Background(), Record{Body: "dropped"})

	if exp.count() != 0 {
		t.Errorf("exported %d records after shutdown, want 0", exp.count())
	}
}

func TestLoggerProviderForceFlushSucceedsWhenAllProcessorsSucceed(t *testing.T) {
	exp1 := newFakeExporter()
	exp2 := newFakeExporter()
	lp := NewLoggerProviderBuilder().
		WithLogProcessor(NewSimpleProcessor(exp1)).
		WithLogProcessor(NewSimpleProcessor(exp2)).
		Build()
	defer lp.Shutdown(context.Background())

	if err := lp.ForceFlush(context.Background()); err != nil {
		t.Errorf("ForceFlush() error = %v, want nil", err)
	}
}

func TestLoggerProviderForceFlushSurfacesFailingProcessor(t *testing.T) {
	okExp := newFakeExporter()
	failExp := newFakeExporter()
	wantErr := errors.New("export boom")
	failExp.exportErr = wantErr

	okProc := NewBatchProcessor(okExp, NewBatchConfig(WithScheduledDelay(time.Hour)), nil, nil)
	failProc := NewBatchProcessor(failExp, NewBatchConfig(WithScheduledDelay(time.Hour)), nil, nil)
	lp := NewLoggerProviderBuilder().
		WithLogProcessor(okProc).
		WithLogProcessor(failProc).
		Build()
	defer lp.Shutdown(context.Background())

	logger := lp.Logger("test")
	logger.Emit(context.Background(), Record{Body: "x"})

	if err := lp.ForceFlush(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("ForceFlush() error = %v, want it to wrap %v", err, wantErr)
	}
}

func TestLoggerProviderResourcePropagatedToProcessors(t *testing.T) {
	exp := newFakeExporter()
	res := resource.New(resource.String("service.name", "svc-a"))
	lp := NewLoggerProviderBuilder().
		WithResource(res).
		WithLogProcessor(NewSimpleProcessor(exp)).
		Build()
	defer lp.Shutdown(context.Background())

	if exp.res != res {
		t.Errorf("exporter resource = %v, want %v", exp.res, res)
	}
}

func TestBatchProcessorWiredIntoProvider(t *testing.T) {
	exp := newFakeExporter()
	bp := NewBatchProcessor(exp, NewBatchConfig(WithScheduledDelay(10*time.Millisecond)), nil, nil)
	lp := NewLoggerProviderBuilder().
		WithLogProcessor(bp).
		Build()

	logger := lp.Logger("batch-test")
	logger.Emit(context.Background(), Record{Body: "hello"})

	if err := lp.ForceFlush(context.Background()); err != nil {
		t.Fatalf("ForceFlush() error = %v", err)
	}
	if exp.count() != 1 {
		t.Errorf("exported %d records, want 1", exp.count())
	}
	if err := lp.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !exp.wasShutdown() {
		t.Errorf("exporter was not shut down")
	}
}
