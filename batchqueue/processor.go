package batchqueue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jonwraymond/otelcore/resource"
)

type msgKind int

const (
	msgExport msgKind = iota
	msgSetResource
	msgForceFlush
	msgShutdown
)

type message[T any] struct {
	kind msgKind
	item T
	res  *resource.Resource
	done chan error
}

// Processor is the generic bounded-queue/background-worker batching
// engine. A single goroutine owns the queue: it accumulates items into a
// batch and calls Exporter.Export either when the batch reaches
// Config.MaxExportBatchSize or when Config.ScheduledDelay elapses,
// whichever comes first.
type Processor[T any] struct {
	exporter Exporter[T]
	cfg      Config

	queue      chan message[T]
	workerDone chan struct{}
	isShutdown atomic.Bool
	dropped    atomic.Uint64

	sem      *semaphore.Weighted
	inflight sync.WaitGroup

	flushMu  sync.Mutex
	flushErr error
}

// NewProcessor starts a Processor's worker goroutine and returns it. The
// caller must eventually call Shutdown.
func NewProcessor[T any](exporter Exporter[T], cfg Config) *Processor[T] {
	if cfg.Logger == nil {
		cfg.Logger = noopDiagnosticLogger{}
	}
	p := &Processor[T]{
		exporter:   exporter,
		cfg:        cfg,
		queue:      make(chan message[T], cfg.MaxQueueSize),
		workerDone: make(chan struct{}),
	}
	if cfg.MaxConcurrentExports > 1 {
		p.sem = semaphore.NewWeighted(int64(cfg.MaxConcurrentExports))
	}
	go p.run()
	return p
}

// Enqueue offers item to the queue without blocking. If the queue is
// full, or the Processor has already shut down, the item is dropped and
// Dropped's count increments; Config.OnFirstDrop fires on the first such
// drop only.
func (p *Processor[T]) Enqueue(item T) {
	if p.isShutdown.Load() {
		p.countDrop()
		return
	}
	select {
	case p.queue <- message[T]{kind: msgExport, item: item}:
	default:
		p.countDrop()
	}
}

func (p *Processor[T]) countDrop() {
	if p.dropped.Add(1) == 1 && p.cfg.OnFirstDrop != nil {
		p.cfg.OnFirstDrop()
	}
}

// Dropped returns the number of items dropped since construction.
func (p *Processor[T]) Dropped() uint64 {
	return p.dropped.Load()
}

// SetResource forwards res to the Exporter from the worker goroutine, so
// it never races with an in-flight Export call. It is a best-effort,
// non-blocking send: under a saturated queue it is silently skipped
// rather than blocking the caller.
func (p *Processor[T]) SetResource(res *resource.Resource) {
	if p.isShutdown.Load() {
		return
	}
	select {
	case p.queue <- message[T]{kind: msgSetResource, res: res}:
	default:
	}
}

// ForceFlush exports any currently buffered items and waits for
// in-flight exports to complete, or returns ctx.Err() if ctx is done
// first.
func (p *Processor[T]) ForceFlush(ctx context.Context) error {
	if p.isShutdown.Load() {
		return ErrAlreadyShutdown
	}
	done := make(chan error, 1)
	select {
	case p.queue <- message[T]{kind: msgForceFlush, done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown flushes remaining items, shuts down the Exporter, and stops
// the worker goroutine. It is idempotent: calls after the first return
// ErrAlreadyShutdown.
func (p *Processor[T]) Shutdown(ctx context.Context) error {
	if !p.isShutdown.CompareAndSwap(false, true) {
		return ErrAlreadyShutdown
	}
	done := make(chan error, 1)
	select {
	case p.queue <- message[T]{kind: msgShutdown, done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-done:
		<-p.workerDone
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Processor[T]) run() {
	defer close(p.workerDone)

	buf := make([]T, 0, p.cfg.MaxExportBatchSize)
	timer := time.NewTimer(p.cfg.ScheduledDelay)
	defer timer.Stop()

	flush := func() {
		if len(buf) == 0 {
			return
		}
		batch := buf
		buf = make([]T, 0, p.cfg.MaxExportBatchSize)
		p.export(batch)
	}

	for {
		select {
		case msg := <-p.queue:
			switch msg.kind {
			case msgExport:
				buf = append(buf, msg.item)
				if len(buf) >= p.cfg.MaxExportBatchSize {
					flush()
					resetTimer(timer, p.cfg.ScheduledDelay)
				}
			case msgSetResource:
				p.exporter.SetResource(msg.res)
			case msgForceFlush:
				p.takeFlushErr()
				flush()
				p.inflight.Wait()
				resetTimer(timer, p.cfg.ScheduledDelay)
				msg.done <- p.takeFlushErr()
			case msgShutdown:
				p.takeFlushErr()
				flush()
				p.inflight.Wait()
				result := p.takeFlushErr()
				p.logDropSummary()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), p.cfg.MaxExportTimeout)
				// The exporter's own shutdown result is intentionally
				// discarded: the reply carries drain_and_export's result,
				// matching span_processor_with_async_runtime.rs's
				// `let _ = exporter.shutdown()`.
				_ = p.exporter.Shutdown(shutdownCtx)
				cancel()
				msg.done <- result
				return
			}
		case <-timer.C:
			flush()
			timer.Reset(p.cfg.ScheduledDelay)
		}
	}
}

// export runs one Export call, synchronously on the worker goroutine
// when MaxConcurrentExports <= 1 (the common case), or else bounded by
// the semaphore in its own goroutine so the worker can keep batching
// while multiple exports are in flight.
func (p *Processor[T]) export(batch []T) {
	if p.sem == nil {
		p.runExport(batch)
		return
	}
	if err := p.sem.Acquire(context.Background(), 1); err != nil {
		p.runExport(batch)
		return
	}
	p.inflight.Add(1)
	go func() {
		defer p.sem.Release(1)
		defer p.inflight.Done()
		p.runExport(batch)
	}()
}

func (p *Processor[T]) runExport(batch []T) {
	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.MaxExportTimeout)
	defer cancel()
	if err := p.exporter.Export(ctx, batch); err != nil {
		p.cfg.Logger.Debug("batch export failed", KV{"error", err.Error()})
		p.recordFlushErr(err)
		if p.cfg.OnExportError != nil {
			p.cfg.OnExportError(err)
		}
	}
}

// recordFlushErr accumulates err for the next ForceFlush/Shutdown caller
// to collect via takeFlushErr. Safe to call from the worker goroutine or
// a spawned export goroutine.
func (p *Processor[T]) recordFlushErr(err error) {
	p.flushMu.Lock()
	p.flushErr = errors.Join(p.flushErr, err)
	p.flushMu.Unlock()
}

// takeFlushErr returns and clears the accumulated export error.
func (p *Processor[T]) takeFlushErr() error {
	p.flushMu.Lock()
	defer p.flushMu.Unlock()
	err := p.flushErr
	p.flushErr = nil
	return err
}

// logDropSummary emits the lifetime drop summary once, on shutdown, when
// at least one item was dropped.
func (p *Processor[T]) logDropSummary() {
	dropped := p.dropped.Load()
	if dropped == 0 {
		return
	}
	p.cfg.Logger.Warn("batch processor shutting down with dropped items",
		KV{"dropped_count", dropped},
		KV{"max_queue_size", p.cfg.MaxQueueSize},
	)
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
