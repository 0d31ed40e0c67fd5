// Package batchqueue implements the bounded-queue, background-worker
// batching engine shared by trace.BatchProcessor and logs.BatchProcessor:
// a channel-backed queue, a dedicated worker goroutine that flushes on a
// scheduled delay or when a batch fills up, drop-counting with a
// first-drop warning, and bounded concurrent exports via a semaphore.
//
// It is generic over the item type (trace.SpanData, a log record, ...)
// so the batching/worker-loop logic is written and tested exactly once.
package batchqueue
