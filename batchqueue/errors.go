package batchqueue

import "errors"

// ErrAlreadyShutdown is returned by ForceFlush/Shutdown once Shutdown has
// already been called. Enqueue returns no error; it drops the item.
var ErrAlreadyShutdown = errors.New("batchqueue: already shut down")

// ErrExportTimeout is not returned by Processor: when ctx is done before
// the worker acknowledges a ForceFlush or Shutdown request, those methods
// return ctx.Err().
var ErrExportTimeout = errors.New("batchqueue: timed out waiting for worker")
