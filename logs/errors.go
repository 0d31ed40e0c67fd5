package logs

import "errors"

// ErrAlreadyShutdown is returned by LoggerProvider.Shutdown when it has
// already run.
var ErrAlreadyShutdown = errors.New("logs: provider already shut down")

// ErrExportTimeout is not returned by this package: a ForceFlush or
// Shutdown whose ctx is done before the processor finishes returns
// ctx.Err() instead.
var ErrExportTimeout = errors.New("logs: export timed out")
