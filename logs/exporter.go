package logs

import (
	"context"

	"github.com/jonwraymond/otelcore/resource"
)

// Exporter sends log records to a backend. Implementations must be safe
// for concurrent use: a BatchProcessor with MaxConcurrentExports > 1 may
// call Export from multiple goroutines at once.
type Exporter interface {
	// Export sends a batch of records. It must not retain records after
	// returning, and must return promptly when ctx is canceled.
	Export(ctx context.Context, records []Record) error
	// Shutdown flushes any buffered state and releases resources. After
	// Shutdown returns, Export must not be called again.
	Shutdown(ctx context.Context) error
	// SetResource is called once, before the first Export, with the
	// LoggerProvider's Resource.
	SetResource(res *resource.Resource)
}
