package trace

import (
	"context"

	"github.com/jonwraymond/otelcore/resource"
)

// Exporter sends finished spans to a backend (OTLP collector, stdout,
// an in-memory test double, ...). Implementations must be safe for
// concurrent use: a BatchProcessor with max_concurrent_exports > 1 may
// call Export from multiple goroutines at once.
type Exporter interface {
	// Export sends a batch of finished spans. It must not retain spans
	// after returning, and must return promptly when ctx is canceled.
	Export(ctx context.Context, spans []SpanData) error
	// Shutdown flushes any buffered state and releases resources. After
	// Shutdown returns, Export must not be called again.
	Shutdown(ctx context.Context) error
	// SetResource is called once, before the first Export, with the
	// TracerProvider's Resource.
	SetResource(res *resource.Resource)
}
