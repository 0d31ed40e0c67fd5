package batchqueue

import (
	"context"

	"github.com/jonwraymond/otelcore/resource"
)

// Exporter sends a batch of T to a backend. Implementations must be safe
// for concurrent use whenever Config.MaxConcurrentExports > 1.
type Exporter[T any] interface {
	Export(ctx context.Context, items []T) error
	Shutdown(ctx context.Context) error
	SetResource(res *resource.Resource)
}
