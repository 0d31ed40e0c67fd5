package metrics

import "context"

// ManualReader is a Reader that does nothing beyond triggering a
// collection pass on demand; meant for tests and for bridges (like
// PrometheusBridge) that drive collection on their own schedule rather
// than a periodic timer.
type ManualReader struct{}

// NewManualReader returns a ManualReader.
func NewManualReader() *ManualReader { return &ManualReader{} }

// Collect runs one collection pass over pipeline.
func (ManualReader) Collect(ctx context.Context, pipeline *Pipeline) (ResourceMetrics, error) {
	return pipeline.collect(ctx)
}

var _ Reader = ManualReader{}
