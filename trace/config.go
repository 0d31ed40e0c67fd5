package trace

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

var batchConfigValidate = validator.New()

const (
	envMaxQueueSize         = "OTEL_BSP_MAX_QUEUE_SIZE"
	envScheduledDelay       = "OTEL_BSP_SCHEDULE_DELAY"
	envMaxExportBatchSize   = "OTEL_BSP_MAX_EXPORT_BATCH_SIZE"
	envExportTimeout        = "OTEL_BSP_EXPORT_TIMEOUT"
	envMaxConcurrentExports = "OTEL_BSP_MAX_CONCURRENT_EXPORTS"

	defaultMaxQueueSize         = 2048
	defaultScheduledDelayMillis = 5000
	defaultMaxExportBatchSize   = 512
	defaultExportTimeoutMillis  = 30000
	defaultMaxConcurrentExports = 1
)

// BatchConfig tunes a BatchProcessor's queueing and export behavior.
type BatchConfig struct {
	// MaxQueueSize bounds the number of spans buffered awaiting export;
	// once full, OnEnd drops new spans rather than blocking the calling
	// goroutine.
	MaxQueueSize int `validate:"required,gt=0"`
	// ScheduledDelay is how long the worker waits between batches when
	// the queue hasn't already reached MaxExportBatchSize.
	ScheduledDelay time.Duration `validate:"required,gt=0"`
	// MaxExportBatchSize is the largest batch handed to Exporter.Export
	// in one call. Always clamped to MaxQueueSize when built via
	// NewBatchConfig/BatchConfigFromEnv.
	MaxExportBatchSize int `validate:"required,gt=0"`
	// MaxExportTimeout bounds a single Export call.
	MaxExportTimeout time.Duration `validate:"required,gt=0"`
	// MaxConcurrentExports bounds how many Export calls may be in
	// flight at once. The default of 1 makes exports run synchronously
	// on the worker goroutine, the common case.
	MaxConcurrentExports int `validate:"required,gt=0"`
}

// Validate reports whether c's numeric fields satisfy their required
// ranges (all must be positive). NewBatchConfig does not call it: values
// from the environment or from options are used as given, apart from
// clamping MaxExportBatchSize to MaxQueueSize.
func (c BatchConfig) Validate() error {
	return batchConfigValidate.Struct(c)
}

// DefaultBatchConfig returns the upstream SDK's documented defaults,
// unaffected by environment variables.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxQueueSize:         defaultMaxQueueSize,
		ScheduledDelay:       defaultScheduledDelayMillis * time.Millisecond,
		MaxExportBatchSize:   defaultMaxExportBatchSize,
		MaxExportTimeout:     defaultExportTimeoutMillis * time.Millisecond,
		MaxConcurrentExports: defaultMaxConcurrentExports,
	}
}

// BatchConfigOption customizes a BatchConfig built by NewBatchConfig.
type BatchConfigOption func(*BatchConfig)

// WithMaxQueueSize overrides MaxQueueSize.
func WithMaxQueueSize(n int) BatchConfigOption {
	return func(c *BatchConfig) { c.MaxQueueSize = n }
}

// WithScheduledDelay overrides ScheduledDelay.
func WithScheduledDelay(d time.Duration) BatchConfigOption {
	return func(c *BatchConfig) { c.ScheduledDelay = d }
}

// WithMaxExportBatchSize overrides MaxExportBatchSize.
func WithMaxExportBatchSize(n int) BatchConfigOption {
	return func(c *BatchConfig) { c.MaxExportBatchSize = n }
}

// WithMaxExportTimeout overrides MaxExportTimeout.
func WithMaxExportTimeout(d time.Duration) BatchConfigOption {
	return func(c *BatchConfig) { c.MaxExportTimeout = d }
}

// WithMaxConcurrentExports overrides MaxConcurrentExports.
func WithMaxConcurrentExports(n int) BatchConfigOption {
	return func(c *BatchConfig) { c.MaxConcurrentExports = n }
}

// NewBatchConfig builds a BatchConfig starting from environment variables
// (OTEL_BSP_MAX_QUEUE_SIZE, OTEL_BSP_SCHEDULE_DELAY,
// OTEL_BSP_MAX_EXPORT_BATCH_SIZE, OTEL_BSP_EXPORT_TIMEOUT,
// OTEL_BSP_MAX_CONCURRENT_EXPORTS), then applying opts on top, and finally
// enforcing MaxExportBatchSize <= MaxQueueSize by clamping rather than
// rejecting: a batch larger than the queue that holds it can never occur,
// so there is nothing useful to reject.
func NewBatchConfig(opts ...BatchConfigOption) BatchConfig {
	c := batchConfigFromEnv()
	for _, opt := range opts {
		opt(&c)
	}
	return clampBatchConfig(c)
}

func batchConfigFromEnv() BatchConfig {
	c := DefaultBatchConfig()
	if v, ok := envInt(envMaxQueueSize); ok {
		c.MaxQueueSize = v
	}
	if v, ok := envInt(envScheduledDelay); ok {
		c.ScheduledDelay = time.Duration(v) * time.Millisecond
	}
	if v, ok := envInt(envMaxExportBatchSize); ok {
		c.MaxExportBatchSize = v
	}
	if v, ok := envInt(envExportTimeout); ok {
		c.MaxExportTimeout = time.Duration(v) * time.Millisecond
	}
	if v, ok := envInt(envMaxConcurrentExports); ok {
		c.MaxConcurrentExports = v
	}
	return c
}

func envInt(name string) (int, bool) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func clampBatchConfig(c BatchConfig) BatchConfig {
	if c.MaxExportBatchSize > c.MaxQueueSize {
		c.MaxExportBatchSize = c.MaxQueueSize
	}
	return c
}
