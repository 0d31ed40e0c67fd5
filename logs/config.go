package logs

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

var batchConfigValidate = validator.New()

const (
	envMaxQueueSize         = "OTEL_BLRP_MAX_QUEUE_SIZE"
	envScheduledDelay       = "OTEL_BLRP_SCHEDULE_DELAY"
	envMaxExportBatchSize   = "OTEL_BLRP_MAX_EXPORT_BATCH_SIZE"
	envExportTimeout        = "OTEL_BLRP_EXPORT_TIMEOUT"
	envMaxConcurrentExports = "OTEL_BLRP_MAX_CONCURRENT_EXPORTS"

	defaultMaxQueueSize         = 2048
	defaultScheduledDelayMillis = 5000
	defaultMaxExportBatchSize   = 512
	defaultExportTimeoutMillis  = 30000
	defaultMaxConcurrentExports = 1
)

// BatchConfig tunes a BatchProcessor's queueing and export behavior.
// Shares its shape and env-var naming scheme with trace.BatchConfig,
// substituting the logs-specific OTEL_BLRP_* prefix.
type BatchConfig struct {
	MaxQueueSize         int           `validate:"required,gt=0"`
	ScheduledDelay       time.Duration `validate:"required,gt=0"`
	MaxExportBatchSize   int           `validate:"required,gt=0"`
	MaxExportTimeout     time.Duration `validate:"required,gt=0"`
	MaxConcurrentExports int           `validate:"required,gt=0"`
}

// Validate reports whether c's numeric fields satisfy their required
// ranges.
func (c BatchConfig) Validate() error {
	return batchConfigValidate.Struct(c)
}

// DefaultBatchConfig returns the documented defaults, unaffected by
// environment variables.
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

// NewBatchConfig builds a BatchConfig from environment variables, then
// applies opts, then clamps MaxExportBatchSize to MaxQueueSize.
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
