package ingest

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Config holds settings for synchronization passes.
type Config struct {
	// BatchSize is the maximum number of items per remote call.
	BatchSize int `mapstructure:"batch_size" default:"1"`
	// PaceMillis is the minimum delay between consecutive remote calls.
	PaceMillis int `mapstructure:"pace_ms" default:"200"`
	// PollIntervalMillis is how often a processing document is re-checked.
	PollIntervalMillis int `mapstructure:"poll_interval_ms" default:"1000"`
	// WaitTimeoutSeconds bounds the wait for a processing document. Zero waits forever.
	WaitTimeoutSeconds int `mapstructure:"wait_timeout_seconds" default:"600"`
	// WaitOnProcessing routes updates of processing documents through the wait path.
	WaitOnProcessing bool `mapstructure:"wait_on_processing" default:"true"`
	// SnapshotPageSize is the page size used when listing every remote document.
	SnapshotPageSize int `mapstructure:"snapshot_page_size" default:"100"`
	// ScratchDir is where transient payloads are written. Empty uses the OS temp dir.
	ScratchDir string `mapstructure:"scratch_dir" default:""`
	// PayloadBackend selects where transient payloads live: "file" or "object".
	PayloadBackend string `mapstructure:"payload_backend" default:"file"`
}

// Pace returns the inter-batch delay.
func (c Config) Pace() time.Duration {
	return time.Duration(c.PaceMillis) * time.Millisecond
}

// PollInterval returns the wait-path poll interval.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMillis) * time.Millisecond
}

// WaitTimeout returns the wait-path bound. Zero means unbounded.
func (c Config) WaitTimeout() time.Duration {
	return time.Duration(c.WaitTimeoutSeconds) * time.Second
}

// Validate checks the settings a pass depends on.
func (c Config) Validate() error {
	if c.BatchSize < 1 {
		return errors.WithHintf(ErrInvalidBatchSize, "set sync.batch_size (or --batch-size) to 1 or more, got %d", c.BatchSize)
	}
	if c.PaceMillis < 0 {
		return errors.Mark(errors.Newf("pace_ms must not be negative, got %d", c.PaceMillis), ErrInvalidConfig)
	}
	if c.PollIntervalMillis <= 0 {
		return errors.Mark(errors.Newf("poll_interval_ms must be positive, got %d", c.PollIntervalMillis), ErrInvalidConfig)
	}
	if c.WaitTimeoutSeconds < 0 {
		return errors.Mark(errors.Newf("wait_timeout_seconds must not be negative, got %d", c.WaitTimeoutSeconds), ErrInvalidConfig)
	}
	if c.SnapshotPageSize < 1 {
		return errors.Mark(errors.Newf("snapshot_page_size must be at least 1, got %d", c.SnapshotPageSize), ErrInvalidConfig)
	}
	switch c.PayloadBackend {
	case "", "file", "object":
	default:
		return errors.Mark(errors.Newf("unknown payload_backend %q", c.PayloadBackend), ErrInvalidConfig)
	}
	return nil
}
