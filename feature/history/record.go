package history

import (
	"time"

	"github.com/doughepi/grain/core/ingest"
)

// PassRecord is the stored summary of one sync pass.
type PassRecord struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PassID         string    `gorm:"column:pass_id;size:36;uniqueIndex" json:"pass_id"`
	Source         string    `gorm:"column:source;size:64;index" json:"source"`
	Staged         int       `gorm:"column:staged" json:"staged"`
	Created        int       `gorm:"column:created" json:"created"`
	Updated        int       `gorm:"column:updated" json:"updated"`
	Waited         int       `gorm:"column:waited" json:"waited"`
	Failed         int       `gorm:"column:failed" json:"failed"`
	FailedBatches  int       `gorm:"column:failed_batches" json:"failed_batches"`
	CleanupRemoved int       `gorm:"column:cleanup_removed" json:"cleanup_removed"`
	CleanupFailed  int       `gorm:"column:cleanup_failed" json:"cleanup_failed"`
	Error          string    `gorm:"column:error;type:text" json:"error,omitempty"`
	StartedAt      time.Time `gorm:"column:started_at;index" json:"started_at"`
	FinishedAt     time.Time `gorm:"column:finished_at" json:"finished_at"`
}

// TableName overrides the table name.
func (PassRecord) TableName() string {
	return "sync_passes"
}

// NewRecord summarizes a pass result.
func NewRecord(result *ingest.PassResult) *PassRecord {
	rec := &PassRecord{
		PassID:         result.PassID,
		Source:         result.Source,
		Staged:         result.Staged,
		Created:        result.Created,
		Updated:        result.Updated,
		Waited:         result.Waited,
		Failed:         result.Failed,
		FailedBatches:  len(result.FailedBatches()),
		CleanupRemoved: result.Cleanup.Removed,
		CleanupFailed:  result.Cleanup.Failed,
		StartedAt:      result.Started,
		FinishedAt:     result.Finished,
	}
	if err := result.Err(); err != nil {
		rec.Error = err.Error()
	}
	return rec
}

// Duration returns how long the pass took.
func (r PassRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
