package history

import (
	"context"
	"time"

	"github.com/doughepi/grain/core/ingest"

	"go.uber.org/zap"
)

// saveTimeout bounds how long recording a pass may block the end of the pass.
const saveTimeout = 5 * time.Second

// Recorder stores every finished pass. A failure to record is logged and never
// affects the pass.
type Recorder struct {
	ingest.NopObserver

	repo   *Repository
	logger *zap.Logger
}

// NewRecorder creates a recorder writing to repo.
func NewRecorder(repo *Repository, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{repo: repo, logger: logger}
}

// Record stores the summary of result.
func (r *Recorder) Record(ctx context.Context, result *ingest.PassResult) error {
	return r.repo.Save(ctx, NewRecord(result))
}

func (r *Recorder) OnPassEnd(result *ingest.PassResult) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := r.Record(ctx, result); err != nil {
		r.logger.Warn("Failed to record pass", zap.String("pass_id", result.PassID), zap.Error(err))
	}
}
