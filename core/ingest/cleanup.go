package ingest

import (
	"context"

	"github.com/doughepi/grain/core/payload"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// CleanupReport summarizes payload removal at the end of a pass.
type CleanupReport struct {
	Requested bool    `json:"requested"`
	Removed   int     `json:"removed"`
	Failed    int     `json:"failed"`
	Errors    []error `json:"-"`
}

// Cleanup removes the payloads of items the pass persisted itself. Referenced payloads
// (user files) are never touched. Failures are logged and counted and never stop the
// remaining removals.
func Cleanup(ctx context.Context, store payload.Store, items []DataItem, logger *zap.Logger) CleanupReport {
	if logger == nil {
		logger = zap.NewNop()
	}
	report := CleanupReport{Requested: true}

	seen := make(map[string]struct{}, len(items))
	var locations []string
	for _, item := range items {
		if !item.Owned {
			continue
		}
		if _, dup := seen[item.Location]; dup {
			continue
		}
		seen[item.Location] = struct{}{}
		locations = append(locations, item.Location)
	}
	if len(locations) == 0 {
		return report
	}

	fail := func(location string, err error) {
		err = errors.Mark(errors.Wrapf(err, "failed to remove payload %s", location), ErrPayloadRemove)
		report.Failed++
		report.Errors = append(report.Errors, err)
		logger.Warn("Failed to remove payload", zap.String("location", location), zap.Error(err))
	}

	if remover, ok := store.(payload.BatchRemover); ok {
		failed := remover.RemoveAll(ctx, locations)
		for _, location := range locations {
			if err, bad := failed[location]; bad {
				fail(location, err)
			} else {
				report.Removed++
			}
		}
	} else {
		for _, location := range locations {
			if err := store.Remove(ctx, location); err != nil {
				fail(location, err)
				continue
			}
			report.Removed++
		}
	}

	logger.Debug("Cleanup finished", zap.Int("removed", report.Removed), zap.Int("failed", report.Failed))
	return report
}
