package ingest

import (
	"github.com/cockroachdb/errors"
)

// Error kinds reported by a synchronization pass. Use errors.Is to classify.
var (
	// ErrSnapshot means the remote state could not be read. It is fatal to the pass.
	ErrSnapshot = errors.New("remote snapshot failed")
	// ErrDispatch marks a failed create or update batch.
	ErrDispatch = errors.New("batch dispatch failed")
	// ErrWaitTimeout means a document stayed in processing longer than the wait timeout.
	ErrWaitTimeout = errors.New("timed out waiting for remote processing")
	// ErrPayloadWrite means a payload could not be written, so its item was not staged.
	ErrPayloadWrite = errors.New("payload write failed")
	// ErrPayloadRemove marks a payload that could not be removed during cleanup.
	ErrPayloadRemove = errors.New("payload remove failed")
	// ErrInvalidConfig is returned when sync settings are unusable.
	ErrInvalidConfig = errors.New("invalid sync configuration")
	// ErrInvalidBatchSize is returned for a batch size below one.
	ErrInvalidBatchSize = errors.Mark(errors.New("batch size must be at least 1"), ErrInvalidConfig)
)

// ItemError records a candidate that could not be staged.
type ItemError struct {
	Label string
	Err   error
}

func (e ItemError) Error() string {
	return e.Label + ": " + e.Err.Error()
}

func (e ItemError) Unwrap() error {
	return e.Err
}

func snapshotError(err error) error {
	return errors.WithHint(
		errors.Mark(errors.Wrap(err, "failed to read remote document state"), ErrSnapshot),
		"check remote.base_url and credentials; nothing was uploaded in this pass",
	)
}

func dispatchError(op Operation, index, size int, err error) error {
	return errors.Mark(errors.Wrapf(err, "%s batch %d (%d items)", op, index, size), ErrDispatch)
}
