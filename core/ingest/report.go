package ingest

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// PassResult is the outcome of one synchronization pass.
type PassResult struct {
	PassID  string `json:"pass_id"`
	Source  string `json:"source"`
	Staged  int    `json:"staged"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	// Waited counts update targets that went through the wait path.
	Waited int `json:"waited"`
	// Failed counts items in failed or skipped batches plus items that could not be staged.
	Failed     int            `json:"failed"`
	Batches    []BatchOutcome `json:"batches"`
	ItemErrors []ItemError    `json:"-"`
	Cleanup    CleanupReport  `json:"cleanup"`
	// Fatal is set when the pass was aborted, e.g. by a snapshot failure.
	Fatal    error     `json:"-"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
}

// FailedBatches returns the batches that were not sent successfully.
func (r *PassResult) FailedBatches() []BatchOutcome {
	var failed []BatchOutcome
	for _, b := range r.Batches {
		if !b.Success() {
			failed = append(failed, b)
		}
	}
	return failed
}

// Err joins every failure of the pass, or returns nil when everything succeeded.
// Cleanup failures are not included.
func (r *PassResult) Err() error {
	var errs []error
	if r.Fatal != nil {
		errs = append(errs, r.Fatal)
	}
	for _, b := range r.FailedBatches() {
		errs = append(errs, b.Err)
	}
	for _, ie := range r.ItemErrors {
		errs = append(errs, ie)
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// Duration returns how long the pass took.
func (r *PassResult) Duration() time.Duration {
	if r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// Summary returns a one-line description of the pass.
func (r *PassResult) Summary() string {
	s := fmt.Sprintf("%s: %d staged, %d created, %d updated (%d after waiting), %d failed",
		r.Source, r.Staged, r.Created, r.Updated, r.Waited, r.Failed)
	if r.Cleanup.Requested {
		s += fmt.Sprintf(", %d payloads removed", r.Cleanup.Removed)
		if r.Cleanup.Failed > 0 {
			s += fmt.Sprintf(" (%d not removed)", r.Cleanup.Failed)
		}
	}
	if r.Fatal != nil {
		s += " [aborted]"
	}
	return s
}

func (r *PassResult) tally() {
	for _, b := range r.Batches {
		switch {
		case !b.Success():
			r.Failed += b.Size()
		case b.Op == OpCreate:
			r.Created += b.Size()
		case b.Op == OpUpdate:
			r.Updated += b.Size()
		}
		if b.Waited {
			r.Waited += b.Size()
		}
	}
	r.Failed += len(r.ItemErrors)
}
