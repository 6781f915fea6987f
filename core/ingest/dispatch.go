package ingest

import (
	"context"
	"time"

	"github.com/doughepi/grain/core/remote"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Operation is the kind of remote call a batch makes.
type Operation string

const (
	// OpCreate ingests new documents.
	OpCreate Operation = "create"
	// OpUpdate replaces existing documents.
	OpUpdate Operation = "update"
)

// BatchOutcome is the result of one remote call.
type BatchOutcome struct {
	Op          Operation `json:"op"`
	Index       int       `json:"index"`
	DocumentIDs []string  `json:"document_ids"`
	// Waited is set for single-item updates that went through the wait path.
	Waited bool `json:"waited,omitempty"`
	// Skipped is set when the batch was never sent because the pass was cancelled.
	Skipped  bool      `json:"skipped,omitempty"`
	Err      error     `json:"-"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
}

// Size returns the number of items in the batch.
func (o BatchOutcome) Size() int {
	return len(o.DocumentIDs)
}

// Success reports whether the remote call was made and succeeded.
func (o BatchOutcome) Success() bool {
	return o.Err == nil && !o.Skipped
}

// Batches splits items into consecutive groups of at most size. The last group may be
// smaller. size must be positive.
func Batches(items []DataItem, size int) [][]DataItem {
	if size < 1 {
		panic("ingest: batch size must be positive")
	}
	var out [][]DataItem
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

// DispatcherOptions configures a Dispatcher.
type DispatcherOptions struct {
	// Pace is the minimum time between the starts of consecutive remote calls.
	Pace time.Duration
	// PollInterval is how often WaitAndUpdate re-checks a processing document.
	PollInterval time.Duration
	// WaitTimeout bounds WaitAndUpdate. Zero waits until ctx is done.
	WaitTimeout time.Duration
	Observer    Observer
	Logger      *zap.Logger
}

// Dispatcher sends items to the remote store one batch at a time.
type Dispatcher struct {
	client       remote.Client
	snapshotter  Snapshotter
	limiter      *rate.Limiter
	pollInterval time.Duration
	waitTimeout  time.Duration
	observer     Observer
	logger       *zap.Logger
}

// NewDispatcher creates a dispatcher. All calls made through it share one pacing
// limiter, so creates, updates and waited updates are spaced out together.
func NewDispatcher(client remote.Client, snapshotter Snapshotter, opts DispatcherOptions) *Dispatcher {
	d := &Dispatcher{
		client:       client,
		snapshotter:  snapshotter,
		pollInterval: opts.PollInterval,
		waitTimeout:  opts.WaitTimeout,
		observer:     opts.Observer,
		logger:       opts.Logger,
	}
	if opts.Pace > 0 {
		d.limiter = rate.NewLimiter(rate.Every(opts.Pace), 1)
	}
	if d.pollInterval <= 0 {
		d.pollInterval = time.Second
	}
	if d.observer == nil {
		d.observer = NopObserver{}
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// Dispatch sends items in order-preserving batches of at most batchSize. A failed batch
// is recorded and the next one is still attempted. Once ctx is done the remaining
// batches are reported as skipped.
func (d *Dispatcher) Dispatch(ctx context.Context, items []DataItem, op Operation, batchSize int) []BatchOutcome {
	batches := Batches(items, batchSize)
	outcomes := make([]BatchOutcome, 0, len(batches))

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, d.skip(op, i, batch, err))
			continue
		}
		outcomes = append(outcomes, d.send(ctx, op, i, batch))
	}
	return outcomes
}

// WaitAndUpdate polls the remote state of item until it is no longer processing and
// then updates it on its own. index is the position reported to the observer.
func (d *Dispatcher) WaitAndUpdate(ctx context.Context, item DataItem, index int) BatchOutcome {
	log := d.logger.With(zap.String("document_id", item.DocumentID), zap.String("label", item.Label))
	started := time.Now()

	if err := d.waitForProcessing(ctx, item.DocumentID, log); err != nil {
		outcome := d.skip(OpUpdate, index, []DataItem{item}, err)
		outcome.Skipped = errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		outcome.Waited = true
		outcome.Started = started
		return outcome
	}

	outcome := d.send(ctx, OpUpdate, index, []DataItem{item})
	outcome.Waited = true
	outcome.Started = started
	return outcome
}

func (d *Dispatcher) waitForProcessing(ctx context.Context, id string, log *zap.Logger) error {
	waitCtx := ctx
	if d.waitTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, d.waitTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for polls := 1; ; polls++ {
		status, err := d.snapshotter.Snapshot(waitCtx, []string{id})
		switch {
		case err != nil:
			log.Warn("Status poll failed, retrying", zap.Int("poll", polls), zap.Error(err))
		case status[id] != StatusProcessing:
			log.Debug("Document left processing", zap.Int("polls", polls), zap.String("status", string(status[id])))
			return nil
		default:
			log.Debug("Document still processing", zap.Int("poll", polls))
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.WithHintf(
				errors.Wrapf(ErrWaitTimeout, "document %s still processing after %s", id, d.waitTimeout),
				"raise sync.wait_timeout_seconds or re-run the pass later",
			)
		case <-ticker.C:
		}
	}
}

func (d *Dispatcher) send(ctx context.Context, op Operation, index int, batch []DataItem) BatchOutcome {
	outcome := BatchOutcome{
		Op:          op,
		Index:       index,
		DocumentIDs: documentIDs(batch),
	}

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return d.skip(op, index, batch, err)
		}
	}

	d.observer.OnBatchStart(op, index, len(batch))
	for _, item := range batch {
		d.observer.OnItem(item.Label)
	}

	outcome.Started = time.Now()
	var err error
	switch op {
	case OpCreate:
		_, err = d.client.IngestFiles(ctx, files(batch))
	case OpUpdate:
		_, err = d.client.UpdateFiles(ctx, files(batch))
	default:
		err = errors.Newf("unknown operation %q", op)
	}
	outcome.Finished = time.Now()

	if err != nil {
		outcome.Err = dispatchError(op, index, len(batch), err)
		d.logger.Error("Batch failed",
			zap.String("op", string(op)),
			zap.Int("batch", index),
			zap.Int("size", len(batch)),
			zap.Error(err),
		)
	} else {
		d.logger.Debug("Batch sent",
			zap.String("op", string(op)),
			zap.Int("batch", index),
			zap.Int("size", len(batch)),
			zap.Duration("took", outcome.Finished.Sub(outcome.Started)),
		)
	}

	d.observer.OnBatchResult(op, index, outcome.Err == nil, len(batch), outcome.Err)
	return outcome
}

func (d *Dispatcher) skip(op Operation, index int, batch []DataItem, cause error) BatchOutcome {
	now := time.Now()
	outcome := BatchOutcome{
		Op:          op,
		Index:       index,
		DocumentIDs: documentIDs(batch),
		Skipped:     true,
		Err:         dispatchError(op, index, len(batch), cause),
		Started:     now,
		Finished:    now,
	}
	d.logger.Warn("Batch skipped",
		zap.String("op", string(op)),
		zap.Int("batch", index),
		zap.Int("size", len(batch)),
		zap.Error(cause),
	)
	d.observer.OnBatchResult(op, index, false, len(batch), outcome.Err)
	return outcome
}
