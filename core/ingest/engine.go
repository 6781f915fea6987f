package ingest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/doughepi/grain/core/payload"
	"github.com/doughepi/grain/core/remote"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// cleanupTimeout bounds payload removal at the end of a pass.
const cleanupTimeout = 30 * time.Second

// PassOptions controls a single pass.
type PassOptions struct {
	// Cleanup removes the payloads the pass persisted once dispatch is done.
	Cleanup bool
	// WaitOnProcessing routes updates of documents still being processed through the
	// wait path instead of updating them right away.
	WaitOnProcessing bool
	// Observer receives progress for this pass in addition to the engine's observer.
	Observer Observer
}

// Engine runs synchronization passes. Passes never overlap: Run and Sync block while
// another pass is in progress.
type Engine struct {
	client      remote.Client
	store       payload.Store
	snapshotter Snapshotter
	cfg         Config
	observer    Observer
	logger      *zap.Logger

	mu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithObserver sets the observer notified for every pass.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithSnapshotter replaces the snapshotter built from the client.
func WithSnapshotter(s Snapshotter) Option {
	return func(e *Engine) { e.snapshotter = s }
}

// NewEngine creates an engine. cfg is validated here so a bad batch size fails before
// any work is done.
func NewEngine(client remote.Client, store payload.Store, cfg Config, opts ...Option) (*Engine, error) {
	if client == nil {
		return nil, errors.New("remote client is required")
	}
	if store == nil {
		return nil, errors.New("payload store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		client:   client,
		store:    store,
		cfg:      cfg,
		observer: NopObserver{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.snapshotter == nil {
		e.snapshotter = NewRemoteSnapshotter(client, cfg.SnapshotPageSize)
	}
	return e, nil
}

// DefaultPassOptions returns options derived from the engine configuration.
func (e *Engine) DefaultPassOptions() PassOptions {
	return PassOptions{Cleanup: true, WaitOnProcessing: e.cfg.WaitOnProcessing}
}

// Collect fetches candidates from src and stages them. Candidates whose payload cannot
// be written are returned as item errors and skipped. A fetch error is returned as is.
func (e *Engine) Collect(ctx context.Context, src Source, staged *StagedStore) ([]ItemError, error) {
	candidates, err := src.Fetch(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch from %s", src.Name())
	}

	var itemErrs []ItemError
	for _, c := range candidates {
		label := c.Label
		if label == "" {
			label = c.Key
		}
		if c.Path != "" {
			staged.StageReference(c.Key, c.Path, c.Metadata, label)
			continue
		}

		location := e.store.Location(scratchName(c.Extension))
		if _, err := staged.StageAndPersist(ctx, c.Key, location, c.Data, c.Metadata, label); err != nil {
			e.logger.Warn("Skipping item", zap.String("source", src.Name()), zap.String("label", label), zap.Error(err))
			itemErrs = append(itemErrs, ItemError{Label: label, Err: err})
		}
	}

	e.logger.Debug("Collected candidates",
		zap.String("source", src.Name()),
		zap.Int("candidates", len(candidates)),
		zap.Int("staged", staged.Len()),
		zap.Int("skipped", len(itemErrs)),
	)
	return itemErrs, nil
}

// Sync collects everything src has and runs a pass over it.
func (e *Engine) Sync(ctx context.Context, src Source, opts PassOptions) (*PassResult, error) {
	staged := NewStagedStore(src.Name(), e.store)
	itemErrs, err := e.Collect(ctx, src, staged)
	if err != nil {
		// Payloads written before the fetch failed are still ours to remove.
		if opts.Cleanup {
			e.cleanup(ctx, staged.Drain(), e.logger)
		}
		return nil, err
	}
	return e.run(ctx, src.Name(), staged.Drain(), itemErrs, opts)
}

// Run executes one pass over already staged items. The returned error is non-nil only
// when the pass was aborted; per-batch failures are reported in the result.
func (e *Engine) Run(ctx context.Context, source string, items []DataItem, opts PassOptions) (*PassResult, error) {
	return e.run(ctx, source, items, nil, opts)
}

func (e *Engine) run(ctx context.Context, source string, items []DataItem, itemErrs []ItemError, opts PassOptions) (*PassResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := &PassResult{
		PassID:     uuid.NewString(),
		Source:     source,
		Staged:     len(items),
		ItemErrors: itemErrs,
		Started:    time.Now(),
	}
	log := e.logger.With(zap.String("pass_id", result.PassID), zap.String("source", source))

	observer := e.observer
	if opts.Observer != nil {
		observer = MultiObserver{e.observer, opts.Observer}
	}
	observer.OnPassStart(len(items))

	finish := func() {
		if opts.Cleanup {
			result.Cleanup = e.cleanup(ctx, items, log)
		}
		result.tally()
		result.Finished = time.Now()
		observer.OnPassEnd(result)
	}

	if len(items) == 0 {
		log.Info("Nothing to sync")
		finish()
		return result, nil
	}

	known, err := e.snapshotter.Snapshot(ctx, nil)
	if err != nil {
		result.Fatal = snapshotError(err)
		log.Error("Pass aborted", zap.Error(err))
		finish()
		return result, result.Fatal
	}

	part := Reconcile(items, known)
	log.Info("Partitioned staged items",
		zap.Int("known", len(known)),
		zap.Int("create", len(part.Create)),
		zap.Int("update", len(part.Update)),
	)

	dispatcher := NewDispatcher(e.client, e.snapshotter, DispatcherOptions{
		Pace:         e.cfg.Pace(),
		PollInterval: e.cfg.PollInterval(),
		WaitTimeout:  e.cfg.WaitTimeout(),
		Observer:     observer,
		Logger:       log,
	})

	ready, processing := part.Update, []DataItem(nil)
	if opts.WaitOnProcessing && len(part.Update) > 0 {
		status, err := e.snapshotter.Snapshot(ctx, documentIDs(part.Update))
		if err != nil {
			log.Warn("Could not check update targets for processing, updating all directly", zap.Error(err))
		} else {
			ready, processing = SplitProcessing(part.Update, status)
		}
	}

	result.Batches = append(result.Batches, dispatcher.Dispatch(ctx, ready, OpUpdate, e.cfg.BatchSize)...)
	for i, item := range processing {
		log.Info("Waiting for document to finish processing", zap.String("document_id", item.DocumentID), zap.String("label", item.Label))
		result.Batches = append(result.Batches, dispatcher.WaitAndUpdate(ctx, item, i))
	}
	result.Batches = append(result.Batches, dispatcher.Dispatch(ctx, part.Create, OpCreate, e.cfg.BatchSize)...)

	finish()
	return result, nil
}

// cleanup removes the pass's payloads even when ctx was cancelled mid-pass, bounded
// by cleanupTimeout.
func (e *Engine) cleanup(ctx context.Context, items []DataItem, log *zap.Logger) CleanupReport {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	return Cleanup(ctx, e.store, items, log)
}

func scratchName(ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return uuid.NewString()
	}
	return uuid.NewString() + "." + ext
}
