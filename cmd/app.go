package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/doughepi/grain/core/config"
	"github.com/doughepi/grain/core/database"
	"github.com/doughepi/grain/core/logger"
	"github.com/doughepi/grain/core/payload"
	"github.com/doughepi/grain/core/remote"
	"github.com/doughepi/grain/core/storage"
	"github.com/doughepi/grain/feature/history"

	"go.uber.org/zap"
)

// setup loads the configuration and builds the logger every command starts with.
// quiet lowers the log level to warnings.
func setup(quiet bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(".", configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if quiet {
		cfg.Log.Level = "warn"
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	zap.ReplaceGlobals(logg)
	return cfg, logg, nil
}

// openPayloadStore returns the configured transient payload store and a function
// releasing it.
func openPayloadStore(ctx context.Context, cfg *config.Config, logg *zap.Logger) (payload.Store, func(), error) {
	switch cfg.Sync.PayloadBackend {
	case "object":
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		store := payload.NewObjectStore(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, nil, err
		}
		if cfg.Storage.SweepAfterHours > 0 {
			age := time.Duration(cfg.Storage.SweepAfterHours) * time.Hour
			if n, err := store.Sweep(ctx, age); err != nil {
				logg.Warn("Failed to sweep stale payloads", zap.Error(err))
			} else if n > 0 {
				logg.Info("Removed stale payloads", zap.Int("count", n), zap.Duration("older_than", age))
			}
		}
		logg.Debug("Using object storage for payloads", zap.String("bucket", cfg.Storage.Bucket))
		return store, func() {}, nil

	default:
		store, err := payload.NewScratchFileStore(cfg.Sync.ScratchDir)
		if err != nil {
			return nil, nil, err
		}
		logg.Debug("Using scratch directory for payloads", zap.String("dir", store.Dir()))
		return store, func() {
			if err := store.Close(); err != nil {
				logg.Warn("Failed to remove scratch directory", zap.String("dir", store.Dir()), zap.Error(err))
			}
		}, nil
	}
}

// connectRemote creates the ingestion service client and logs in when credentials
// are configured.
func connectRemote(ctx context.Context, cfg *config.Config, opener payload.Opener, logg *zap.Logger) (*remote.HTTPClient, error) {
	client, err := remote.NewHTTPClient(cfg.Remote, opener)
	if err != nil {
		return nil, err
	}
	if !cfg.Remote.HasCredentials() {
		return client, nil
	}
	if _, err := client.Login(ctx, cfg.Remote.Email, cfg.Remote.Password); err != nil {
		return nil, fmt.Errorf("failed to log in as %s: %w", cfg.Remote.Email, err)
	}
	logg.Debug("Logged in", zap.String("email", cfg.Remote.Email))
	return client, nil
}

// openHistory connects to the history database. History is optional: on failure a
// warning is logged and nil is returned.
func openHistory(ctx context.Context, cfg *config.Config, logg *zap.Logger) *history.Repository {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Warn("Pass history disabled: database connection failed", zap.Error(err))
		return nil
	}
	repo := history.NewRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		logg.Warn("Pass history disabled", zap.Error(err))
		return nil
	}
	return repo
}
