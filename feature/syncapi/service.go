package syncapi

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/doughepi/grain/core/ingest"
	"github.com/doughepi/grain/core/remote"
	"github.com/doughepi/grain/feature/directory"
	"github.com/doughepi/grain/feature/history"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrInvalidRequest is returned for malformed requests.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrForbiddenPath is returned for directories outside the allowed roots.
	ErrForbiddenPath = errors.New("path is not allowed")
	// ErrHistoryUnavailable is returned when no history database is configured.
	ErrHistoryUnavailable = errors.New("pass history is not available")
)

// Service runs syncs and queries on behalf of HTTP clients.
type Service struct {
	engine  *ingest.Engine
	client  remote.Client
	history *history.Repository
	roots   []string
	logger  *zap.Logger

	group singleflight.Group
}

// NewService creates the API service. repo may be nil when no database is available.
// allowedRoots is a comma-separated list of directories syncs may read; empty allows any.
func NewService(engine *ingest.Engine, client remote.Client, repo *history.Repository, allowedRoots string, logger *zap.Logger) *Service {
	var roots []string
	for _, r := range strings.Split(allowedRoots, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roots = append(roots, filepath.Clean(r))
		}
	}
	return &Service{
		engine:  engine,
		client:  client,
		history: repo,
		roots:   roots,
		logger:  logger,
	}
}

// SyncDirectory runs a directory pass. Identical concurrent requests share one pass.
func (s *Service) SyncDirectory(ctx context.Context, req SyncDirectoryRequest) (*SyncResponse, error) {
	if strings.TrimSpace(req.Path) == "" {
		return nil, errors.Mark(errors.New("path is required"), ErrInvalidRequest)
	}
	path, err := resolve(req.Path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "invalid path %q", req.Path), ErrInvalidRequest)
	}
	if !s.allowed(path) {
		return nil, errors.Mark(errors.Newf("%s is outside the allowed roots", path), ErrForbiddenPath)
	}

	key := path + "|" + strconv.FormatBool(req.Recursive) + "|" + strings.Join(req.Extensions, ",")
	v, err, shared := s.group.Do(key, func() (any, error) {
		src := directory.New(path, directory.Options{Recursive: req.Recursive, Extensions: req.Extensions}, s.logger)
		return s.engine.Sync(ctx, src, s.engine.DefaultPassOptions())
	})
	if err != nil {
		return nil, err
	}
	return newSyncResponse(v.(*ingest.PassResult), shared), nil
}

// Documents proxies a documents overview request.
func (s *Service) Documents(ctx context.Context, ids []string, offset, limit int) (*remote.OverviewPage, error) {
	return s.client.DocumentsOverview(ctx, ids, offset, limit)
}

// History lists the most recent passes.
func (s *Service) History(ctx context.Context, limit int) ([]history.PassRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryUnavailable
	}
	return s.history.List(ctx, limit)
}

// allowed reports whether path lies under one of the roots. path must already be
// resolved; roots are resolved here since they may be created after startup.
func (s *Service) allowed(path string) bool {
	if len(s.roots) == 0 {
		return true
	}
	for _, root := range s.roots {
		resolved, err := resolve(root)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(resolved, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// resolve returns the absolute path with symlinks evaluated, so a link inside an
// allowed root cannot lead a pass outside it. A path that does not exist is returned
// cleaned; the pass reports it as missing.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if os.IsNotExist(err) {
		return abs, nil
	}
	return resolved, err
}
