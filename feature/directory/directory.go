package directory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/doughepi/grain/core/ingest"

	"go.uber.org/zap"
)

// SourceName is the source tag stamped on directory items.
const SourceName = "Directory"

// DefaultExtensions are the file extensions synced when none are given.
var DefaultExtensions = []string{"txt", "md"}

// Options configures a directory source.
type Options struct {
	// Recursive descends into subdirectories.
	Recursive bool
	// Extensions lists the extensions to include, with or without the leading dot.
	Extensions []string
}

// Source syncs the files of a local directory. Files are uploaded from where they are
// and never removed by a pass.
type Source struct {
	root       string
	recursive  bool
	extensions map[string]struct{}
	logger     *zap.Logger
}

// New creates a directory source rooted at root.
func New(root string, opts Options, logger *zap.Logger) *Source {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			set[e] = struct{}{}
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{root: root, recursive: opts.Recursive, extensions: set, logger: logger}
}

// Name implements ingest.Source.
func (s *Source) Name() string {
	return SourceName
}

// Fetch implements ingest.Source. The key of each file is the SHA-256 of its content,
// so an edited file becomes a new document and a moved file keeps its identity.
func (s *Source) Fetch(ctx context.Context) ([]ingest.Candidate, error) {
	paths, err := s.Files(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]ingest.Candidate, 0, len(paths))
	for _, path := range paths {
		hash, err := HashFile(path)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("Processing file", zap.String("path", path))
		candidates = append(candidates, ingest.Candidate{
			Key:      hash,
			Path:     path,
			Label:    path,
			Metadata: FileMetadata(path, hash),
		})
	}
	return candidates, nil
}

// Files lists the matching files under the root in lexical order.
func (s *Source) Files(ctx context.Context) ([]string, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", s.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", s.root)
	}

	var files []string
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.root && !s.recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && s.Matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", s.root, err)
	}
	return files, nil
}

// Matches reports whether path has one of the configured extensions.
func (s *Source) Matches(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	_, ok := s.extensions[ext]
	return ok
}

// HashFile returns the hex SHA-256 of a file's content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FileMetadata describes a file the way documents from this source are tagged.
func FileMetadata(path, hash string) ingest.Metadata {
	name := filepath.Base(path)
	suffix := filepath.Ext(name)
	return ingest.Metadata{
		{Key: "path", Value: path},
		{Key: "name", Value: name},
		{Key: "suffix", Value: suffix},
		{Key: "hash", Value: hash},
		{Key: "stem", Value: strings.TrimSuffix(name, suffix)},
	}
}
