package payload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Opener resolves a payload location into a readable stream.
type Opener interface {
	// Open returns the payload stored at location.
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// Store is the transient storage a pass writes payloads to and cleans up afterwards.
type Store interface {
	Opener
	// Write creates or overwrites the payload at location.
	Write(ctx context.Context, location string, data []byte) error
	// Remove deletes the payload at location.
	Remove(ctx context.Context, location string) error
	// Location returns the location a payload named name would be stored at.
	Location(name string) string
}

// BatchRemover is implemented by stores that can delete many payloads in one call.
// The returned map only contains locations that failed.
type BatchRemover interface {
	RemoveAll(ctx context.Context, locations []string) map[string]error
}

// FileStore keeps payloads in a directory on the local filesystem.
type FileStore struct {
	dir     string
	scratch bool
}

// NewFileStore returns a store rooted at dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// NewScratchFileStore creates a fresh temporary directory under parent (or the OS temp
// directory when parent is empty). Close removes the directory and everything in it.
func NewScratchFileStore(parent string) (*FileStore, error) {
	if parent != "" {
		if err := os.MkdirAll(parent, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create scratch parent %s: %w", parent, err)
		}
	}
	dir, err := os.MkdirTemp(parent, "grain-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return &FileStore{dir: dir, scratch: true}, nil
}

// Dir returns the root directory of the store.
func (s *FileStore) Dir() string {
	return s.dir
}

// Location joins name onto the store directory.
func (s *FileStore) Location(name string) string {
	return filepath.Join(s.dir, name)
}

// Write implements Store.
func (s *FileStore) Write(ctx context.Context, location string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(location), 0o700); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", location, err)
	}
	if err := os.WriteFile(location, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	return nil
}

// Open implements Opener.
func (s *FileStore) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", location, err)
	}
	return f, nil
}

// Remove implements Store.
func (s *FileStore) Remove(ctx context.Context, location string) error {
	if err := os.Remove(location); err != nil {
		return fmt.Errorf("failed to remove %s: %w", location, err)
	}
	return nil
}

// Close removes the scratch directory. It is a no-op for stores created with NewFileStore.
func (s *FileStore) Close() error {
	if !s.scratch {
		return nil
	}
	return os.RemoveAll(s.dir)
}
