package directory

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the tree must be quiet before a change is reported.
const DefaultDebounce = 2 * time.Second

// Watch blocks until ctx is done, calling onChange once matching files under the root
// have stopped changing for debounce. Calls to onChange never overlap; changes that
// arrive while it runs trigger one more call afterwards.
func (s *Source) Watch(ctx context.Context, debounce time.Duration, onChange func(context.Context)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := s.addWatches(watcher, s.root); err != nil {
		return err
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.relevant(watcher, event) {
				continue
			}
			s.logger.Debug("Change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Watcher error", zap.Error(err))

		case <-timer.C:
			onChange(ctx)
		}
	}
}

func (s *Source) relevant(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if event.Has(fsnotify.Create) && s.recursive {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := s.addWatches(watcher, event.Name); err != nil {
				s.logger.Warn("Failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
			}
			return false
		}
	}
	return s.Matches(event.Name)
}

func (s *Source) addWatches(watcher *fsnotify.Watcher, dir string) error {
	if !s.recursive {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
