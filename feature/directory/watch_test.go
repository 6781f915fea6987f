package directory

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatch(t *testing.T, src *Source) *atomic.Int32 {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- src.Watch(ctx, 50*time.Millisecond, func(context.Context) { calls.Add(1) })
	}()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	// Give the watcher time to register before files change.
	time.Sleep(100 * time.Millisecond)
	return &calls
}

func TestSource_WatchDebouncesChanges(t *testing.T) {
	root := t.TempDir()
	calls := startWatch(t, New(root, Options{}, nil))

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte{byte('a' + i)}, 0o644))
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "a burst of writes triggers a single sync")
}

func TestSource_WatchIgnoresOtherExtensions(t *testing.T) {
	root := t.TempDir()
	calls := startWatch(t, New(root, Options{}, nil))

	require.NoError(t, os.WriteFile(filepath.Join(root, "image.png"), []byte("png"), 0o644))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestSource_WatchRecursiveNewDirectory(t *testing.T) {
	root := t.TempDir()
	calls := startWatch(t, New(root, Options{Recursive: true}, nil))

	nested := filepath.Join(root, "nested")
	require.NoError(t, os.Mkdir(nested, 0o755))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(nested, "b.txt"), []byte("b"), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}
