package filestore

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

func TestWatcher_TriggersOnArtifactReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wine_model.json.gz")

	var calls atomic.Int32
	w := NewWatcher(path, 20*time.Millisecond, func(context.Context) { calls.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644))
	require.NoError(t, NewModelStore(path).Save(ctx, fittedForest(t)))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatcher_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	path := filepath.Join(dir, "wine_model.json.gz")

	var calls atomic.Int32
	w := NewWatcher(path, 20*time.Millisecond, func(context.Context) { calls.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	assert.Eventually(t, func() bool {
		info, err := os.Stat(dir)
		return err == nil && info.IsDir()
	}, time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, NewModelStore(path).Save(ctx, fittedForest(t)))
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_UnusableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	w := NewWatcher(filepath.Join(blocker, "models", "model.gz"), 0, func(context.Context) {})
	assert.Error(t, w.Run(context.Background()))
}
