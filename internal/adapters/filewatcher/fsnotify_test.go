package filewatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/neurobot-go/internal/domain/ports"
)

func newWatcher(t *testing.T) *FSNotifyWatcher {
	t.Helper()
	watcher, err := NewFSNotifyWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { watcher.Stop() })
	return watcher
}

func TestFSNotifyWatcher_Creation(t *testing.T) {
	newWatcher(t)
}

func TestFSNotifyWatcher_WatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0644))

	watcher := newWatcher(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	events, err := watcher.Watch(ctx, path)
	require.NoError(t, err)

	go func() {
		time.Sleep(100 * time.Millisecond)
		os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644)
	}()

	select {
	case event := <-events:
		assert.Contains(t, []ports.FileOperation{ports.FileModified, ports.FileCreated}, event.Operation)
		assert.Equal(t, "config.yaml", filepath.Base(event.Path))
	case <-ctx.Done():
		t.Fatal("timeout waiting for event")
	}
}

func TestFSNotifyWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	watcher := newWatcher(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	events, err := watcher.Watch(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("{}"), 0644))

	select {
	case event := <-events:
		assert.Failf(t, "unexpected event", "sibling write reported as %v", event)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFSNotifyWatcher_MissingDirectory(t *testing.T) {
	watcher := newWatcher(t)

	_, err := watcher.Watch(context.Background(), "/nonexistent/dir/config.yaml")

	assert.Error(t, err)
}

func TestFSNotifyWatcher_Stop(t *testing.T) {
	watcher, err := NewFSNotifyWatcher()
	require.NoError(t, err)

	assert.NoError(t, watcher.Stop())
}
