package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitEvent(t *testing.T, fw *FileWatcher) FileEvent {
	t.Helper()
	select {
	case event := <-fw.Events():
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for file event")
		return FileEvent{}
	}
}

func TestFileWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projetos.csv")
	require.NoError(t, os.WriteFile(path, []byte("nome\n"), 0644))

	fw, err := NewFileWatcher(path)
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, os.WriteFile(path, []byte("nome\nAlfa\n"), 0644))

	event := waitEvent(t, fw)
	assert.Equal(t, path, filepath.Clean(event.Path))
	assert.NotEmpty(t, event.Operation)
}

func TestFileWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projetos.csv")
	require.NoError(t, os.WriteFile(path, []byte("nome\n"), 0644))

	fw, err := NewFileWatcher(path)
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "outro.csv"), []byte("x"), 0644))

	select {
	case event := <-fw.Events():
		t.Fatalf("unexpected event %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcherReportsReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projetos.csv")
	require.NoError(t, os.WriteFile(path, []byte("nome\n"), 0644))

	fw, err := NewFileWatcher(path)
	require.NoError(t, err)
	defer fw.Close()

	tmp := filepath.Join(dir, "novo.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("nome\nBeta\n"), 0644))
	require.NoError(t, os.Rename(tmp, path))

	event := waitEvent(t, fw)
	assert.Equal(t, path, filepath.Clean(event.Path))
}

func TestFileWatcherRunStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projetos.csv")
	require.NoError(t, os.WriteFile(path, []byte("nome\n"), 0644))

	fw, err := NewFileWatcher(path)
	require.NoError(t, err)
	defer fw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan FileEvent, 4)
	stopped := make(chan struct{})
	go func() {
		fw.Run(ctx, func(e FileEvent) { changed <- e })
		close(stopped)
	}()

	require.NoError(t, os.WriteFile(path, []byte("nome\nGama\n"), 0644))
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("onChange was not called")
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestFileWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projetos.csv")
	require.NoError(t, os.WriteFile(path, []byte("nome\n"), 0644))

	fw, err := NewFileWatcher(path)
	require.NoError(t, err)

	assert.NoError(t, fw.Close())
	assert.NoError(t, fw.Close())

	select {
	case _, ok := <-fw.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestNewFileWatcherMissingDirectory(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "missing", "projetos.csv"))
	assert.Error(t, err)
}
