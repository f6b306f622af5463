package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.yaml")
	writeCatalog(t, path, "projects:\n  - id: 1\n    title: First\n")

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeCatalog(t, path, "projects:\n  - id: 1\n    title: First\n  - id: 2\n    title: Second\n")

	select {
	case c := <-w.Updates():
		require.NotNil(t, c)
		assert.Equal(t, 2, c.Len())
		assert.Equal(t, "Second", c.Projects()[1].Title)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcher_BadEditKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.yaml")
	writeCatalog(t, path, "projects:\n  - id: 1\n    title: First\n")

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeCatalog(t, path, "projects: [")

	require.Eventually(t, func() bool {
		_, failures := w.Stats()
		return failures > 0
	}, 5*time.Second, 20*time.Millisecond)

	select {
	case c := <-w.Updates():
		t.Fatalf("unexpected catalog published: %v", c)
	default:
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.yaml")
	writeCatalog(t, path, "projects:\n  - id: 1\n    title: First\n")

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	writeCatalog(t, filepath.Join(dir, "notes.txt"), "unrelated")
	time.Sleep(400 * time.Millisecond)

	reloads, failures := w.Stats()
	assert.Zero(t, reloads)
	assert.Zero(t, failures)

	w.Stop()
	w.Stop()
	_, ok := <-w.Updates()
	assert.False(t, ok, "updates closed after stop")
}
