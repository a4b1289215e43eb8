//go:build linux

package svcinv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUnitPath(t *testing.T) {
	tests := map[string]bool{
		"/etc/systemd/system/foo.service":                         true,
		"/etc/systemd/system/foo.service.d":                       true,
		"/etc/systemd/system/multi-user.target.wants":             true,
		"/etc/systemd/system/multi-user.target.requires":          true,
		"/etc/systemd/system/foo.socket":                          false,
		"/etc/systemd/system/.#foo.service.swp":                   false,
		"/etc/systemd/system/multi-user.target.wants/bar.service": true,
	}
	for path, want := range tests {
		assert.Equal(t, want, isUnitPath(path), path)
	}
}

func nextEvent(t *testing.T, events <-chan WatchEvent) WatchEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "event channel closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for watch event")
		return WatchEvent{}
	}
}

func TestWatchUnitFilesReportsServiceChanges(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, cleanup, err := WatchUnitFiles(ctx, []string{dir, filepath.Join(dir, "missing")}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	// ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo.socket"), []byte("[Socket]\n"), 0o644))

	unitPath := filepath.Join(dir, "foo.service")
	require.NoError(t, os.WriteFile(unitPath, []byte("[Service]\nExecStart=/bin/true\n"), 0o644))

	ev := nextEvent(t, events)
	require.NoError(t, ev.Err)
	assert.Equal(t, []string{unitPath}, ev.Paths)
}

func TestWatchUnitFilesFollowsNewLinkDirs(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, cleanup, err := WatchUnitFiles(ctx, []string{dir}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	wants := filepath.Join(dir, "multi-user.target.wants")
	require.NoError(t, os.Mkdir(wants, 0o755))

	ev := nextEvent(t, events)
	assert.Contains(t, ev.Paths, wants)

	link := filepath.Join(wants, "foo.service")
	require.NoError(t, os.Symlink("/usr/lib/systemd/system/foo.service", link))

	ev = nextEvent(t, events)
	assert.Contains(t, ev.Paths, link)
}

func TestWatchUnitFilesNoDirectories(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, _, err := WatchUnitFiles(context.Background(), []string{missing})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchUnitFilesCleanup(t *testing.T) {
	dir := t.TempDir()

	events, cleanup, err := WatchUnitFiles(context.Background(), []string{dir})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- cleanup() }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("cleanup took too long")
	}

	// the channel is closed once the watcher exits
	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("event channel not closed")
	}

	assert.NoError(t, cleanup())
}

func TestWatchUnitFilesContextCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	events, cleanup, err := WatchUnitFiles(ctx, []string{dir})
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("event channel not closed after cancel")
	}
}
