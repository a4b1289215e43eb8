//go:build linux

package svcinv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"vawter.tech/stopper"
)

// WatchUnitFiles watches unit directories and emits one WatchEvent per
// debounced burst of changes to service units, drop-ins or dependency
// links. Missing directories are skipped; it is an error if none exist.
// The manager only picks up file changes after a daemon reload, so
// callers typically refetch on every event.
//
//nolint:gocyclo // event loop with debounce and dynamic directory registration
func WatchUnitFiles(ctx context.Context, dirs []string, opts ...Option) (<-chan WatchEvent, WatchCleanupFunc, error) {
	o := newOptions(opts)
	if len(dirs) == 0 {
		dirs = DefaultUnitDirs
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("creating watcher: %w", err)
	}

	watched := 0
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				o.logger.Debug("skipping missing unit directory", "dir", dir)
				continue
			}
			_ = watcher.Close()
			return nil, nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		watched++
		addLinkDirs(watcher, dir, o)
	}
	if watched == 0 {
		_ = watcher.Close()
		return nil, nil, fmt.Errorf("no unit directory to watch in %v: %w", dirs, fs.ErrNotExist)
	}

	ch := make(chan WatchEvent, 10)

	// Create stopper context for managing goroutine lifecycle
	sctx := stopper.WithContext(ctx)

	cleanup := func() error {
		sctx.Stop(100 * time.Millisecond)
		return sctx.Wait()
	}

	sctx.Go(func(sctx *stopper.Context) error {
		var (
			pending = make(map[string]struct{})
			timer   *time.Timer
			fire    <-chan time.Time
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
			_ = watcher.Close()
			close(ch)
		}()

		send := func(ev WatchEvent) bool {
			select {
			case ch <- ev:
				return true
			case <-sctx.Stopping():
				return false
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-sctx.Stopping():
				return nil

			case <-ctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !isUnitPath(event.Name) {
					continue
				}
				if event.Has(fsnotify.Create) && isLinkDir(filepath.Base(event.Name)) {
					if err := watcher.Add(event.Name); err != nil {
						o.logger.Debug("watching link directory", "dir", event.Name, "error", err)
					}
				}

				pending[event.Name] = struct{}{}
				if timer == nil {
					timer = time.NewTimer(o.debounce)
				} else {
					timer.Reset(o.debounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				paths := slices.Sorted(maps.Keys(pending))
				clear(pending)
				o.logger.Debug("unit files changed", "paths", len(paths))
				if !send(WatchEvent{Paths: paths}) {
					return nil
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil && !send(WatchEvent{Err: err}) {
					return nil
				}
			}
		}
	})

	return ch, cleanup, nil
}

// addLinkDirs registers the existing .wants and .requires subdirectories
// of dir, since fsnotify does not watch recursively.
func addLinkDirs(watcher *fsnotify.Watcher, dir string, o options) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() || !isLinkDir(e.Name()) {
			continue
		}
		sub := filepath.Join(dir, e.Name())
		if err := watcher.Add(sub); err != nil {
			o.logger.Debug("watching link directory", "dir", sub, "error", err)
		}
	}
}
