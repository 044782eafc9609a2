package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"psr/internal/logger"
)

// DefaultDebounce is the quiet period after the last write before re-rendering
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls a handler whenever a report file settles after a change
type Watcher struct {
	path     string
	handler  func(ctx context.Context, path string)
	debounce time.Duration
}

// NewWatcher creates a Watcher for the file at path
func NewWatcher(path string, handler func(ctx context.Context, path string)) *Watcher {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Watcher{
		path:     abs,
		handler:  handler,
		debounce: DefaultDebounce,
	}
}

// SetDebounce sets the quiet period
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run watches the file's directory and calls the handler once per burst of
// writes. Handlers run on the watch loop, one at a time. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// pytest-json-report replaces the file, so the directory is watched
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}
	logger.Debug("watching raw report", "path", w.path)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("raw report changed", "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			w.handler(ctx, w.path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "error", err)
		}
	}
}
