// Package watcher reports changes to book files so live markets can be rebuilt.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/quant/internal/adapters/config"
	"go.trai.ch/quant/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BookWatcher = (*Watcher)(nil)

// Watcher implements ports.BookWatcher using fsnotify. It watches the book's
// directory rather than the file, so editors that replace the file on save
// are still seen.
type Watcher struct {
	logger ports.Logger
	window time.Duration
}

// New creates a Watcher that coalesces changes arriving within window.
func New(logger ports.Logger, window time.Duration) *Watcher {
	return &Watcher{logger: logger, window: window}
}

// Watch starts watching the book at path.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan string, error) {
	file, err := filepath.Abs(config.ResolvePath(path))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve book path"), "path", path)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}
	if err := fsWatcher.Add(filepath.Dir(file)); err != nil {
		_ = fsWatcher.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to watch book directory"), "path", file)
	}

	changes := make(chan string, 1)
	debouncer := NewDebouncer(w.window, func() {
		// A pending notification already covers this change.
		select {
		case changes <- file:
		default:
		}
	})

	go w.processEvents(ctx, fsWatcher, file, debouncer)
	return changes, nil
}

func (w *Watcher) processEvents(ctx context.Context, fsWatcher *fsnotify.Watcher, file string, debouncer *Debouncer) {
	defer fsWatcher.Close() //nolint:errcheck // Best effort close on shutdown
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != file {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				debouncer.Trigger()
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(zerr.With(zerr.Wrap(err, "file watcher error"), "path", file))
		}
	}
}
