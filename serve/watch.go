package serve

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period a [Watcher] waits for by default.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls a rebuild function after files below its roots change.
// Bursts of changes are coalesced into one call, and calls never overlap.
type Watcher struct {
	config

	fw      *fsnotify.Watcher
	rebuild func(context.Context) error
}

// NewWatcher returns a Watcher running rebuild. Add directories to watch
// with [Watcher.Add], then start it with [Watcher.Run].
func NewWatcher(rebuild func(context.Context) error, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ErrWatch.Wrap(err)
	}

	return &Watcher{
		config:  makeConfig(opts),
		fw:      fw,
		rebuild: rebuild,
	}, nil
}

// Add watches root and every directory below it. A missing root is logged
// and skipped.
func (w *Watcher) Add(root string) error {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		w.logger.Warn("not watching missing directory", slog.String("path", root))

		return nil
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return ErrWatch.With(slog.String("path", path)).Wrap(err)
		}

		if !d.IsDir() {
			return nil
		}

		if path != root && hidden(d.Name()) {
			return filepath.SkipDir
		}

		if err := w.fw.Add(path); err != nil {
			return ErrWatch.With(slog.String("path", path)).Wrap(err)
		}

		w.logger.Trace("watching", slog.String("path", path))

		return nil
	})
}

// Close stops watching.
func (w *Watcher) Close() error { return w.fw.Close() }

// Run handles file events until ctx is done or the watcher is closed.
// Rebuild errors are logged; they do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}

			if !w.relevant(ev) {
				continue
			}

			w.logger.DebugContext(ctx, "change detected",
				slog.String("path", ev.Name),
				slog.String("op", ev.Op.String()),
			)

			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.Add(ev.Name); err != nil {
						w.logger.WarnContext(ctx, "failed to watch new directory",
							slog.Any("error", err))
					}
				}
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

			fire = timer.C

		case <-fire:
			fire = nil

			w.logger.InfoContext(ctx, "rebuilding")

			if err := w.rebuild(ctx); err != nil {
				w.logger.ErrorContext(ctx, "rebuild failed", slog.Any("error", err))
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}

			w.logger.WarnContext(ctx, "watch error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if hidden(filepath.Base(ev.Name)) || strings.HasSuffix(ev.Name, "~") {
		return false
	}

	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

func hidden(name string) bool { return strings.HasPrefix(name, ".") }
