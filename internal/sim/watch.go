package sim

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/reflow-ui/reflow/pkg/log"
)

// Watch runs fn once, then again each time path changes, debounced so a
// flurry of editor writes triggers a single re-run. It blocks until ctx
// is cancelled. The parent directory is watched rather than the file
// itself because editors commonly replace files on save.
func Watch(ctx context.Context, path string, debounce time.Duration, logger log.Logger, fn func()) error {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return err
	}
	base := filepath.Base(path)

	fn()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("scenario changed", log.String("path", path), log.String("op", ev.Op.String()))
			pending = time.After(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", log.Err(err))
		case <-pending:
			pending = nil
			fn()
		}
	}
}
