package model

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long the artifact file must stay quiet after an event
// before it is re-read. One save often arrives as several Write events.
const settleDelay = 100 * time.Millisecond

// Watch refreshes reg whenever its artifact file is written or replaced,
// until ctx is cancelled. onReload, if non-nil, is called after every
// refresh that loaded a new artifact or failed, with the refresh error.
// Rewrites that leave the content unchanged are not reported.
//
// The parent directory is watched rather than the file, so the watch
// survives editors and deploy tools that save by renaming a temp file over
// the artifact. A failed reload is logged and the previous artifact keeps
// serving.
func Watch(ctx context.Context, reg *Registry, onReload func(error)) error {
	path := filepath.Clean(reg.Path())
	if _, err := os.Stat(path); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	slog.Info("model: watching for changes", "path", path)

	var settle *time.Timer
	var fire <-chan time.Time
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			// A rename onto path shows up as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if settle == nil {
				settle = time.NewTimer(settleDelay)
			} else {
				settle.Reset(settleDelay)
			}
			fire = settle.C

		case <-fire:
			fire = nil
			changed, err := reg.Refresh()
			if err != nil {
				slog.Error("model: reload failed, keeping previous artifact",
					"path", path, "err", err)
			}
			if onReload != nil && (changed || err != nil) {
				onReload(err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("model: watcher error", "err", err)
		}
	}
}
