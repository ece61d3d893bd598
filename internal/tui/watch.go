package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"lifeplanner/internal/engine"
)

const watchDebounce = 150 * time.Millisecond

// watchFile calls onChange after path (or its SQLite journal/WAL siblings)
// is written, coalescing bursts of events. Watcher errors go to onError.
// The goroutine exits once ctx is done. The parent directory is watched so
// that files created later are seen.
func watchFile(ctx context.Context, path string, onChange func(), onError func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	go func() {
		defer w.Close()
		base := filepath.Base(path)
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !strings.HasPrefix(filepath.Base(ev.Name), base) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
				} else {
					timer.Reset(watchDebounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				onChange()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				onError(fmt.Errorf("watch %s: %w", path, err))
			}
		}
	}()
	return nil
}

// reloadOnChange reloads svc and reports a failure to send, so the board
// shows that it may be stale.
func reloadOnChange(ctx context.Context, svc *engine.Service, send func(tea.Msg)) func() {
	return func() {
		if err := svc.Reload(ctx); err != nil {
			send(resultMsg{desc: "Reload", err: err})
		}
	}
}
