package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/sleepwatcher/internal/application/port"
	"github.com/bnema/sleepwatcher/internal/domain/event"
	"github.com/bnema/sleepwatcher/internal/logging"
)

// ScriptWatcher submits ConfigChanged when the user script changes on disk.
// It watches the parent directory so editors that replace the file by
// renaming a temporary copy are still seen. Bursts of writes inside the
// debounce window produce one event.
type ScriptWatcher struct {
	path     string
	debounce time.Duration
	sink     port.EventSink
}

func NewScriptWatcher(path string, debounce time.Duration, sink port.EventSink) *ScriptWatcher {
	return &ScriptWatcher{path: filepath.Clean(path), debounce: debounce, sink: sink}
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *ScriptWatcher) Run(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "script-watcher")
	log := logging.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Debug().Str("file", w.path).Msg("watching script")

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			log.Debug().Str("op", ev.Op.String()).Str("file", ev.Name).Msg("fsnotify script change detected")
			timer.Reset(w.debounce)

		case <-timer.C:
			if err := w.sink.Submit(ctx, event.ConfigChanged{}); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("submit config change: %w", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("script watcher error")
		}
	}
}

func (w *ScriptWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
