package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/dreamteam/internal/ports"
)

// DefaultDebounce is how long the watcher waits after the last change
// before notifying.
const DefaultDebounce = 100 * time.Millisecond

// SnapshotWatcher reports changes to a persisted snapshot file made by
// another process.
type SnapshotWatcher struct {
	path   string
	delay  time.Duration
	logger ports.Logger

	mu       sync.Mutex
	debounce *time.Timer
}

// NewSnapshotWatcher watches the file at path.
func NewSnapshotWatcher(path string, delay time.Duration, logger ports.Logger) *SnapshotWatcher {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &SnapshotWatcher{
		path:   path,
		delay:  delay,
		logger: logger,
	}
}

// Run calls onChange after each burst of writes to the file, until ctx is
// canceled. The parent directory is watched so atomic replace-by-rename is
// seen. The directory must exist.
func (w *SnapshotWatcher) Run(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Debug("watching snapshot", ports.String("path", w.path))

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			w.stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule(onChange)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("snapshot watcher error", ports.Err(err))
		}
	}
}

func (w *SnapshotWatcher) schedule(onChange func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.delay, onChange)
}

func (w *SnapshotWatcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
}
