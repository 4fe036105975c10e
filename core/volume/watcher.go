package volume

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher observes the directories removable media are mounted under and
// calls onChange after a burst of attach/detach events settles.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func()
	logger   *zap.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher over the existing mount prefix directories.
// Prefixes that do not exist are skipped; first-level children are watched too
// so that per-user directories like /run/media/<user> are covered.
func NewWatcher(cfg Config, logger *zap.Logger, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	debounce := time.Duration(cfg.DebounceMs) * time.Millisecond
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	w := &Watcher{
		watcher:  fw,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}

	for _, prefix := range cfg.MountPrefixes {
		dir := filepath.Clean(strings.TrimSpace(prefix))
		if dir == "." || dir == "" {
			continue
		}
		w.watchDir(dir)

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				w.watchDir(filepath.Join(dir, e.Name()))
			}
		}
	}

	return w, nil
}

func (w *Watcher) watchDir(dir string) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Debug("Failed to watch mount directory", zap.String("dir", dir), zap.Error(err))
		return
	}
	w.logger.Debug("Watching mount directory", zap.String("dir", dir))
}

// Start processes events until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.Debug("Mount event", zap.String("path", event.Name), zap.String("op", event.Op.String()))

			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New per-user directories must be watched to see mounts below them.
			if event.Op&fsnotify.Create != 0 {
				w.watchDir(event.Name)
			}
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Mount watcher error", zap.Error(err))
		case <-ctx.Done():
			w.stopTimer()
			_ = w.watcher.Close()
			return
		}
	}
}

// schedule (re)arms the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.logger.Info("Removable media changed, rescanning")
		if w.onChange != nil {
			w.onChange()
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.watcher.Close()
}
