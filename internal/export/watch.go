package export

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reruns Rebuild whenever the local data file changes.
type Watcher struct {
	Source   string
	Debounce time.Duration
	Logger   *zap.Logger
	Rebuild  func(ctx context.Context) error
}

// Run blocks until ctx is done. The parent directory is watched rather than
// the file, since many editors save by renaming over the original.
func (w Watcher) Run(ctx context.Context) error {
	if w.Rebuild == nil {
		return errors.New("export: watcher needs a rebuild func")
	}
	if strings.HasPrefix(w.Source, "http://") || strings.HasPrefix(w.Source, "https://") {
		return fmt.Errorf("cannot watch remote source %s", w.Source)
	}
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	target, err := filepath.Abs(w.Source)
	if err != nil {
		return err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	logger.Info("watching catalog", zap.String("source", target))

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, target) {
				continue
			}
			logger.Debug("catalog changed", zap.String("op", ev.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			if err := w.Rebuild(ctx); err != nil {
				logger.Error("rebuild failed", zap.Error(err))
				continue
			}
			logger.Info("rebuilt site")
		}
	}
}

func relevant(ev fsnotify.Event, target string) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return name == target
}
