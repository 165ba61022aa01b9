package watcher

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher calls OnChange whenever the inventory file is written,
// created, replaced or removed. The parent directory is watched so that
// editors that save by renaming a temp file are still seen.
type FileWatcher struct {
	path     string
	onChange func(ctx context.Context) error
	logger   *zap.Logger
}

func NewFileWatcher(path string, onChange func(ctx context.Context) error, logger *zap.Logger) *FileWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileWatcher{path: filepath.Clean(path), onChange: onChange, logger: logger}
}

// Run blocks until ctx is cancelled. Callback errors are logged and the
// watch continues.
func (w *FileWatcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info("watching inventory file", zap.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || !relevant(event) {
				continue
			}
			w.logger.Debug("inventory file changed", zap.String("op", event.Op.String()))
			if err := w.onChange(ctx); err != nil {
				w.logger.Warn("reload after change failed", zap.Error(err))
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
