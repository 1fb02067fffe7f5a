package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceWindow = 200 * time.Millisecond

// Watcher re-runs the pipeline whenever the watched sketch changes
type Watcher struct {
	pipeline *Pipeline
	logger   *zap.Logger
}

// NewWatcher creates a Watcher over an existing pipeline
func NewWatcher(pipeline *Pipeline) *Watcher {
	return &Watcher{pipeline: pipeline, logger: pipeline.logger}
}

// Watch runs the pipeline once, then again after every write to sourcePath
// until the context is cancelled. Each report (or error) is handed to fn.
// Editors often emit bursts of events per save, so runs are debounced.
func (w *Watcher) Watch(ctx context.Context, sourcePath string, options Options, fn func(*Report, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which drops
	// a watch registered on the file itself
	if err := watcher.Add(filepath.Dir(sourcePath)); err != nil {
		return err
	}

	fn(w.pipeline.Run(ctx, sourcePath, options))

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(sourcePath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-pending:
			w.logger.Info("sketch changed, re-running", zap.String("source", sourcePath))
			fn(w.pipeline.Run(ctx, sourcePath, options))
		}
	}
}
