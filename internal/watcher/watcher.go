// Package watcher reloads definition files when they change on disk.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches a set of definition files for changes
type Watcher struct {
	paths    []string
	onChange func(path string)
	debounce time.Duration
	log      *zap.SugaredLogger
}

// New creates a new file watcher
func New(paths []string, onChange func(path string)) *Watcher {
	return &Watcher{
		paths:    paths,
		onChange: onChange,
		debounce: 500 * time.Millisecond,
		log:      zap.NewNop().Sugar(),
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// WithLogger sets the logger
func (w *Watcher) WithLogger(log *zap.SugaredLogger) *Watcher {
	w.log = log
	return w
}

// Watch blocks until the context is cancelled or the underlying watcher fails.
// Directories are watched instead of files so editors that replace the file
// on save are still observed. Bursts of events for one file collapse into a
// single onChange call after the debounce interval.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create fsnotify watcher")
	}
	defer fsw.Close()

	watchedDirs := make(map[string]bool)
	fileSet := make(map[string]bool)

	for _, path := range w.paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return errors.Wrapf(err, "resolve %s", path)
		}

		dir := filepath.Dir(absPath)
		if !watchedDirs[dir] {
			if err := fsw.Add(dir); err != nil {
				return errors.Wrapf(err, "watch directory %s", dir)
			}
			watchedDirs[dir] = true
		}

		fileSet[absPath] = true
		w.log.Infow("watching definition", "path", absPath)
	}

	var mu sync.Mutex
	timers := make(map[string]*time.Timer)
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		for _, timer := range timers {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			absPath, err := filepath.Abs(event.Name)
			if err != nil || !fileSet[absPath] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			mu.Lock()
			if timer, exists := timers[absPath]; exists {
				timer.Stop()
			}
			timers[absPath] = time.AfterFunc(w.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				w.log.Infow("definition changed", "path", absPath)
				w.onChange(absPath)
			})
			mu.Unlock()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watcher error", "error", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
