// Package watch re-runs an action whenever one of a set of files changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches the bursts of events editors emit for one save.
const DefaultDebounce = 500 * time.Millisecond

// Action is run once at start and again after every change.
type Action func(ctx context.Context) error

// Options configures a Watcher.
type Options struct {
	// Paths are the files to watch. Their directories are watched so that
	// editors that save by rename are still noticed.
	Paths    []string
	Debounce time.Duration
	Logger   *zap.Logger
	// OnError receives errors returned by the action. The watcher keeps
	// running after an action fails.
	OnError func(error)
}

// Stats counts watcher activity.
type Stats struct {
	Events    int
	Runs      int
	Errors    int
	LastEvent string
	LastRun   time.Time
}

// Watcher runs an Action when watched files change.
type Watcher struct {
	mu       sync.Mutex
	files    map[string]bool
	dirs     []string
	debounce time.Duration
	logger   *zap.Logger
	onError  func(error)
	stats    Stats
}

// New validates opts and creates a Watcher.
func New(opts Options) (*Watcher, error) {
	if len(opts.Paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		files:    make(map[string]bool, len(opts.Paths)),
		debounce: debounce,
		logger:   logger,
		onError:  opts.OnError,
	}
	seen := map[string]bool{}
	for _, p := range opts.Paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.files) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	return w, nil
}

// Stats returns a snapshot of the counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Run runs action once, then again each time a watched file changes, until
// ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, action Action) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := fsw.Close(); err != nil {
			w.logger.Warn("failed to close watcher", zap.Error(err))
		}
	}()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.logger.Debug("watching directory", zap.String("dir", dir))
	}

	w.run(ctx, action)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.mu.Lock()
			w.stats.Events++
			w.stats.LastEvent = event.Name
			w.mu.Unlock()
			w.logger.Debug("file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			// Restart the quiet period
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			w.run(ctx, action)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

func (w *Watcher) run(ctx context.Context, action Action) {
	err := action(ctx)

	w.mu.Lock()
	w.stats.Runs++
	w.stats.LastRun = time.Now()
	if err != nil {
		w.stats.Errors++
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("action failed", zap.Error(err))
		if w.onError != nil {
			w.onError(err)
		}
	}
}
