package catalog

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a catalog file when it changes on disk. Each successful
// reload is published as a new *Catalog; a reload that fails keeps the
// previous catalog and is only logged.
//
// The parent directory is watched rather than the file so that editors which
// save by rename are still seen.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	path        string
	logger      *zap.Logger
	updates     chan *Catalog
	debounceDur time.Duration
	dirtySince  time.Time
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	reloads     int
	failures    int
}

// NewWatcher creates a watcher for the catalog at path.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &Watcher{
		watcher:     watcher,
		path:        abs,
		logger:      logger,
		updates:     make(chan *Catalog, 1),
		debounceDur: 150 * time.Millisecond, // Debounce rapid saves
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Updates delivers reloaded catalogs. Only the newest pending catalog is
// kept; a slow reader never sees stale intermediate versions.
func (w *Watcher) Updates() <-chan *Catalog { return w.updates }

// Start begins watching. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil // Already running
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.logger.Debug("watching catalog", zap.String("path", w.path))

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit. The updates
// channel is closed afterwards.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("error closing catalog watcher", zap.Error(err))
	}
}

// Stats returns how many reloads succeeded and failed.
func (w *Watcher) Stats() (reloads, failures int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads, w.failures
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.updates)

	debounceTicker := time.NewTicker(w.debounceDur / 3)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", zap.Error(err))

		case <-debounceTicker.C:
			w.processDebounced()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return // Ignore chmod and removal; the last good catalog stays.
	}
	w.mu.Lock()
	if w.dirtySince.IsZero() {
		w.dirtySince = time.Now()
	}
	w.mu.Unlock()
}

func (w *Watcher) processDebounced() {
	w.mu.Lock()
	if w.dirtySince.IsZero() || time.Since(w.dirtySince) < w.debounceDur {
		w.mu.Unlock()
		return
	}
	w.dirtySince = time.Time{}
	w.mu.Unlock()

	c, err := Load(w.path)
	if err != nil {
		w.mu.Lock()
		w.failures++
		w.mu.Unlock()
		w.logger.Warn("catalog reload failed, keeping previous", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()
	w.logger.Info("catalog reloaded", zap.String("path", w.path), zap.Int("projects", c.Len()))

	// Replace any unread catalog with the newer one.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- c
}
