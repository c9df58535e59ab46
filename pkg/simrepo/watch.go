package simrepo

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/flightsim-go/simconnect/internal/logger"
)

// Watcher reloads a Repository from its persistence file whenever that
// file changes on disk, so an external editor (or another process
// sharing the same repository path) is picked up without a restart.
type Watcher struct {
	repo     *Repository
	filePath string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

// NewWatcher returns a Watcher for repo's persistence file (repo's
// default, or filePath if set). Call Start to begin watching.
func NewWatcher(repo *Repository, filePath string) *Watcher {
	return &Watcher{repo: repo, filePath: repo.resolvePath(filePath)}
}

// Start begins watching the repository file for writes, reloading the
// repository on each one. Safe to call only once per Watcher.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("simrepo: create watcher: %w", err)
	}
	if err := fw.Add(w.filePath); err != nil {
		fw.Close()
		return fmt.Errorf("simrepo: watch %q: %w", w.filePath, err)
	}

	w.watcher = fw
	w.stopCh = make(chan struct{})
	go w.loop()

	logger.Info("simrepo: watching for changes", "path", w.filePath)
	return nil
}

// Stop stops watching. Safe to call multiple times or on a Watcher that
// was never started.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return
	}
	select {
	case <-w.stopCh:
	default:
		close(w.stopCh)
	}
	w.watcher.Close()
	w.watcher = nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if err := w.repo.Load(w.filePath); err != nil {
					logger.Warn("simrepo: reload failed", "path", w.filePath, logger.Err(err))
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("simrepo: watcher error", logger.Err(err))
		case <-w.stopCh:
			return
		}
	}
}
