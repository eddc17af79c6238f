// Package watch re-runs a rename pass whenever the exported design document
// changes on disk.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a change fires the callback.
const DefaultDebounce = 500 * time.Millisecond

// fileWatcher implements FileWatcher for a single file. It watches the
// parent directory so editors that save by replacing the file are seen.
type fileWatcher struct {
	watcher      *fsnotify.Watcher
	path         string             // Cleaned path of the watched file
	debounceTime time.Duration      // Quiet period before firing callback
	callback     func()             // Invoked after the quiet period
	ctx          context.Context    // Context for lifecycle management
	cancel       context.CancelFunc // Cancel function for internal context
	paused       bool               // Whether callbacks are held back
	pausedMu     sync.RWMutex       // Protects paused flag
	pending      bool               // A change arrived since the last callback
	pendingMu    sync.Mutex         // Protects pending flag
	debounce     *time.Timer        // Current debounce timer
	timerMu      sync.Mutex         // Protects debounce timer
	stopOnce     sync.Once          // Ensures Stop() is idempotent
	doneCh       chan struct{}      // Signals watch goroutine has finished
}

// NewFileWatcher creates a watcher for the file at path. The file itself may
// not exist yet, but its directory must. A non-positive debounce uses
// DefaultDebounce.
func NewFileWatcher(path string, debounce time.Duration) (FileWatcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to watch %s: not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &fileWatcher{
		watcher:      watcher,
		path:         abs,
		debounceTime: debounce,
		doneCh:       make(chan struct{}),
	}, nil
}

// Start begins watching for changes.
func (fw *fileWatcher) Start(ctx context.Context, callback func()) error {
	if callback == nil {
		return nil
	}

	fw.callback = callback
	fw.ctx, fw.cancel = context.WithCancel(ctx)

	go fw.watch()
	return nil
}

// Stop stops the watcher.
func (fw *fileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		if fw.cancel != nil {
			fw.cancel()
			<-fw.doneCh
		} else {
			close(fw.doneCh)
		}
		err = fw.watcher.Close()
	})
	return err
}

// Pause holds back callbacks; changes are still recorded.
func (fw *fileWatcher) Pause() {
	fw.pausedMu.Lock()
	defer fw.pausedMu.Unlock()
	fw.paused = true
}

// Resume re-enables callbacks and fires one immediately if a change was
// recorded while paused.
func (fw *fileWatcher) Resume() {
	fw.pausedMu.Lock()
	wasPaused := fw.paused
	fw.paused = false
	fw.pausedMu.Unlock()

	if wasPaused && fw.takePending() && fw.callback != nil {
		fw.callback()
	}
}

func (fw *fileWatcher) watch() {
	defer close(fw.doneCh)

	fireCh := make(chan struct{}, 1)

	for {
		select {
		case <-fw.ctx.Done():
			fw.stopDebounceTimer()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.pendingMu.Lock()
			fw.pending = true
			fw.pendingMu.Unlock()

			fw.resetDebounceTimer(fireCh)

		case <-fireCh:
			fw.handleDebounceExpired()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

func (fw *fileWatcher) handleDebounceExpired() {
	fw.pausedMu.RLock()
	paused := fw.paused
	fw.pausedMu.RUnlock()
	if paused {
		return
	}

	if fw.takePending() && fw.callback != nil {
		fw.callback()
	}
}

// takePending clears and returns the pending flag.
func (fw *fileWatcher) takePending() bool {
	fw.pendingMu.Lock()
	defer fw.pendingMu.Unlock()
	p := fw.pending
	fw.pending = false
	return p
}

func (fw *fileWatcher) resetDebounceTimer(fireCh chan struct{}) {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.debounce != nil {
		fw.debounce.Stop()
	}
	fw.debounce = time.AfterFunc(fw.debounceTime, func() {
		select {
		case fireCh <- struct{}{}:
		default:
		}
	})
}

func (fw *fileWatcher) stopDebounceTimer() {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.debounce != nil {
		fw.debounce.Stop()
		fw.debounce = nil
	}
}

// shouldProcessEvent keeps writes and (re)creations of the watched file.
func (fw *fileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == fw.path
}
