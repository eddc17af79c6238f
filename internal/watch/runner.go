package watch

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/mvp-joe/layerlint/internal/design"
)

// fingerprint identifies one version of the document on disk.
type fingerprint struct {
	modTime time.Time
	size    int64
}

func stat(path string) (fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fingerprint{}, err
	}
	return fingerprint{modTime: info.ModTime(), size: info.Size()}, nil
}

// Runner runs a pass once on start and again after every external change to
// the document. Changes it wrote itself do not trigger another pass.
type Runner struct {
	path  string
	files FileWatcher
	pass  PassFunc

	ctx     context.Context
	mu      sync.Mutex
	written fingerprint // document state after our last pass
	passes  int
}

// NewRunner creates a Runner for the document at path.
func NewRunner(path string, files FileWatcher, pass PassFunc) *Runner {
	return &Runner{path: path, files: files, pass: pass}
}

// Start runs the first pass, then watches until ctx is cancelled.
func (r *Runner) Start(ctx context.Context) error {
	r.ctx = ctx
	r.handleChange()

	filesErr := make(chan error, 1)
	go func() {
		if err := r.files.Start(ctx, r.handleChange); err != nil {
			filesErr <- err
		}
	}()

	select {
	case err := <-filesErr:
		r.cleanup()
		return err
	case <-ctx.Done():
		r.cleanup()
		return ctx.Err()
	}
}

// Passes returns how many passes have run.
func (r *Runner) Passes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.passes
}

func (r *Runner) cleanup() {
	if err := r.files.Stop(); err != nil {
		log.Printf("Warning: file watcher stop failed: %v", err)
	}
}

// handleChange runs a pass unless the document is unchanged since our own
// write or another process is writing it.
func (r *Runner) handleChange() {
	before, err := stat(r.path)
	if err != nil {
		log.Printf("Warning: cannot read %s: %v", r.path, err)
		return
	}

	r.mu.Lock()
	self := r.passes > 0 && before == r.written
	r.mu.Unlock()
	if self {
		return
	}

	lock, err := design.LockFile(r.path)
	if errors.Is(err, design.ErrDocumentLocked) {
		log.Printf("Warning: %s is being written by another process, skipping this change", r.path)
		return
	}
	if err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	defer lock.Release()

	r.files.Pause()
	defer r.files.Resume()

	if err := r.pass(r.ctx); err != nil {
		log.Printf("Error: rename pass failed: %v", err)
	}

	after, err := stat(r.path)
	r.mu.Lock()
	r.passes++
	if err == nil {
		r.written = after
	}
	r.mu.Unlock()
}
