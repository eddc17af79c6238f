package watch

import "context"

// FileWatcher monitors one document file with debouncing and pause/resume support.
type FileWatcher interface {
	// Start begins watching, calling callback once per quiet period after changes.
	Start(ctx context.Context, callback func()) error

	// Stop stops the watcher and cleans up resources.
	Stop() error

	// Pause stops firing callbacks but keeps recording changes.
	Pause()

	// Resume resumes firing callbacks. If a change was recorded while paused, fires immediately.
	Resume()
}

// PassFunc runs one rename pass over the document.
type PassFunc func(ctx context.Context) error
