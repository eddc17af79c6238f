package design

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrDocumentLocked indicates another process holds the document's write lock.
var ErrDocumentLocked = errors.New("document is locked by another process")

// FileLock is an advisory write lock on a document file, held through a
// sibling "<path>.lock" file.
type FileLock struct {
	lock *flock.Flock
}

// LockPath returns the lock file guarding path.
func LockPath(path string) string {
	return path + ".lock"
}

// LockFile acquires the write lock for path without blocking. It returns
// ErrDocumentLocked when another writer holds it.
func LockFile(path string) (*FileLock, error) {
	l := flock.New(LockPath(path))
	locked, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrDocumentLocked, path)
	}
	return &FileLock{lock: l}, nil
}

// Release unlocks the document. The lock file is left in place.
func (l *FileLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
