package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mvp-joe/layerlint/internal/design"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Runner:
// - Start runs one pass immediately
// - An external change runs another pass
// - The runner's own writes do not trigger further passes
// - A change while another process holds the document lock is skipped
// - Cancelling the context stops the runner

func runRunner(t *testing.T, path string, pass PassFunc) (*Runner, context.CancelFunc, chan error) {
	t.Helper()
	w, err := NewFileWatcher(path, testDebounce)
	require.NoError(t, err)

	r := NewRunner(path, w, pass)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Start(ctx) }()
	t.Cleanup(cancel)
	return r, cancel, done
}

func TestRunner_PassesOnExternalChangesOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "design.json")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0644))

	var seen atomic.Int32
	pass := func(ctx context.Context) error {
		n := seen.Add(1)
		// Rewrite the document the way a rename pass does.
		return os.WriteFile(path, []byte("renamed-"+string(rune('0'+n))), 0644)
	}

	r, cancel, done := runRunner(t, path, pass)
	require.Eventually(t, func() bool { return r.Passes() == 1 }, 2*time.Second, 10*time.Millisecond)

	time.Sleep(3 * testDebounce)
	assert.Equal(t, 1, r.Passes(), "own write must not retrigger")

	require.NoError(t, os.WriteFile(path, []byte("edited by hand"), 0644))
	require.Eventually(t, func() bool { return r.Passes() == 2 }, 2*time.Second, 10*time.Millisecond)

	time.Sleep(3 * testDebounce)
	assert.Equal(t, 2, r.Passes())

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunner_SkipsWhileLocked(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "design.json")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0644))

	r, _, _ := runRunner(t, path, func(context.Context) error { return nil })
	require.Eventually(t, func() bool { return r.Passes() == 1 }, 2*time.Second, 10*time.Millisecond)

	lock, err := design.LockFile(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("someone else"), 0644))
	time.Sleep(4 * testDebounce)
	assert.Equal(t, 1, r.Passes())

	require.NoError(t, lock.Release())
}
