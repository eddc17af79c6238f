package styles

import (
	"context"
	"time"
)

type outcome[T any] struct {
	value T
	err   error
}

// firstOrDeadline runs op and waits for it or the deadline, whichever comes
// first. Hitting the deadline is not an error: it reports ok == false with a
// zero value. op receives a context cancelled once the wait ends so a slow
// lookup can stop early; its late result is discarded.
func firstOrDeadline[T any](ctx context.Context, timeout time.Duration, op func(context.Context) (T, error)) (value T, ok bool, err error) {
	opCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan outcome[T], 1)
	go func() {
		v, err := op(opCtx)
		ch <- outcome[T]{value: v, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.err != nil {
			return value, false, res.err
		}
		return res.value, true, nil
	case <-timer.C:
		return value, false, nil
	case <-ctx.Done():
		return value, false, ctx.Err()
	}
}
