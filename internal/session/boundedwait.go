package session

import (
	"context"
	"errors"
	"time"
)

// ErrWaitTimeout is returned when a bounded wait expires before the wrapped
// call produces a result.
var ErrWaitTimeout = errors.New("bounded wait timed out")

type waitOutcome[T any] struct {
	val T
	err error
}

// WaitBounded runs fn and waits at most d for its result. This is a race, not
// a cancellation: the call keeps running after the deadline and a late result
// is discarded, never applied. Both timeout races in the resolution sequence
// (session check and directory lookup) share this one implementation.
func WaitBounded[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	out := make(chan waitOutcome[T], 1)
	go func() {
		v, err := fn(ctx)
		out <- waitOutcome[T]{val: v, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	var zero T
	select {
	case o := <-out:
		return o.val, o.err
	case <-timer.C:
		return zero, ErrWaitTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
