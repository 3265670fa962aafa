package resilience

import (
	"context"
	"errors"
	"time"
)

// Call runs op with a deadline of timeout and returns its result.
//
// A non-positive timeout runs op directly on the calling goroutine with no
// deadline. Otherwise op runs on its own goroutine; if the deadline fires
// first Call returns ErrTimeout and op is left to observe ctx cancellation.
// A panic inside op is returned as a *PanicError.
func Call[T any](ctx context.Context, timeout time.Duration, op func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return op(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: &PanicError{Value: r}}
			}
		}()
		v, err := op(ctx)
		done <- outcome{value: v, err: err}
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrTimeout
		}
		return zero, ctx.Err()
	}
}
