package taskx

import (
	"context"
	"time"
)

// Map transforms a task's result with f. Errors pass through untouched.
func Map[T, U any](t Task[T], f func(T) U) Task[U] {
	return func(ctx context.Context) (U, error) {
		v, err := t(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return f(v), nil
	}
}

// Then sequences two tasks: it runs t, feeds the value to f, and runs the
// task f produces. The first error short-circuits.
func Then[T, U any](t Task[T], f func(T) Task[U]) Task[U] {
	return func(ctx context.Context) (U, error) {
		v, err := t(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return f(v)(ctx)
	}
}

// Ignore discards a task's value, keeping its error. Handy for feeding
// mixed-type work to ParallelIgnore.
func Ignore[T any](t Task[T]) Task[Unit] {
	return func(ctx context.Context) (Unit, error) {
		_, err := t(ctx)
		return Unit{}, err
	}
}

// Delay runs the task after waiting d. The wait respects cancellation.
func Delay[T any](d time.Duration, t Task[T]) Task[T] {
	return func(ctx context.Context) (T, error) {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
		return t(ctx)
	}
}

// WithTimeout runs the task with a deadline of d. Returns
// context.DeadlineExceeded if the task does not finish in time; a task that
// ignores its context is abandoned to finish in the background.
func WithTimeout[T any](d time.Duration, t Task[T]) Task[T] {
	return func(ctx context.Context) (T, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		ch := make(chan outcome[T], 1)
		go func() {
			v, err := t(ctx)
			ch <- outcome[T]{value: v, err: err}
		}()

		select {
		case o := <-ch:
			return o.value, o.err
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Retry runs the task up to attempts times, settling as soon as it
// succeeds. Returns the last error if every attempt fails. Cancellation is
// checked before each attempt and is terminal.
func Retry[T any](attempts int, t Task[T]) Task[T] {
	return func(ctx context.Context) (T, error) {
		var (
			zero T
			val  T
			err  error
		)
		for range attempts {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			default:
			}
			val, err = t(ctx)
			if err == nil {
				return val, nil
			}
		}
		return zero, err
	}
}

// RetryWithBackoff is Retry with exponential backoff between attempts,
// starting at initialDelay and doubling after each failure. The backoff wait
// respects cancellation.
func RetryWithBackoff[T any](attempts int, initialDelay time.Duration, t Task[T]) Task[T] {
	return func(ctx context.Context) (T, error) {
		var (
			zero  T
			val   T
			err   error
			delay = initialDelay
		)
		for i := range attempts {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			default:
			}

			val, err = t(ctx)
			if err == nil {
				return val, nil
			}

			if i < attempts-1 {
				select {
				case <-ctx.Done():
					return zero, ctx.Err()
				case <-time.After(delay):
					delay *= 2
				}
			}
		}
		return zero, err
	}
}
