package taskx

import "context"

// Task is a cold deferred computation: nothing happens until it is run, and
// each run is independent. A task settles in exactly one of three ways:
// success (v, nil), failure (zero, err), or cancellation (zero, err with
// IsCanceled(err) true, observed from the context passed to Run).
type Task[T any] func(ctx context.Context) (T, error)

// Unit is the result type of tasks that are executed only for their effects.
type Unit = struct{}

// Run schedules the task on the calling goroutine and awaits its outcome.
// It is equivalent to calling the task directly; the method exists so call
// sites composing tasks read naturally: cached.Run(ctx) rather than
// cached(ctx).
func (t Task[T]) Run(ctx context.Context) (T, error) {
	return t(ctx)
}

// Pure returns a task that always succeeds with v.
func Pure[T any](v T) Task[T] {
	return func(context.Context) (T, error) {
		return v, nil
	}
}

// Fail returns a task that always settles with err.
func Fail[T any](err error) Task[T] {
	return func(context.Context) (T, error) {
		var zero T
		return zero, err
	}
}
