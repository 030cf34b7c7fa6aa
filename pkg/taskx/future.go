package taskx

import "context"

// Future is a handle to a task that has already been started. It settles
// exactly once; every waiter observes the identical outcome.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Start schedules the task on a new goroutine immediately and returns a
// handle to its eventual outcome. The task runs on the given context;
// canceling it cancels the computation itself, while canceling the context
// passed to Wait abandons only that wait.
func Start[T any](ctx context.Context, t Task[T]) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		f.value, f.err = t(ctx)
		close(f.done)
	}()
	return f
}

// Wait suspends until the future settles and returns its outcome. Safe to
// call any number of times from any number of goroutines.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the future settles, for use in select
// statements.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the future has settled, without blocking.
func (f *Future[T]) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Await returns a task that waits for this future, bridging started work
// back into task composition.
func (f *Future[T]) Await() Task[T] {
	return f.Wait
}
