package taskx

import "context"

// Any races the given tasks and settles with the outcome of whichever
// settles first, success or failure alike. All tasks start immediately and
// concurrently when the returned task runs; the first settlement wins a
// single-assignment cell and becomes the result — a winning failure is
// surfaced directly, not wrapped. Every later settlement is discarded.
//
// Once a winner is in, the remaining tasks receive a cooperative
// cancellation signal through their context. Tasks that honor it stop early;
// tasks that ignore it simply run to completion in the background with their
// outcomes dropped.
//
// Any with no tasks fails with ErrNoTasks: an empty race could never settle.
// If the caller's own context is canceled before any task settles, the race
// settles as canceled.
func Any[T any](tasks ...Task[T]) Task[T] {
	return func(ctx context.Context) (T, error) {
		if len(tasks) == 0 {
			var zero T
			return zero, taskxErrors.New(ErrNoTasks)
		}

		rctx, cancel := context.WithCancel(ctx)
		defer cancel()

		cell := NewPromise[outcome[T]]()
		for _, t := range tasks {
			t := t
			go func() {
				v, err := t(rctx)
				cell.TryResolve(outcome[T]{value: v, err: err})
			}()
		}

		won, err := cell.Await().Run(ctx)
		if err != nil {
			var zero T
			return zero, err
		}
		return won.value, won.err
	}
}
