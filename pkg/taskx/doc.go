// Package taskx provides coordination primitives for deferred computations:
// single-fire promises, at-most-once caching, first-to-settle races, and
// bounded parallel fan-out with fail-fast semantics.
//
// The unit everything operates on is [Task]: a cold function that does
// nothing until run and settles exactly once per run into one of three
// terminal kinds — success, failure, or cancellation. Cancellation is always
// cooperative and always explicit: every suspension point in this package
// takes a [context.Context], and a canceled wait is reported as the context's
// own error so that [IsCanceled] can tell it apart from ordinary failure.
//
//	var task taskx.Task[int] = func(ctx context.Context) (int, error) {
//	    return fetchCount(ctx)
//	}
//
//	n, err := task.Run(ctx)
//
// # Promises
//
// A [Promise] is a synchronized single-fire slot: many parties may await it,
// before or after resolution, and all of them observe the identical value.
// [Promise.Resolve] fires it exactly once — a second call is misuse and
// fails with [ErrAlreadyResolved] — while [Promise.TryResolve] is the
// compare-and-set variant that reports acceptance instead.
//
//	p := taskx.NewPromise[string]()
//	go worker(p) // eventually calls p.Resolve("done")
//
//	v, err := p.Await().Run(ctx)
//
// Canceling one awaiting party withdraws only that party. Delivery to a
// waiter and that waiter's own cancellation race against a one-shot claim,
// so a waiter can never be woken twice and never dropped.
//
// # Caching
//
// [Cache] wraps a task so its side effects happen at most once no matter how
// many concurrent or repeated runs request the value. Success and failure
// are both cached and replayed verbatim; a run that settles as canceled is
// not cached, and a later request triggers the task again.
//
//	load := taskx.Cache(func(ctx context.Context) (Config, error) {
//	    return readConfig(ctx) // executes once
//	})
//
// # Racing
//
// [Any] starts every task immediately and settles with whichever settles
// first, success or failure alike. The winning failure is surfaced directly,
// unwrapped. Losers are cooperatively canceled through their context;
// outcomes arriving after the winner are discarded.
//
//	fastest, err := taskx.Any(fromCache, fromPrimary, fromReplica).Run(ctx)
//
// # Bounded Parallelism
//
// [ParallelIgnore] and [ParallelWithThrottle] run a slice of tasks under a
// concurrency ceiling, failing fast: the first failure trips the run, skips
// everything not yet started, and is reported as [ErrParallelFailed]
// wrapping exactly that first cause. Tasks already running are left to
// finish. [ParallelWithThrottle] additionally returns results in input
// order, however completion interleaves.
//
//	thumbs, err := taskx.ParallelWithThrottle(8, resizeTasks).Run(ctx)
//
// A run whose first observed cause is a cancellation settles as canceled,
// not failed — check with [IsCanceled].
//
// # Started Work
//
// [Start] runs a task on its own goroutine right away and hands back a
// [Future]: Wait from as many goroutines as needed, select on Done, or peek
// with Settled. [Future.Await] bridges the handle back into task
// composition.
//
// # Composition Helpers
//
// [Pure], [Fail], [Map], [Then], [Ignore], [Delay], [WithTimeout], [Retry]
// and [RetryWithBackoff] cover the everyday glue so call sites stay small.
// They add no coordination of their own.
//
// # Design Notes
//
// Each promise and cache cell is guarded by its own mutex; waiter wake-ups
// always happen outside the critical section. The race's completion cell is
// a promise written with TryResolve. The parallel runner's admission gate is
// a weighted semaphore and its fail-fast signal a one-shot cell; tripping
// closes admission but never interrupts running tasks, which receive at most
// a cooperative context cancellation from their caller. The package never
// logs and never swallows: every failure and cancellation reaches the
// caller that ran the task.
package taskx
