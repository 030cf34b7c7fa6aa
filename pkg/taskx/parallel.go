package taskx

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ParallelIgnore runs every task under a concurrency ceiling of maxDop,
// discarding individual results. It succeeds only if every task succeeds.
//
// The first task to fail trips the run: tasks not yet started are skipped,
// tasks already running finish undisturbed with their outcomes dropped, and
// the overall task fails with ErrParallelFailed wrapping exactly that first
// cause. If the first cause observed is a cancellation — the caller's
// context, or a task settling as canceled — the overall task settles as
// canceled instead of failing, so IsCanceled tells the two apart.
//
// maxDop values below 1 are treated as 1.
func ParallelIgnore[T any](maxDop int, tasks []Task[T]) Task[Unit] {
	return func(ctx context.Context) (Unit, error) {
		return Unit{}, runBounded(ctx, maxDop, tasks, func(int, T) {})
	}
}

// ParallelWithThrottle runs every task under a concurrency ceiling of maxDop
// and collects the results in input order: each task's value lands in the
// slot matching its original index, however completion interleaves. The
// execution and failure discipline is that of ParallelIgnore.
func ParallelWithThrottle[T any](maxDop int, tasks []Task[T]) Task[[]T] {
	return func(ctx context.Context) ([]T, error) {
		results := make([]T, len(tasks))
		err := runBounded(ctx, maxDop, tasks, func(i int, v T) {
			results[i] = v
		})
		if err != nil {
			return nil, err
		}
		return results, nil
	}
}

// runBounded is the engine behind both parallel entry points: a weighted
// semaphore as the admission gate and a one-shot trip signal for fail-fast.
// sink receives each successful result with its input index; it is called
// from worker goroutines but never concurrently for the same index.
func runBounded[T any](ctx context.Context, maxDop int, tasks []Task[T], sink func(int, T)) error {
	if maxDop < 1 {
		maxDop = 1
	}

	// The admission context stops queued acquisitions once the run trips.
	// Workers deliberately run on the caller's context instead, so tripping
	// never interrupts tasks that are already executing.
	actx, stop := context.WithCancel(ctx)
	defer stop()

	var (
		sem  = semaphore.NewWeighted(int64(maxDop))
		trip = &tripSignal{stop: stop}
		wg   sync.WaitGroup
	)

	for i, t := range tasks {
		i, t := i, t
		if err := sem.Acquire(actx, 1); err != nil {
			trip.fire(ctx.Err())
			break
		}
		if actx.Err() != nil {
			// Tripped while we held a freshly released slot.
			sem.Release(1)
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			v, err := t(ctx)
			if err != nil {
				trip.fire(err)
				return
			}
			sink(i, v)
		}()
	}
	wg.Wait()

	cause := trip.cause()
	switch {
	case cause == nil:
		return nil
	case IsCanceled(cause):
		return cause
	default:
		return taskxErrors.NewWithCause(ErrParallelFailed, cause)
	}
}

// tripSignal records the first terminal cause of a bounded run and shuts the
// admission gate. Later causes are dropped. err must only be read after
// every worker has been awaited.
type tripSignal struct {
	stop context.CancelFunc
	once sync.Once
	err  error
}

func (s *tripSignal) fire(err error) {
	s.once.Do(func() {
		s.err = err
		s.stop()
	})
}

func (s *tripSignal) cause() error { return s.err }
