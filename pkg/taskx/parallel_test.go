package taskx_test

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Abraxas-365/taskx/pkg/errx"
	"github.com/Abraxas-365/taskx/pkg/taskx"
	"pgregory.net/rapid"
)

// --- Bounded parallelism tests ---

func TestParallelWithThrottle_ResultsInInputOrder(t *testing.T) {
	// Later tasks finish first; slots must still match input positions.
	tasks := make([]taskx.Task[int], 10)
	for i := range tasks {
		d := time.Duration(len(tasks)-i) * 10 * time.Millisecond
		tasks[i] = sleepTask(d, i*i)
	}

	got, err := taskx.ParallelWithThrottle(4, tasks).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(tasks) {
		t.Fatalf("expected %d results, got %d", len(tasks), len(got))
	}
	for i, v := range got {
		if v != i*i {
			t.Fatalf("slot %d: expected %d, got %d", i, i*i, v)
		}
	}
}

func TestParallel_ConcurrencyNeverExceedsCeiling(t *testing.T) {
	const maxDop = 3
	var mu sync.Mutex
	cur, peak := 0, 0

	tasks := make([]taskx.Task[int], 12)
	for i := range tasks {
		i := i
		tasks[i] = func(ctx context.Context) (int, error) {
			mu.Lock()
			cur++
			if cur > peak {
				peak = cur
			}
			mu.Unlock()

			select {
			case <-time.After(10 * time.Millisecond):
			case <-ctx.Done():
			}

			mu.Lock()
			cur--
			mu.Unlock()
			return i, nil
		}
	}

	if _, err := taskx.ParallelWithThrottle(maxDop, tasks).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if peak > maxDop {
		t.Fatalf("concurrency peaked at %d, ceiling is %d", peak, maxDop)
	}
}

func TestParallelWithThrottle_SerializedWhenLimitIsOne(t *testing.T) {
	var mu sync.Mutex
	var order []int

	tasks := make([]taskx.Task[int], 5)
	for i := range tasks {
		i := i
		tasks[i] = func(ctx context.Context) (int, error) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return i, nil
		}
	}

	got, err := taskx.ParallelWithThrottle(1, tasks).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("slot %d: expected %d, got %d", i, i, v)
		}
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("with one slot execution must follow input order, got %v", order)
		}
	}
}

func TestParallelIgnore_RunsEveryTaskOnce(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[int]int)

	tasks := make([]taskx.Task[taskx.Unit], 10)
	for i := range tasks {
		i := i
		tasks[i] = func(ctx context.Context) (taskx.Unit, error) {
			mu.Lock()
			seen[i]++
			mu.Unlock()
			return taskx.Unit{}, nil
		}
	}

	if _, err := taskx.ParallelIgnore(1, tasks).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	for i := range tasks {
		if seen[i] != 1 {
			t.Fatalf("task %d ran %d times, expected exactly once", i, seen[i])
		}
	}
}

func TestParallelIgnore_FailureSkipsUnstartedTasks(t *testing.T) {
	boom := errors.New("catch me if you can")
	var started atomic.Int32

	tasks := make([]taskx.Task[taskx.Unit], 6)
	tasks[0] = func(ctx context.Context) (taskx.Unit, error) {
		started.Add(1)
		return taskx.Unit{}, boom
	}
	for i := 1; i < len(tasks); i++ {
		tasks[i] = func(ctx context.Context) (taskx.Unit, error) {
			started.Add(1)
			return taskx.Unit{}, nil
		}
	}

	_, err := taskx.ParallelIgnore(1, tasks).Run(context.Background())
	if err == nil {
		t.Fatal("expected the run to fail")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("aggregate must wrap the first cause, got %v", err)
	}
	var e *errx.Error
	if !errors.As(err, &e) || e.Code != "TASKX_PARALLEL_FAILED" {
		t.Fatalf("expected TASKX_PARALLEL_FAILED, got %v", err)
	}

	// With one slot the failing task settles before the next admission, so
	// nothing after it ever starts.
	if n := started.Load(); n != 1 {
		t.Fatalf("expected only the failing task to start, %d started", n)
	}
}

func TestParallel_FirstFailureIsTheCause(t *testing.T) {
	first := errors.New("first failure")
	second := errors.New("second failure")

	tasks := []taskx.Task[taskx.Unit]{
		taskx.Fail[taskx.Unit](first),
		func(ctx context.Context) (taskx.Unit, error) {
			// Already running when the first failure lands; finishes anyway
			// and its own failure is dropped.
			select {
			case <-time.After(50 * time.Millisecond):
			case <-ctx.Done():
			}
			return taskx.Unit{}, second
		},
	}

	_, err := taskx.ParallelIgnore(2, tasks).Run(context.Background())
	if !errors.Is(err, first) {
		t.Fatalf("expected the first failure as the cause, got %v", err)
	}
	if errors.Is(err, second) {
		t.Fatal("later failures must be dropped")
	}
}

func TestParallelWithThrottle_FailureDropsResults(t *testing.T) {
	boom := errors.New("boom")
	tasks := []taskx.Task[int]{
		taskx.Pure(1),
		taskx.Fail[int](boom),
		taskx.Pure(3),
	}

	got, err := taskx.ParallelWithThrottle(1, tasks).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected the failure, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no partial results, got %v", got)
	}
}

func TestParallel_CallerCancellationIsNotAFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tasks := []taskx.Task[taskx.Unit]{
		func(ctx context.Context) (taskx.Unit, error) {
			cancel()
			<-ctx.Done()
			return taskx.Unit{}, ctx.Err()
		},
		func(ctx context.Context) (taskx.Unit, error) {
			<-ctx.Done()
			return taskx.Unit{}, ctx.Err()
		},
	}

	_, err := taskx.ParallelIgnore(2, tasks).Run(ctx)
	if !taskx.IsCanceled(err) {
		t.Fatalf("expected a canceled outcome, got %v", err)
	}
	var e *errx.Error
	if errors.As(err, &e) {
		t.Fatalf("cancellation must not be dressed up as a parallel failure, got %v", err)
	}
}

func TestParallel_EmptyInputSucceeds(t *testing.T) {
	got, err := taskx.ParallelWithThrottle(4, []taskx.Task[int]{}).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %v", got)
	}

	if _, err := taskx.ParallelIgnore(4, []taskx.Task[int]{}).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestParallel_LimitBelowOneIsClamped(t *testing.T) {
	var mu sync.Mutex
	cur, peak := 0, 0

	tasks := make([]taskx.Task[int], 4)
	for i := range tasks {
		i := i
		tasks[i] = func(ctx context.Context) (int, error) {
			mu.Lock()
			cur++
			if cur > peak {
				peak = cur
			}
			mu.Unlock()

			select {
			case <-time.After(5 * time.Millisecond):
			case <-ctx.Done():
			}

			mu.Lock()
			cur--
			mu.Unlock()
			return i, nil
		}
	}

	if _, err := taskx.ParallelWithThrottle(0, tasks).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if peak != 1 {
		t.Fatalf("limit 0 must serialize execution, peaked at %d", peak)
	}
}

func TestParallel_RandomizedThrottleProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 32).Draw(rt, "tasks")
		k := rapid.IntRange(1, 40).Draw(rt, "limit")

		var mu sync.Mutex
		cur, peak := 0, 0

		tasks := make([]taskx.Task[int], n)
		for i := range tasks {
			i := i
			tasks[i] = func(ctx context.Context) (int, error) {
				mu.Lock()
				cur++
				if cur > peak {
					peak = cur
				}
				mu.Unlock()

				runtime.Gosched()

				mu.Lock()
				cur--
				mu.Unlock()
				return i * 2, nil
			}
		}

		got, err := taskx.ParallelWithThrottle(k, tasks).Run(context.Background())
		if err != nil {
			rt.Fatal(err)
		}
		if len(got) != n {
			rt.Fatalf("expected %d results, got %d", n, len(got))
		}
		for i, v := range got {
			if v != i*2 {
				rt.Fatalf("slot %d: expected %d, got %d", i, i*2, v)
			}
		}
		if peak > k {
			rt.Fatalf("concurrency peaked at %d with limit %d", peak, k)
		}
	})
}
