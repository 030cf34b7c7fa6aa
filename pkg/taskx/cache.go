package taskx

import (
	"context"
	"sync"
)

// outcome is one settled result: a value or an error.
type outcome[T any] struct {
	value T
	err   error
}

type cacheState uint8

const (
	cacheIdle cacheState = iota
	cacheRunning
	cacheDone
)

// Cache wraps a task so that it executes at most once. The first run
// schedules the underlying task; concurrent and later runs that arrive
// before settlement attach as waiters instead of re-triggering it. Whatever
// outcome the task settles with — value or failure — is replayed verbatim to
// every past and future caller without re-execution, so side effects inside
// the task happen exactly once.
//
// The task executes detached from the triggering caller's cancellation
// (context values are preserved): canceling an individual run abandons only
// that caller's wait, never the shared execution. If the task itself settles
// as canceled, that outcome goes to the waiters attached at the time but is
// not retained — a later run triggers the task again.
func Cache[T any](task Task[T]) Task[T] {
	c := &cacheCell[T]{task: task}
	return c.get
}

// cacheCell is the guarded tri-state behind Cache: idle until first
// requested, running while the single execution is in flight, done forever
// after a cacheable settlement.
type cacheCell[T any] struct {
	task Task[T]

	mu      sync.Mutex
	state   cacheState
	result  outcome[T]
	waiters []*waiter[outcome[T]]
}

func (c *cacheCell[T]) get(ctx context.Context) (T, error) {
	c.mu.Lock()
	switch c.state {
	case cacheDone:
		r := c.result
		c.mu.Unlock()
		return r.value, r.err

	case cacheIdle:
		c.state = cacheRunning
		w := newWaiter[outcome[T]]()
		c.waiters = append(c.waiters, w)
		run := context.WithoutCancel(ctx)
		c.mu.Unlock()
		go c.run(run)
		return c.await(ctx, w)

	default: // cacheRunning
		w := newWaiter[outcome[T]]()
		c.waiters = append(c.waiters, w)
		c.mu.Unlock()
		return c.await(ctx, w)
	}
}

func (c *cacheCell[T]) run(ctx context.Context) {
	v, err := c.task(ctx)
	c.settle(outcome[T]{value: v, err: err})
}

func (c *cacheCell[T]) settle(o outcome[T]) {
	c.mu.Lock()
	if IsCanceled(o.err) {
		// A canceled run is not an answer. Hand it to the waiters that were
		// attached, but let a later caller trigger the task again.
		c.state = cacheIdle
	} else {
		c.state = cacheDone
		c.result = o
	}
	ws := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, w := range ws {
		if w.claimed.CompareAndSwap(false, true) {
			w.ch <- o
		}
	}
}

func (c *cacheCell[T]) await(ctx context.Context, w *waiter[outcome[T]]) (T, error) {
	select {
	case o := <-w.ch:
		return o.value, o.err
	case <-ctx.Done():
		if w.claimed.CompareAndSwap(false, true) {
			c.removeWaiter(w)
			var zero T
			return zero, ctx.Err()
		}
		o := <-w.ch
		return o.value, o.err
	}
}

func (c *cacheCell[T]) removeWaiter(w *waiter[outcome[T]]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, cand := range c.waiters {
		if cand == w {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return
		}
	}
}
