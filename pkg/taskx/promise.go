package taskx

import (
	"context"
	"sync"
	"sync/atomic"
)

// waiter is one party suspended on a settlement. The claim flag decides the
// race between delivery and that party's own cancellation: whoever flips it
// first owns the waiter, the other side must do nothing. ch is buffered so
// the delivering side never blocks.
type waiter[T any] struct {
	ch      chan T
	claimed atomic.Bool
}

func newWaiter[T any]() *waiter[T] {
	return &waiter[T]{ch: make(chan T, 1)}
}

// Promise is a synchronized single-fire slot. It starts empty, accepts
// exactly one value, and replays that value to every past and future
// awaiter. Resolving twice is caller misuse and fails loudly.
//
// The zero Promise is not usable; create one with NewPromise.
type Promise[T any] struct {
	mu       sync.Mutex
	resolved bool
	value    T
	waiters  []*waiter[T]
}

// NewPromise creates an empty promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{}
}

// TryResolve stores v if the promise is still empty and wakes every pending
// awaiter. It reports whether this call was the one that resolved the
// promise; a false return means an earlier value won and v was discarded.
func (p *Promise[T]) TryResolve(v T) bool {
	p.mu.Lock()
	if p.resolved {
		p.mu.Unlock()
		return false
	}
	p.resolved = true
	p.value = v
	ws := p.waiters
	p.waiters = nil
	p.mu.Unlock()

	// Deliveries happen outside the critical section so a woken awaiter can
	// immediately call back into the promise without deadlocking.
	for _, w := range ws {
		if w.claimed.CompareAndSwap(false, true) {
			w.ch <- v
		}
	}
	return true
}

// Resolve stores v and wakes every pending awaiter. Calling Resolve on an
// already-resolved promise returns ErrAlreadyResolved; the stored value is
// never replaced.
func (p *Promise[T]) Resolve(v T) error {
	if !p.TryResolve(v) {
		return taskxErrors.New(ErrAlreadyResolved)
	}
	return nil
}

// Resolved reports whether a value has been stored, without blocking.
func (p *Promise[T]) Resolved() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resolved
}

// Value returns the stored value, if any.
func (p *Promise[T]) Value() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value, p.resolved
}

// Await returns a task that settles with the promise's value: immediately if
// already resolved, otherwise after suspending until resolution. The task
// may be run any number of times by any number of parties, before or after
// resolution; every run observes the identical value. Canceling one run
// withdraws only that party's registration — the promise and every other
// awaiter are untouched.
func (p *Promise[T]) Await() Task[T] {
	return func(ctx context.Context) (T, error) {
		p.mu.Lock()
		if p.resolved {
			v := p.value
			p.mu.Unlock()
			return v, nil
		}
		w := newWaiter[T]()
		p.waiters = append(p.waiters, w)
		p.mu.Unlock()

		select {
		case v := <-w.ch:
			return v, nil
		case <-ctx.Done():
			if w.claimed.CompareAndSwap(false, true) {
				p.removeWaiter(w)
				var zero T
				return zero, ctx.Err()
			}
			// Resolution claimed this waiter first; the value is already in
			// flight. Deliver it rather than drop it.
			v := <-w.ch
			return v, nil
		}
	}
}

// removeWaiter unregisters a withdrawn waiter. A no-op when resolution has
// already drained the list.
func (p *Promise[T]) removeWaiter(w *waiter[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, cand := range p.waiters {
		if cand == w {
			p.waiters = append(p.waiters[:i], p.waiters[i+1:]...)
			return
		}
	}
}
