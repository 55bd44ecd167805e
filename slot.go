package fifotoken

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// slot is the position of a single acquisition attempt in the queue. It is
// signaled at most once, when its owner is granted the Token, and is thrown
// away afterwards.
type slot struct {
	owner   Owner
	nesting int // restored when granted, set by Renew
	sema    *semaphore.Weighted

	// granted is set, under the Token's mutex, right before the slot is
	// signaled. The waiter reads it under the same mutex to decide whether a
	// cancelled wait lost the race with a grant.
	granted bool
}

// newSlot returns a slot whose semaphore is already drained, so that wait
// blocks until signal is called.
func newSlot(o Owner) *slot {
	s := &slot{owner: o, sema: semaphore.NewWeighted(1)}
	s.sema.TryAcquire(1)
	return s
}

// signal wakes the goroutine waiting on the slot, or lets its future wait
// return immediately. It must be called at most once.
func (s *slot) signal() { s.sema.Release(1) }

// wait blocks until the slot is signaled or ctx is done.
func (s *slot) wait(ctx context.Context) error { return s.sema.Acquire(ctx, 1) }
