package fifotoken

import (
	"context"
	"sync"
)

// Token is a re-entrant mutual exclusion token granted in strict FIFO order.
// Callers are identified by the Owner in the context passed to each method.
// It must be created with New and is safe to be used concurrently.
type Token struct {
	hook Hook

	mu      sync.Mutex
	queue   waitQueue
	nesting int   // extra acquisitions by owner beyond the first
	owner   Owner // zero when the queue is empty
}

// New returns a free Token.
func New(opts ...Option) *Token {
	o := newOptions(opts...)
	return &Token{hook: Hooks(o.hooks...)}
}

// Acquire blocks until the caller holds the Token. If the caller already holds
// it, the nesting level is bumped and Acquire returns at once. Otherwise the
// caller is queued behind every earlier waiter. If ctx is done before the Token
// is granted, the caller leaves the queue and an error matching ErrInterrupted
// is returned along with WouldBlock.
func (t *Token) Acquire(ctx context.Context) (Outcome, error) {
	me, ok := OwnerFrom(ctx)
	if !ok {
		return WouldBlock, ErrNoOwner
	}

	// the check for an existing hold and the append must be atomic, otherwise
	// two callers could both see an empty queue and skip waiting.
	t.mu.Lock()
	if t.queue.len() > 0 && t.owner == me {
		t.nesting++
		t.mu.Unlock()
		return GrantedImmediately, nil
	}

	s := newSlot(me)
	ahead := t.queue.push(s)
	if ahead == 0 {
		t.grant(s)
		t.mu.Unlock()
		return GrantedImmediately, nil
	}
	holder := t.owner
	t.mu.Unlock()

	t.hook.BeforeSleep(ctx, Contention{
		Waiter:   me,
		Holder:   holder,
		Ahead:    ahead,
		Blocking: true,
	})

	if err := t.await(ctx, s); err != nil {
		return WouldBlock, err
	}
	return GrantedAfterWait, nil
}

// TryAcquire acquires the Token only if it can do so without blocking: when the
// Token is free or already held by the caller. Otherwise it reports WouldBlock
// and leaves the queue untouched.
func (t *Token) TryAcquire(ctx context.Context) (Outcome, error) {
	me, ok := OwnerFrom(ctx)
	if !ok {
		return WouldBlock, ErrNoOwner
	}

	t.mu.Lock()
	switch {
	case t.queue.len() == 0:
		s := newSlot(me)
		t.queue.push(s)
		t.grant(s)
		t.mu.Unlock()
		return GrantedImmediately, nil

	case t.owner == me:
		t.nesting++
		t.mu.Unlock()
		return GrantedImmediately, nil
	}
	holder, ahead := t.owner, t.queue.len()
	t.mu.Unlock()

	t.hook.BeforeSleep(ctx, Contention{
		Waiter:   me,
		Holder:   holder,
		Ahead:    ahead,
		Blocking: false,
	})

	return WouldBlock, nil
}

// Release gives up one level of the caller's hold on the Token. When the last
// level is released the Token is handed to the longest waiting caller, if any.
// It returns an error matching ErrNotOwner if the caller does not hold the
// Token, in which case nothing changes.
func (t *Token) Release(ctx context.Context) error {
	me, ok := OwnerFrom(ctx)
	if !ok {
		return ErrNoOwner
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.queue.len() == 0 || t.owner != me {
		return notOwner("release", me, t.owner)
	}
	if t.nesting > 0 {
		t.nesting--
		return nil
	}

	t.queue.pop()
	t.handoff()
	return nil
}

// Renew lets other waiters run before the caller without the caller giving up
// its claim. If nobody else is queued or requeuePosition is 0 it does nothing.
// Otherwise the caller's place moves to the back of the queue when
// requeuePosition is negative, or behind the first requeuePosition waiters
// when it is positive, the Token is handed to the waiter now in front, and
// Renew blocks until the caller is granted the Token again with its nesting
// level restored.
//
// If ctx is done while waiting, the caller leaves the queue, no longer holds
// the Token at any level, and an error matching ErrInterrupted is returned.
func (t *Token) Renew(ctx context.Context, requeuePosition int) error {
	me, ok := OwnerFrom(ctx)
	if !ok {
		return ErrNoOwner
	}

	t.mu.Lock()
	if t.queue.len() == 0 || t.owner != me {
		holder := t.owner
		t.mu.Unlock()
		return notOwner("renew", me, holder)
	}
	if t.queue.len() < 2 || requeuePosition == 0 {
		t.mu.Unlock()
		return nil
	}

	s := newSlot(me)
	s.nesting = t.nesting

	t.queue.pop()
	t.queue.insert(requeuePosition, s)
	t.handoff()
	t.mu.Unlock()

	return t.await(ctx, s)
}

// Stats is a snapshot of a Token's state.
type Stats struct {
	Held    bool  // someone holds the Token
	Owner   Owner // current holder, zero if not Held
	Nesting int   // extra acquisitions by Owner beyond the first
	Queued  int   // queue entries, the holder's included
}

// Waiting returns the number of callers queued behind the holder.
func (s Stats) Waiting() int {
	if s.Queued == 0 {
		return 0
	}
	return s.Queued - 1
}

// Stats returns a snapshot of the Token's state.
func (t *Token) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Stats{
		Held:    t.queue.len() > 0,
		Owner:   t.owner,
		Nesting: t.nesting,
		Queued:  t.queue.len(),
	}
}

// grant makes s's owner the holder. It must be called with t.mu held.
func (t *Token) grant(s *slot) {
	s.granted = true
	t.owner = s.owner
	t.nesting = s.nesting
}

// handoff grants the Token to the front of the queue and wakes it, or marks the
// Token free if the queue is empty. It must be called with t.mu held.
func (t *Token) handoff() {
	if t.queue.len() == 0 {
		t.owner = Owner{}
		t.nesting = 0
		return
	}
	next := t.queue.front()
	t.grant(next)
	next.signal()
}

// await blocks on s until it is granted. A wait cut short by ctx still succeeds
// if the grant already happened; otherwise s is taken out of the queue.
func (t *Token) await(ctx context.Context, s *slot) error {
	err := s.wait(ctx)
	if err == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if s.granted {
		return nil
	}
	t.queue.remove(s)
	return interrupted(err, s.owner)
}
