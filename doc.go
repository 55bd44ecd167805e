// package fifotoken provides a re-entrant mutual exclusion token that is handed
// out in strict arrival order.
//
// A sync.Mutex makes no promise about which of its waiters wins when it is
// unlocked, and it cannot be locked again by the goroutine that holds it. A
// Token fixes both: whoever has waited longest is granted the Token next, and
// the current owner may acquire it again without blocking, as long as every
// acquisition is matched with a Release.
//
// Go has no goroutine identity, so ownership is tracked with an Owner carried
// in a context.Context. Every call made on behalf of the same logical thread of
// execution must use a context bound to the same Owner:
//
//	var tok = fifotoken.New()
//
//	func Work(ctx context.Context) error {
//		ctx = fifotoken.Bind(ctx)
//		if _, err := tok.Acquire(ctx); err != nil {
//			return err
//		}
//		defer tok.Release(ctx)
//
//		return step(ctx) // step may Acquire/Release tok again
//	}
//
// Cancelling the context while blocked in Acquire or Renew abandons the wait.
// The abandoned position is removed from the queue before the call returns an
// error matching ErrInterrupted, so later Releases skip it.
//
// An owner that holds the Token for a long time can let others in without fully
// releasing by calling Renew. Renew(ctx, -1) moves the owner to the back of the
// line, Renew(ctx, n) lets n waiters go first, and the call returns once the
// owner has been granted the Token again with its nesting restored.
//
// A Hook passed to New is told each time a caller finds the Token held by
// someone else, right before it blocks in Acquire or right before TryAcquire
// reports WouldBlock. The tokenlog package has Hooks that log those events.
package fifotoken
