package fifotoken

import (
	"context"
	"sync"
)

// Locker returns a sync.Locker that acquires and releases the Token on behalf
// of the Owner in ctx, binding a new Owner if ctx has none. Lock panics if ctx
// is done before the Token is granted, and Unlock panics if the Owner does not
// hold the Token, mirroring sync.Mutex.
func (t *Token) Locker(ctx context.Context) sync.Locker {
	return locker{tok: t, ctx: Bind(ctx)}
}

type locker struct {
	tok *Token
	ctx context.Context
}

func (l locker) Lock() {
	if _, err := l.tok.Acquire(l.ctx); err != nil {
		panic(err)
	}
}

func (l locker) Unlock() {
	if err := l.tok.Release(l.ctx); err != nil {
		panic(err)
	}
}
