package fifotoken

import "context"

// Contention describes a caller that found the Token held by someone else.
type Contention struct {
	// Waiter is the caller that found the Token held.
	Waiter Owner
	// Holder is the owner of the Token when the caller looked.
	Holder Owner
	// Ahead is how many queue entries, the holder's included, were in front
	// of the caller.
	Ahead int
	// Blocking is true when the caller is about to block in Acquire and false
	// when TryAcquire is about to report WouldBlock.
	Blocking bool
}

// Hook is told about contention right before a caller blocks or gives up. It
// runs on the caller's goroutine without any Token lock held. It must not use
// the Token it is attached to and it must not block for long: it delays the
// caller, and a Release that happens meanwhile is not lost but the caller only
// notices it after the Hook returns.
type Hook interface {
	BeforeSleep(ctx context.Context, c Contention)
}

// HookFunc adapts a function into a Hook.
type HookFunc func(ctx context.Context, c Contention)

// BeforeSleep calls fn(ctx, c).
func (fn HookFunc) BeforeSleep(ctx context.Context, c Contention) { fn(ctx, c) }

// Hooks returns a Hook that calls each of hooks in order.
func Hooks(hooks ...Hook) Hook {
	out := make(hookList, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			out = append(out, h)
		}
	}
	switch len(out) {
	case 0:
		return nopHook{}
	case 1:
		return out[0]
	}
	return out
}

type hookList []Hook

func (l hookList) BeforeSleep(ctx context.Context, c Contention) {
	for _, h := range l {
		h.BeforeSleep(ctx, c)
	}
}

type nopHook struct{}

func (nopHook) BeforeSleep(context.Context, Contention) {}
