package fifotoken

import (
	"context"
	"testing"

	"github.com/zeebo/assert"
)

func TestHooks(t *testing.T) {
	var got []string
	record := func(name string) Hook {
		return HookFunc(func(context.Context, Contention) { got = append(got, name) })
	}

	_, ok := Hooks().(nopHook)
	assert.That(t, ok)
	_, ok = Hooks(nil, nil).(nopHook)
	assert.That(t, ok)

	Hooks(record("a"), nil, record("b")).BeforeSleep(context.Background(), Contention{})
	assert.DeepEqual(t, got, []string{"a", "b"})

	got = nil
	tok := New(WithHook(record("first")), WithHook(record("second")))
	ctx, other := bind(), bind()
	_, err := tok.Acquire(ctx)
	assert.NoError(t, err)
	out, err := tok.TryAcquire(other)
	assert.NoError(t, err)
	assert.Equal(t, out, WouldBlock)
	assert.DeepEqual(t, got, []string{"first", "second"})
	assert.NoError(t, tok.Release(ctx))
}

func TestLocker(t *testing.T) {
	tok := New()
	ctx := bind()
	l := tok.Locker(ctx)

	l.Lock()
	l.Lock()
	st := tok.Stats()
	assert.Equal(t, st.Nesting, 1)
	me, _ := OwnerFrom(ctx)
	assert.Equal(t, st.Owner, me)
	l.Unlock()
	l.Unlock()
	assert.Equal(t, tok.Stats(), Stats{})

	// a context without an owner gets one of its own.
	anon := tok.Locker(context.Background())
	anon.Lock()
	assert.That(t, tok.Stats().Held)
	anon.Unlock()

	defer func() { assert.NotNil(t, recover()) }()
	l.Unlock()
}
