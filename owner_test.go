package fifotoken

import (
	"context"
	"testing"

	"github.com/zeebo/assert"
)

func TestOwner(t *testing.T) {
	var zero Owner
	assert.That(t, zero.IsZero())
	assert.Equal(t, zero.String(), "<none>")

	a, b := NewOwner(), NewOwner()
	assert.False(t, a.IsZero())
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a.String(), b.String())

	_, ok := OwnerFrom(context.Background())
	assert.False(t, ok)
	_, ok = OwnerFrom(WithOwner(context.Background(), zero))
	assert.False(t, ok)

	ctx := WithOwner(context.Background(), a)
	got, ok := OwnerFrom(ctx)
	assert.That(t, ok)
	assert.Equal(t, got, a)

	// binding keeps an existing owner.
	got, _ = OwnerFrom(Bind(ctx))
	assert.Equal(t, got, a)

	got, ok = OwnerFrom(Bind(context.Background()))
	assert.That(t, ok)
	assert.NotEqual(t, got, a)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, GrantedImmediately.String(), "GrantedImmediately")
	assert.Equal(t, GrantedAfterWait.String(), "GrantedAfterWait")
	assert.Equal(t, WouldBlock.String(), "WouldBlock")
	assert.That(t, GrantedAfterWait.Granted())
	assert.False(t, WouldBlock.Granted())
}
