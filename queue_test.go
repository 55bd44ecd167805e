package fifotoken

import (
	"testing"

	"github.com/zeebo/assert"
)

func owners(q *waitQueue) (out []Owner) {
	for _, s := range q.slots {
		out = append(out, s.owner)
	}
	return out
}

func TestWaitQueue(t *testing.T) {
	a, b, c, d := newSlot(NewOwner()), newSlot(NewOwner()), newSlot(NewOwner()), newSlot(NewOwner())

	var q waitQueue
	assert.Equal(t, q.push(a), 0)
	assert.Equal(t, q.push(b), 1)
	assert.Equal(t, q.push(c), 2)
	assert.Equal(t, q.front(), a)

	q.insert(1, d)
	assert.DeepEqual(t, owners(&q), []Owner{a.owner, d.owner, b.owner, c.owner})

	assert.That(t, q.remove(b))
	assert.False(t, q.remove(b))
	assert.DeepEqual(t, owners(&q), []Owner{a.owner, d.owner, c.owner})

	assert.Equal(t, q.pop(), a)
	q.insert(-1, a)
	assert.DeepEqual(t, owners(&q), []Owner{d.owner, c.owner, a.owner})

	q.insert(7, b)
	q.insert(0, q.pop())
	assert.DeepEqual(t, owners(&q), []Owner{d.owner, c.owner, a.owner, b.owner})
	assert.Equal(t, q.len(), 4)
}

func TestSlot(t *testing.T) {
	s := newSlot(NewOwner())
	s.signal()

	// a signal sent before the wait is not lost.
	assert.NoError(t, s.wait(bind()))
}
