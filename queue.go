package fifotoken

// waitQueue is the arrival ordered list of slots. The front slot belongs to
// the current owner, and the queue is empty exactly when the Token is free.
type waitQueue struct {
	slots []*slot
}

func (q *waitQueue) len() int     { return len(q.slots) }
func (q *waitQueue) front() *slot { return q.slots[0] }

// push appends s to the back and reports how many slots were ahead of it.
func (q *waitQueue) push(s *slot) (ahead int) {
	ahead = len(q.slots)
	q.slots = append(q.slots, s)
	return ahead
}

// pop removes and returns the front slot.
func (q *waitQueue) pop() *slot {
	s := q.slots[0]
	copy(q.slots, q.slots[1:])
	q.slots[len(q.slots)-1] = nil
	q.slots = q.slots[:len(q.slots)-1]
	return s
}

// insert places s at index i, shifting later slots back. An i that is
// negative or past the end places s at the back.
func (q *waitQueue) insert(i int, s *slot) {
	if i < 0 || i >= len(q.slots) {
		q.slots = append(q.slots, s)
		return
	}
	q.slots = append(q.slots, nil)
	copy(q.slots[i+1:], q.slots[i:])
	q.slots[i] = s
}

// remove deletes s from the queue and reports if it was present.
func (q *waitQueue) remove(s *slot) bool {
	for i, c := range q.slots {
		if c != s {
			continue
		}
		copy(q.slots[i:], q.slots[i+1:])
		q.slots[len(q.slots)-1] = nil
		q.slots = q.slots[:len(q.slots)-1]
		return true
	}
	return false
}
