package entropy

import "math/rand"

// Queue is a multiset that hands its values out in random order. Removal
// keeps the remaining values in insertion order, so a deterministic IntN
// makes every pop reproducible.
type Queue[T comparable] struct {
	values []T

	// IntN returns a value in [0, n). Defaults to math/rand's global source.
	IntN func(n int) int

	// Index Peek chose, kept until the next mutation so Pop agrees with it.
	peeked int
}

// NewQueue returns a queue holding values.
func NewQueue[T comparable](values ...T) *Queue[T] {
	return &Queue[T]{values: append([]T(nil), values...), peeked: -1}
}

// NewQueueRand returns a queue that draws indexes from rng.
func NewQueueRand[T comparable](rng *rand.Rand, values ...T) *Queue[T] {
	q := NewQueue(values...)
	q.IntN = rng.Intn
	return q
}

func (q *Queue[T]) intN(n int) int {
	if q.IntN != nil {
		return q.IntN(n)
	}
	return rand.Intn(n)
}

func (q *Queue[T]) mutated() {
	q.peeked = -1
}

// Push adds values to the queue.
func (q *Queue[T]) Push(values ...T) {
	q.values = append(q.values, values...)
	q.mutated()
}

// Peek returns the value the next Pop will return without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	var zero T
	if len(q.values) == 0 {
		return zero, false
	}
	if q.peeked < 0 {
		q.peeked = q.intN(len(q.values))
	}
	return q.values[q.peeked], true
}

// Pop removes and returns a random value. It returns false when empty.
func (q *Queue[T]) Pop() (T, bool) {
	v, ok := q.Peek()
	if !ok {
		return v, false
	}
	q.removeAt(q.peeked)
	return v, true
}

// PopExcluding removes and returns a random value that is not in banned.
func (q *Queue[T]) PopExcluding(banned ...T) (T, bool) {
	return q.popMatching(func(v T) bool { return !contains(banned, v) })
}

// PopOneOf removes and returns a random value from allowed.
func (q *Queue[T]) PopOneOf(allowed ...T) (T, bool) {
	return q.popMatching(func(v T) bool { return contains(allowed, v) })
}

// PopAvoiding prefers a value outside banned but falls back to any value.
func (q *Queue[T]) PopAvoiding(banned ...T) (T, bool) {
	if v, ok := q.PopExcluding(banned...); ok {
		return v, true
	}
	return q.Pop()
}

// popMatching picks uniformly among the entries accepted by keep, counting
// duplicates, and removes the chosen entry.
func (q *Queue[T]) popMatching(keep func(T) bool) (T, bool) {
	var zero T
	idx := make([]int, 0, len(q.values))
	for i, v := range q.values {
		if keep(v) {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return zero, false
	}
	i := idx[q.intN(len(idx))]
	v := q.values[i]
	q.removeAt(i)
	return v, true
}

// Remove deletes the first instance of v and reports whether one existed.
func (q *Queue[T]) Remove(v T) bool {
	for i, x := range q.values {
		if x == v {
			q.removeAt(i)
			return true
		}
	}
	return false
}

func (q *Queue[T]) removeAt(i int) {
	q.values = append(q.values[:i], q.values[i+1:]...)
	q.mutated()
}

// Filter returns a new queue with the values fn accepts. The new queue
// shares q's IntN.
func (q *Queue[T]) Filter(fn func(T) bool) *Queue[T] {
	out := &Queue[T]{IntN: q.IntN, peeked: -1}
	for _, v := range q.values {
		if fn(v) {
			out.values = append(out.values, v)
		}
	}
	return out
}

// FilterBy returns a new queue holding only the values listed.
func (q *Queue[T]) FilterBy(values ...T) *Queue[T] {
	return q.Filter(func(v T) bool { return contains(values, v) })
}

// Clone returns an independent copy of q.
func (q *Queue[T]) Clone() *Queue[T] {
	return &Queue[T]{values: append([]T(nil), q.values...), IntN: q.IntN, peeked: -1}
}

// Len returns the number of values left.
func (q *Queue[T]) Len() int { return len(q.values) }

// IsEmpty reports whether the queue has no values left.
func (q *Queue[T]) IsEmpty() bool { return len(q.values) == 0 }

// Contains reports whether v is in the queue.
func (q *Queue[T]) Contains(v T) bool { return contains(q.values, v) }

// Count returns how many instances of v the queue holds.
func (q *Queue[T]) Count(v T) int {
	n := 0
	for _, x := range q.values {
		if x == v {
			n++
		}
	}
	return n
}

// Values returns a copy of the remaining values in insertion order.
func (q *Queue[T]) Values() []T {
	return append([]T(nil), q.values...)
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
