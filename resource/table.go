package resource

import (
	"errors"
)

var (
	ErrClosed = errors.New("resource table closed")
	ErrFull   = errors.New("resource table full")
)

// Table is an arena of values addressed by generation-checked handles.
// Freed slots are reused, and every reuse bumps the slot generation so
// handles to the previous occupant stop resolving.
//
// Table is not safe for concurrent use.
type Table[T any] struct {
	slots  []slot[T]
	free   []uint32
	live   int
	limit  int
	closed bool
}

type slot[T any] struct {
	value      T
	generation uint32
	valid      bool
}

// NewTable creates an empty table. A limit of zero or less means unbounded.
func NewTable[T any](limit int) *Table[T] {
	return &Table[T]{
		slots: make([]slot[T], 0, 16),
		free:  make([]uint32, 0, 8),
		limit: limit,
	}
}

// Insert stores v and returns its handle.
func (t *Table[T]) Insert(v T) (Handle, error) {
	if t.closed {
		return Handle{}, ErrClosed
	}
	if t.limit > 0 && t.live >= t.limit {
		return Handle{}, ErrFull
	}

	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		s := &t.slots[idx-1]
		s.value = v
		s.valid = true
		t.live++
		return Handle{Index: idx, Generation: s.generation}, nil
	}

	t.slots = append(t.slots, slot[T]{value: v, generation: 1, valid: true})
	t.live++
	return Handle{Index: uint32(len(t.slots)), Generation: 1}, nil
}

// Get retrieves the value for h.
func (t *Table[T]) Get(h Handle) (T, bool) {
	s := t.lookup(h)
	if s == nil {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Contains reports whether h resolves to a live slot.
func (t *Table[T]) Contains(h Handle) bool {
	return t.lookup(h) != nil
}

// Remove frees the slot for h and returns its value.
// Values implementing Dropper are dropped before Remove returns.
func (t *Table[T]) Remove(h Handle) (T, bool) {
	s := t.lookup(h)
	if s == nil {
		var zero T
		return zero, false
	}

	value := s.value
	var zero T
	s.value = zero
	s.valid = false
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	t.free = append(t.free, h.Index)
	t.live--

	if d, ok := any(value).(Dropper); ok {
		d.Drop()
	}
	return value, true
}

// Len returns the number of live slots.
func (t *Table[T]) Len() int {
	return t.live
}

// Each calls fn for every live slot in index order until fn returns false.
func (t *Table[T]) Each(fn func(Handle, T) bool) {
	for i := range t.slots {
		s := &t.slots[i]
		if !s.valid {
			continue
		}
		if !fn(Handle{Index: uint32(i + 1), Generation: s.generation}, s.value) {
			return
		}
	}
}

// Closed reports whether Close has been called.
func (t *Table[T]) Closed() bool {
	return t.closed
}

// Close releases every live value and rejects further inserts.
// Every handle issued by the table stops resolving.
func (t *Table[T]) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	for i := range t.slots {
		if t.slots[i].valid {
			if d, ok := any(t.slots[i].value).(Dropper); ok {
				d.Drop()
			}
		}
	}

	t.slots = nil
	t.free = nil
	t.live = 0
	return nil
}

func (t *Table[T]) lookup(h Handle) *slot[T] {
	if h.Index == 0 || int(h.Index) > len(t.slots) {
		return nil
	}
	s := &t.slots[h.Index-1]
	if !s.valid || s.generation != h.Generation {
		return nil
	}
	return s
}
