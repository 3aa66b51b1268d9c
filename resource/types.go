package resource

import "strconv"

// Handle is an opaque, generation-checked reference to a slot in a Table.
// The zero Handle is reserved and always invalid.
type Handle struct {
	Index      uint32
	Generation uint32
}

// IsZero reports whether h is the reserved invalid handle.
func (h Handle) IsZero() bool {
	return h.Index == 0
}

// String renders h as index.generation.
func (h Handle) String() string {
	return strconv.FormatUint(uint64(h.Index), 10) + "." + strconv.FormatUint(uint64(h.Generation), 10)
}

// Dropper is optionally implemented by values that need cleanup when their
// slot is removed or the table is closed.
type Dropper interface {
	Drop()
}
