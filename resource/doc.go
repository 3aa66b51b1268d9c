// Package resource provides a generation-checked handle table.
//
// Handles are opaque references to values stored in an arena. A handle is an
// (index, generation) pair: freeing a slot bumps its generation, so a handle to
// a removed value never resolves to whatever occupies the slot next.
//
// # Handle Table
//
//	table := resource.NewTable[subscription](0)
//
//	// Insert a value, get a handle
//	h, err := table.Insert(sub)
//
//	// Retrieve value by handle
//	sub, ok := table.Get(h)
//
//	// Remove and get value
//	sub, ok = table.Remove(h)
//
//	// h is stale from here on
//	_, ok = table.Get(h) // !ok
//
// # Capacity
//
// A positive limit caps the number of live slots; Insert past it returns ErrFull.
//
// # Memory Management
//
// Values are not destroyed implicitly. Values implementing Dropper are dropped
// when removed or when the table is closed; all other values are only released
// to the garbage collector.
package resource
