package store

import (
	"iter"

	"github.com/wippyai/propstore/capability"
	"github.com/wippyai/propstore/errors"
	"github.com/wippyai/propstore/property"
)

// Iterator walks a table's properties lazily, one per Next call.
//
//	it := table.Iterator()
//	defer it.Destroy()
//	for it.Next() {
//	    p := it.Property()
//	}
//	if err := it.Err(); err != nil {
//	    // the table changed underneath the iterator
//	}
//
// An exhausted iterator stays exhausted.
type Iterator struct {
	table *Table
	err   error
	cur   property.Property
	epoch uint64
	pos   int
	done  bool
}

func (it *Iterator) QueryCapability(id capability.ID) (capability.Unknown, error) {
	return capability.Resolve(it, id, IDIterator)
}

// Next advances to the next property. It returns false at the end of the
// sequence, and also when the table was mutated or destroyed since the
// iterator was created, in which case Err reports invalidated.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}

	t := it.table
	if t.destroyed || t.epoch != it.epoch {
		it.err = errors.Invalidated(errors.OpIterate, "property table changed during iteration")
		it.finish()
		return false
	}
	if it.pos >= len(t.entries) {
		it.finish()
		return false
	}

	e := t.entries[it.pos]
	it.pos++
	it.cur = property.Property{Name: e.name, Type: e.typ, Value: e.value.Clone()}
	return true
}

// Property returns a copy of the current property.
func (it *Iterator) Property() property.Property {
	return it.cur
}

// Err returns the error that ended the iteration, if any.
func (it *Iterator) Err() error {
	return it.err
}

// All adapts the iterator to a range-over-func sequence. Check Err after the
// loop.
func (it *Iterator) All() iter.Seq[property.Property] {
	return func(yield func(property.Property) bool) {
		for it.Next() {
			if !yield(it.Property()) {
				return
			}
		}
	}
}

// Destroy ends the iteration and drops the reference to the table.
func (it *Iterator) Destroy() {
	it.finish()
}

func (it *Iterator) finish() {
	it.done = true
	it.table = nil
	it.cur = property.Property{}
}
