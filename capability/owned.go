package capability

import (
	"github.com/wippyai/propstore/errors"
)

// Destroyer is implemented by objects that release resources when their
// owner is done with them. Destroy is called at most once per object by
// its single owner.
type Destroyer interface {
	Destroy()
}

// Owned holds the single ownership of a Destroyer. The holder releases the
// object exactly once, usually with defer:
//
//	o := capability.Own(store.New())
//	defer o.Release()
//
// Ownership moves with Transfer; the previous holder becomes empty and can
// neither use nor destroy the object afterwards.
type Owned[T Destroyer] struct {
	value T
	live  bool
}

// Own takes ownership of v.
func Own[T Destroyer](v T) *Owned[T] {
	return &Owned[T]{value: v, live: true}
}

// Get returns the owned object, or a destroyed error once it was released
// or transferred away.
func (o *Owned[T]) Get() (T, error) {
	if o == nil || !o.live {
		var zero T
		return zero, errors.Destroyed(errors.OpOwn, "owned object")
	}
	return o.value, nil
}

// Live reports whether o still owns its object.
func (o *Owned[T]) Live() bool {
	return o != nil && o.live
}

// Transfer moves ownership into a new holder and empties o.
func (o *Owned[T]) Transfer() (*Owned[T], error) {
	v, err := o.Get()
	if err != nil {
		return nil, err
	}
	o.clear()
	return Own(v), nil
}

// Release destroys the owned object. Calls after the first, and calls on a
// holder whose ownership was transferred, do nothing.
func (o *Owned[T]) Release() {
	if o == nil || !o.live {
		return
	}
	v := o.value
	o.clear()
	v.Destroy()
}

func (o *Owned[T]) clear() {
	var zero T
	o.value = zero
	o.live = false
}
