package capability

import (
	"slices"

	"github.com/wippyai/propstore/errors"
)

// ID names a capability interface.
type ID string

// IDUnknown is the base capability every object answers to.
const IDUnknown ID = "propstore.unknown"

func (id ID) String() string { return string(id) }

// Unknown is the base interface of every capability object. QueryCapability
// returns the object's implementation of id, or an error of kind
// not_supported when the object does not declare it.
type Unknown interface {
	QueryCapability(id ID) (Unknown, error)
}

// Resolve implements QueryCapability for objects that serve every declared
// capability from a single receiver. IDUnknown is always served.
//
//	func (t *Table) QueryCapability(id capability.ID) (capability.Unknown, error) {
//		return capability.Resolve(t, id, IDStore, listener.IDRegistrar)
//	}
func Resolve(self Unknown, id ID, declared ...ID) (Unknown, error) {
	if id == IDUnknown || slices.Contains(declared, id) {
		return self, nil
	}
	return nil, errors.NotSupported(errors.OpQuery, string(id))
}

// As queries obj for id and checks the result against T. A nil object, an
// undeclared id, or an implementation that does not satisfy T all yield a
// not_supported error; the zero T is never handed out as a valid reference.
func As[T any](obj Unknown, id ID) (T, error) {
	var zero T
	if obj == nil {
		return zero, errors.New(errors.OpQuery, errors.KindNotSupported).
			Detail("query %q on nil object", id).
			Value(string(id)).
			Build()
	}

	impl, err := obj.QueryCapability(id)
	if err != nil {
		return zero, err
	}

	typed, ok := impl.(T)
	if !ok {
		return zero, errors.New(errors.OpQuery, errors.KindNotSupported).
			Detail("capability %q resolved to %T", id, impl).
			Value(string(id)).
			Build()
	}
	return typed, nil
}

// Supports reports whether obj declares id.
func Supports(obj Unknown, id ID) bool {
	if obj == nil {
		return false
	}
	_, err := obj.QueryCapability(id)
	return err == nil
}
