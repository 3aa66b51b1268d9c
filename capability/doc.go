// Package capability implements the object model the property store is built on.
//
// # Capability Query
//
// A concrete object declares the capability interfaces it implements and answers
// queries for them by ID:
//
//	reg, err := capability.As[listener.Registrar](table, listener.IDRegistrar)
//	if errors.Is(err, propstoreerrors.ErrNotSupported) {
//	    // table does not expose a listener registry
//	}
//
// A query either yields a reference that satisfies the requested Go type or an
// error of kind not_supported. It never yields a mis-typed value.
//
// # Ownership
//
// Objects are destroyed explicitly by exactly one owner. Owned wraps a Destroyer
// so that the destroy happens once, at scope exit, and so that ownership can be
// moved without leaving a second holder able to destroy the object:
//
//	o := capability.Own(store.New())
//	defer o.Release()
//
//	next, _ := o.Transfer() // o is now empty; its Release is a no-op
//	defer next.Release()
//
// There is no reference counting. Borrowers use the object only while the owner
// keeps it alive.
package capability
