package propstore

import (
	"github.com/wippyai/propstore/capability"
	"github.com/wippyai/propstore/listener"
	"github.com/wippyai/propstore/property"
	"github.com/wippyai/propstore/store"
)

// Store is a property table seen through its capabilities.
type Store interface {
	capability.Unknown
	capability.Destroyer
	listener.Registrar

	Set(name string, t property.Type, v property.Value) error
	Unset(name string) error
	Get(name string) (property.Property, error)
	Len() int
	Iterator() *store.Iterator
}

var _ Store = (*store.Table)(nil)

// New creates an empty store.
func New(opts ...store.Option) Store {
	return store.New(opts...)
}

// Open resolves the Store capability of obj.
func Open(obj capability.Unknown) (Store, error) {
	return capability.As[Store](obj, store.IDStore)
}
