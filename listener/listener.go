package listener

import (
	"github.com/wippyai/propstore/capability"
	"github.com/wippyai/propstore/property"
)

const (
	// IDListener is the capability of objects that receive change notifications.
	IDListener capability.ID = "propstore.listener"

	// IDRegistrar is the capability of objects that manage subscriptions.
	IDRegistrar capability.ID = "propstore.registrar"
)

// Listener is notified after a matching property changes. v is nil when the
// property was removed; t is then the type the property had. v is a private
// copy the listener may keep.
//
// A listener has no way to report failure to the notifier. It must handle its
// own errors, and it may call back into the table that notifies it.
type Listener interface {
	capability.Unknown
	OnPropertyChanged(name string, t property.Type, v *property.Value)
}

// Registrar manages subscriptions of listeners to property names.
type Registrar interface {
	AddListener(f Filter, l capability.Unknown) (Handle, error)
	RemoveListener(h Handle) error
}

// Func adapts a plain function to a Listener.
type Func func(name string, t property.Type, v *property.Value)

// OnPropertyChanged calls f.
func (f Func) OnPropertyChanged(name string, t property.Type, v *property.Value) {
	f(name, t, v)
}

func (f Func) QueryCapability(id capability.ID) (capability.Unknown, error) {
	return capability.Resolve(f, id, IDListener)
}
