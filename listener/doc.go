// Package listener implements subscription management and change dispatch.
//
// # Subscriptions
//
// A subscription pairs a Filter with a Listener capability object and is
// identified by a Handle:
//
//	h, err := registry.AddListener(listener.Name("Property 2"), listener.Func(
//	    func(name string, t property.Type, v *property.Value) {
//	        // v == nil means the property was removed
//	    }))
//
//	err = registry.RemoveListener(h)
//	err = registry.RemoveListener(h) // not_found
//
// Name matches one property name exactly. Any matches every name, for sets and
// for removals. Per-name and broadcast subscriptions are notified in a single
// registration order.
//
// # Handles
//
// Handles are generation-checked slots in a resource.Table, scoped by the
// registry's UUID. A handle stops resolving as soon as its subscription is
// removed, even if the slot is reused later, and never resolves in another
// registry.
//
// # Dispatch
//
// Notify captures the matching subscriptions before calling any of them.
// Listeners may add or remove subscriptions, including their own, from inside
// a callback: added ones wait for the next change, removed ones are skipped if
// they have not been called yet. A listener that panics is logged and does not
// stop the round.
//
// The registry never destroys a listener; listeners belong to whoever
// registered them.
package listener
