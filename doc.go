// Package propstore provides a dynamically typed property store with change
// notification.
//
// A store holds named, typed values (integer, float, boolean, string, raw
// bytes) and tells subscribed listeners whenever a property is set or
// removed. Objects expose their roles through capability queries, so a
// caller holding only a capability.Unknown can discover whether it is a
// store, a listener registrar or an iterator.
//
// # Architecture Overview
//
//	propstore/           Root package with the Store interface
//	├── capability/      Capability IDs, queries and single ownership
//	├── property/        Types, values and JSON rendering
//	├── listener/        Filters, listeners and the subscription registry
//	├── store/           Property table and lazy iterator
//	├── resource/        Generation-checked handle table
//	├── platform/        Randomness, heap statistics and UTF-16 paths
//	├── errors/          Structured error types
//	├── internal/config  Environment configuration for the CLI
//	└── cmd/propctl      Line-oriented and interactive store shell
//
// # Quick Start
//
//	s := propstore.New()
//	defer s.Destroy()
//
//	_ = s.Set("Property 1", property.TypeInteger, property.Integer(0x23456789))
//
//	h, err := s.AddListener(listener.Name("Property 2"), listener.Func(
//	    func(name string, t property.Type, v *property.Value) {
//	        if v == nil {
//	            fmt.Println(name, "removed")
//	            return
//	        }
//	        fmt.Println(name, t, v)
//	    }))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.RemoveListener(h)
//
//	_ = s.Set("Property 2", property.TypeString, property.String("hello"))
//
// # Notifications
//
// Listeners run synchronously on the goroutine that changed the store, after
// the change is visible. They may read and modify the store and add or
// remove subscriptions, including their own. Each round is dispatched over a
// snapshot taken before the first callback: subscriptions added during the
// round wait for the next change, and subscriptions removed during the round
// are skipped.
//
// # Thread Safety
//
// Stores are NOT safe for concurrent use. Callers that share a store across
// goroutines must serialize access themselves.
package propstore
