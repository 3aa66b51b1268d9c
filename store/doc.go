// Package store implements the property table.
//
// A Table maps property names to typed values, at most one per name. Setting an
// existing name replaces its type and value; unsetting a missing name is an error.
// Every successful change is dispatched to the listeners subscribed through the
// table's listener registry.
//
//	t := store.New()
//	defer t.Destroy()
//
//	_ = t.Set("Property 1", property.TypeInteger, property.Integer(0x23456789))
//	_ = t.Set("Property 1", property.TypeString, property.String("Some String Value"))
//
//	h, _ := t.AddListener(listener.Name("Property 2"), myListener)
//	_ = t.Set("Property 2", property.TypeInteger, property.Integer(0x23456789)) // notifies myListener
//	_ = t.RemoveListener(h)
//
//	err := t.Unset("Property 5") // errors.ErrNotFound, no notification
//
// # Iteration
//
// Iterator walks the entries in the order their names were first set. It is lazy
// and single-pass, and it is invalidated by any Set or Unset on the table: the next
// step returns false and Err reports an invalidated error.
//
// # Concurrency
//
// Tables have no internal locking. Operations and listener callbacks run on the
// caller's goroutine; listeners may call back into the table. Share a table across
// goroutines only behind an external lock.
package store
