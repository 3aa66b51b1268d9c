package store

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/propstore/capability"
	"github.com/wippyai/propstore/errors"
	"github.com/wippyai/propstore/listener"
	"github.com/wippyai/propstore/property"
)

const (
	// IDStore is the capability of property tables.
	IDStore capability.ID = "propstore.store"

	// IDIterator is the capability of property iterators.
	IDIterator capability.ID = "propstore.iterator"
)

type entry struct {
	name  string
	value property.Value
	typ   property.Type
}

// Table owns a unique-by-name set of typed properties and notifies
// subscribed listeners of every change.
//
// Table is not safe for concurrent use. All operations and listener
// callbacks run on the caller's goroutine.
type Table struct {
	listeners  *listener.Registry
	index      map[string]int
	entries    []entry
	id         uuid.UUID
	maxEntries int
	epoch      uint64
	destroyed  bool
}

// Option configures a Table.
type Option func(*config)

type config struct {
	id           uuid.UUID
	maxEntries   int
	maxListeners int
}

// WithMaxEntries caps the number of distinct property names. Setting a new
// name beyond the cap fails with out_of_memory. Zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(c *config) {
		c.maxEntries = n
	}
}

// WithMaxListeners caps the number of live subscriptions. Zero means unbounded.
func WithMaxListeners(n int) Option {
	return func(c *config) {
		c.maxListeners = n
	}
}

// WithID sets the table identity that scopes its listener handles.
func WithID(id uuid.UUID) Option {
	return func(c *config) {
		c.id = id
	}
}

// New creates an empty table. The caller owns it and must Destroy it.
func New(opts ...Option) *Table {
	cfg := config{id: uuid.New()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Table{
		id:         cfg.id,
		index:      make(map[string]int),
		maxEntries: cfg.maxEntries,
		listeners: listener.NewRegistry(
			listener.WithID(cfg.id),
			listener.WithLimit(cfg.maxListeners),
		),
	}
}

// ID returns the table identity.
func (t *Table) ID() uuid.UUID {
	return t.id
}

func (t *Table) QueryCapability(id capability.ID) (capability.Unknown, error) {
	return capability.Resolve(t, id, IDStore, listener.IDRegistrar)
}

// Set inserts or replaces the property name. The value is copied, so the
// caller may reuse its buffers as soon as Set returns. Listeners matching
// name are notified once the new value is installed.
func (t *Table) Set(name string, typ property.Type, v property.Value) error {
	if t.destroyed {
		return errors.Destroyed(errors.OpSet, "property table")
	}
	if err := property.Check(errors.OpSet, name, typ, v); err != nil {
		return err
	}

	stored := v.Clone()
	if i, ok := t.index[name]; ok {
		// replaced in place, keeping the first-insertion position
		t.entries[i] = entry{name: name, typ: typ, value: stored}
	} else {
		if t.maxEntries > 0 && len(t.entries) >= t.maxEntries {
			return errors.OutOfMemory(errors.OpSet, "property table", t.maxEntries)
		}
		t.entries = append(t.entries, entry{name: name, typ: typ, value: stored})
		t.index[name] = len(t.entries) - 1
	}
	t.epoch++

	Logger().Debug("property set",
		zap.String("name", name),
		zap.Stringer("type", typ))

	t.listeners.Notify(name, typ, &stored)
	return nil
}

// Unset removes the property name, or fails with not_found when it is not
// set. Listeners matching name are notified with a nil value and the type
// the property had.
func (t *Table) Unset(name string) error {
	if t.destroyed {
		return errors.Destroyed(errors.OpUnset, "property table")
	}
	i, ok := t.index[name]
	if !ok {
		return errors.NotFound(errors.OpUnset, "property", name)
	}

	old := t.entries[i]
	t.entries = slices.Delete(t.entries, i, i+1)
	delete(t.index, name)
	for j := i; j < len(t.entries); j++ {
		t.index[t.entries[j].name] = j
	}
	t.epoch++

	Logger().Debug("property unset",
		zap.String("name", name),
		zap.Stringer("type", old.typ))

	t.listeners.Notify(name, old.typ, nil)
	return nil
}

// Get returns a copy of the property name.
func (t *Table) Get(name string) (property.Property, error) {
	if t.destroyed {
		return property.Property{}, errors.Destroyed(errors.OpGet, "property table")
	}
	i, ok := t.index[name]
	if !ok {
		return property.Property{}, errors.NotFound(errors.OpGet, "property", name)
	}
	e := t.entries[i]
	return property.Property{Name: e.name, Type: e.typ, Value: e.value.Clone()}, nil
}

// Len returns the number of properties.
func (t *Table) Len() int {
	return len(t.entries)
}

// Iterator returns a single-pass view over the properties present now, in
// first-insertion order. Any Set or Unset on the table invalidates it.
func (t *Table) Iterator() *Iterator {
	return &Iterator{table: t, epoch: t.epoch}
}

// AddListener subscribes l to changes of properties matching f.
func (t *Table) AddListener(f listener.Filter, l capability.Unknown) (listener.Handle, error) {
	return t.listeners.AddListener(f, l)
}

// RemoveListener unsubscribes h. Handles of a destroyed table are not_found.
func (t *Table) RemoveListener(h listener.Handle) error {
	return t.listeners.RemoveListener(h)
}

// Listeners returns the number of live subscriptions.
func (t *Table) Listeners() int {
	return t.listeners.Len()
}

// Destroy releases every property and subscription without notifying
// listeners. Later mutations fail with destroyed; a second Destroy does
// nothing.
func (t *Table) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	n := len(t.entries)
	t.entries = nil
	t.index = nil
	t.epoch++
	t.listeners.Close()

	Logger().Debug("property table destroyed",
		zap.Stringer("table", t.id),
		zap.Int("properties", n))
}
