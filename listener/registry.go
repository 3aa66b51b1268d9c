package listener

import (
	stderrors "errors"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/propstore/capability"
	"github.com/wippyai/propstore/errors"
	"github.com/wippyai/propstore/property"
	"github.com/wippyai/propstore/resource"
)

// Handle identifies one subscription in one registry. Handles from another
// registry, removed handles and every handle of a closed registry are
// rejected with a not_found error.
type Handle struct {
	registry uuid.UUID
	slot     resource.Handle
}

// IsZero reports whether h was never issued.
func (h Handle) IsZero() bool {
	return h.slot.IsZero()
}

func (h Handle) String() string {
	if h.IsZero() {
		return "listener(none)"
	}
	return "listener(" + h.registry.String()[:8] + "/" + h.slot.String() + ")"
}

type subscription struct {
	listener Listener
	filter   Filter
}

// target is one entry of a dispatch snapshot.
type target struct {
	listener Listener
	handle   resource.Handle
}

// Registry maps subscriptions to generation-checked handles and dispatches
// change notifications in registration order.
//
// Registry is not safe for concurrent use.
type Registry struct {
	subs  *resource.Table[subscription]
	order []resource.Handle
	id    uuid.UUID
	limit int
}

// Option configures a Registry.
type Option func(*Registry)

// WithLimit caps the number of live subscriptions. Zero means unbounded.
func WithLimit(n int) Option {
	return func(r *Registry) {
		r.limit = n
	}
}

// WithID scopes the registry's handles to id instead of a random UUID.
func WithID(id uuid.UUID) Option {
	return func(r *Registry) {
		r.id = id
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{id: uuid.New()}
	for _, opt := range opts {
		opt(r)
	}
	r.subs = resource.NewTable[subscription](r.limit)
	return r
}

// ID returns the identity that scopes this registry's handles.
func (r *Registry) ID() uuid.UUID {
	return r.id
}

func (r *Registry) QueryCapability(id capability.ID) (capability.Unknown, error) {
	return capability.Resolve(r, id, IDRegistrar)
}

// AddListener subscribes l to changes matching f. l must answer the
// IDListener capability query with a Listener.
func (r *Registry) AddListener(f Filter, l capability.Unknown) (Handle, error) {
	if !f.IsAny() {
		if err := property.ValidateName(errors.OpSubscribe, f.Target()); err != nil {
			return Handle{}, err
		}
	}

	lis, err := capability.As[Listener](l, IDListener)
	if err != nil {
		return Handle{}, errors.Wrap(errors.OpSubscribe, errors.KindInvalidArgument, err, "object is not a listener")
	}

	slot, err := r.subs.Insert(subscription{listener: lis, filter: f})
	switch {
	case stderrors.Is(err, resource.ErrFull):
		return Handle{}, errors.OutOfMemory(errors.OpSubscribe, "listener table", r.limit)
	case stderrors.Is(err, resource.ErrClosed):
		return Handle{}, errors.Destroyed(errors.OpSubscribe, "listener registry")
	case err != nil:
		return Handle{}, errors.Wrap(errors.OpSubscribe, errors.KindOutOfMemory, err, "insert subscription")
	}
	r.order = append(r.order, slot)

	h := Handle{registry: r.id, slot: slot}
	Logger().Debug("listener added",
		zap.Stringer("handle", h),
		zap.Stringer("filter", f))
	return h, nil
}

// RemoveListener unsubscribes the listener identified by h. The listener
// itself is left untouched.
func (r *Registry) RemoveListener(h Handle) error {
	if h.registry != r.id {
		return errors.NotFound(errors.OpUnsubscribe, "listener handle "+h.String(), "")
	}
	if _, ok := r.subs.Remove(h.slot); !ok {
		return errors.NotFound(errors.OpUnsubscribe, "listener handle "+h.String(), "")
	}
	r.order = slices.DeleteFunc(r.order, func(s resource.Handle) bool {
		return s == h.slot
	})

	Logger().Debug("listener removed", zap.Stringer("handle", h))
	return nil
}

// Len returns the number of live subscriptions.
func (r *Registry) Len() int {
	return r.subs.Len()
}

// Notify delivers a change of name to every matching subscription and
// returns the number of deliveries. v nil signals removal.
//
// Matching subscriptions are captured before the first callback runs.
// Callbacks may add and remove subscriptions: ones added during the round
// are not notified in it, and ones removed during the round are skipped.
// A panicking listener is logged and the round continues.
func (r *Registry) Notify(name string, t property.Type, v *property.Value) int {
	snapshot := r.snapshot(name)

	delivered := 0
	for _, tg := range snapshot {
		if !r.subs.Contains(tg.handle) {
			continue
		}
		if r.deliver(tg, name, t, v) {
			delivered++
		}
	}
	return delivered
}

// Close drops every subscription without notifying listeners. All handles
// become invalid and further AddListener calls fail.
func (r *Registry) Close() {
	if r.subs.Closed() {
		return
	}
	n := r.subs.Len()
	_ = r.subs.Close()
	r.order = nil
	Logger().Debug("listener registry closed", zap.Int("dropped", n))
}

func (r *Registry) snapshot(name string) []target {
	var out []target
	for _, slot := range r.order {
		sub, ok := r.subs.Get(slot)
		if !ok || !sub.filter.Matches(name) {
			continue
		}
		out = append(out, target{handle: slot, listener: sub.listener})
	}
	return out
}

func (r *Registry) deliver(tg target, name string, t property.Type, v *property.Value) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			Logger().Error("listener panicked",
				zap.String("property", name),
				zap.Stringer("handle", Handle{registry: r.id, slot: tg.handle}),
				zap.Any("panic", rec))
			ok = false
		}
	}()

	var arg *property.Value
	if v != nil {
		cp := v.Clone()
		arg = &cp
	}
	tg.listener.OnPropertyChanged(name, t, arg)
	return true
}
