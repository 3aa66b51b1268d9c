package listener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/propstore/capability"
	"github.com/wippyai/propstore/errors"
	"github.com/wippyai/propstore/property"
)

type call struct {
	name    string
	typ     property.Type
	value   property.Value
	removed bool
}

// recorder is a listener spy that records every notification.
type recorder struct {
	calls []call
	on    func()
}

func (r *recorder) QueryCapability(id capability.ID) (capability.Unknown, error) {
	return capability.Resolve(r, id, IDListener)
}

func (r *recorder) OnPropertyChanged(name string, t property.Type, v *property.Value) {
	c := call{name: name, typ: t, removed: v == nil}
	if v != nil {
		c.value = *v
	}
	r.calls = append(r.calls, c)
	if r.on != nil {
		r.on()
	}
}

// notAListener answers only the base capability.
type notAListener struct{}

func (n notAListener) QueryCapability(id capability.ID) (capability.Unknown, error) {
	return capability.Resolve(n, id)
}

func notifySet(r *Registry, name string, v property.Value) int {
	return r.Notify(name, v.Type(), &v)
}

func Test_Registry_DeliversToMatchingName(t *testing.T) {
	r := NewRegistry()
	l := &recorder{}

	_, err := r.AddListener(Name("Property 2"), l)
	require.NoError(t, err)

	assert.Equal(t, 1, notifySet(r, "Property 2", property.Integer(0x23456789)))
	assert.Equal(t, 0, notifySet(r, "Property 3", property.Integer(1)))

	require.Len(t, l.calls, 1)
	assert.Equal(t, "Property 2", l.calls[0].name)
	assert.Equal(t, property.TypeInteger, l.calls[0].typ)
	assert.True(t, l.calls[0].value.Equal(property.Integer(0x23456789)))
	assert.False(t, l.calls[0].removed)
}

func Test_Registry_RemovalNotification(t *testing.T) {
	r := NewRegistry()
	l := &recorder{}
	_, err := r.AddListener(Name("P"), l)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Notify("P", property.TypeString, nil))

	require.Len(t, l.calls, 1)
	assert.True(t, l.calls[0].removed)
	assert.Equal(t, property.TypeString, l.calls[0].typ)
}

func Test_Registry_AnyFilterBroadcasts(t *testing.T) {
	r := NewRegistry()
	all := &recorder{}
	one := &recorder{}

	_, err := r.AddListener(Any(), all)
	require.NoError(t, err)
	_, err = r.AddListener(Name("A"), one)
	require.NoError(t, err)

	notifySet(r, "A", property.Boolean(true))
	notifySet(r, "B", property.Boolean(false))
	r.Notify("C", property.TypeInteger, nil)

	require.Len(t, all.calls, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{all.calls[0].name, all.calls[1].name, all.calls[2].name})
	assert.True(t, all.calls[2].removed)
	require.Len(t, one.calls, 1)
	assert.Equal(t, "A", one.calls[0].name)
}

func Test_Registry_RegistrationOrder(t *testing.T) {
	r := NewRegistry()
	var order []string

	mk := func(tag string) Func {
		return func(string, property.Type, *property.Value) { order = append(order, tag) }
	}

	first, err := r.AddListener(Name("X"), mk("first"))
	require.NoError(t, err)
	_, err = r.AddListener(Any(), mk("broadcast"))
	require.NoError(t, err)
	_, err = r.AddListener(Name("X"), mk("third"))
	require.NoError(t, err)

	// a new subscription reusing the freed slot still goes last
	require.NoError(t, r.RemoveListener(first))
	_, err = r.AddListener(Name("X"), mk("fourth"))
	require.NoError(t, err)

	notifySet(r, "X", property.Integer(1))
	assert.Equal(t, []string{"broadcast", "third", "fourth"}, order)
}

func Test_Registry_SameListenerTwiceDeliversTwice(t *testing.T) {
	r := NewRegistry()
	l := &recorder{}

	_, err := r.AddListener(Name("P"), l)
	require.NoError(t, err)
	_, err = r.AddListener(Any(), l)
	require.NoError(t, err)

	assert.Equal(t, 2, notifySet(r, "P", property.Integer(1)))
	assert.Len(t, l.calls, 2)
}

func Test_Registry_RemoveStopsDelivery(t *testing.T) {
	r := NewRegistry()
	l := &recorder{}

	h, err := r.AddListener(Name("P"), l)
	require.NoError(t, err)
	require.NoError(t, r.RemoveListener(h))

	notifySet(r, "P", property.Integer(1))
	assert.Empty(t, l.calls)
	assert.Equal(t, 0, r.Len())

	err = r.RemoveListener(h)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func Test_Registry_StaleHandleAfterSlotReuse(t *testing.T) {
	r := NewRegistry()

	old, err := r.AddListener(Name("P"), &recorder{})
	require.NoError(t, err)
	require.NoError(t, r.RemoveListener(old))

	fresh, err := r.AddListener(Name("P"), &recorder{})
	require.NoError(t, err)
	assert.NotEqual(t, old, fresh)

	assert.ErrorIs(t, r.RemoveListener(old), errors.ErrNotFound)
	assert.Equal(t, 1, r.Len())
	assert.NoError(t, r.RemoveListener(fresh))
}

func Test_Registry_ForeignHandle(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	h, err := a.AddListener(Name("P"), &recorder{})
	require.NoError(t, err)
	_, err = b.AddListener(Name("P"), &recorder{})
	require.NoError(t, err)

	assert.ErrorIs(t, b.RemoveListener(h), errors.ErrNotFound)
	assert.Equal(t, 1, b.Len())
	assert.ErrorIs(t, a.RemoveListener(Handle{}), errors.ErrNotFound)
}

func Test_Registry_AddValidation(t *testing.T) {
	r := NewRegistry()

	_, err := r.AddListener(Name(""), &recorder{})
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)

	_, err = r.AddListener(Filter{}, &recorder{})
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)

	_, err = r.AddListener(Name("P"), notAListener{})
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)
	assert.ErrorIs(t, err, errors.ErrNotSupported)

	_, err = r.AddListener(Name("P"), nil)
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)

	assert.Equal(t, 0, r.Len())
}

func Test_Registry_Limit(t *testing.T) {
	r := NewRegistry(WithLimit(1))

	h, err := r.AddListener(Any(), &recorder{})
	require.NoError(t, err)

	_, err = r.AddListener(Any(), &recorder{})
	assert.ErrorIs(t, err, errors.ErrOutOfMemory)

	require.NoError(t, r.RemoveListener(h))
	_, err = r.AddListener(Any(), &recorder{})
	assert.NoError(t, err)
}

func Test_Registry_Close(t *testing.T) {
	r := NewRegistry()
	l := &recorder{}

	h, err := r.AddListener(Any(), l)
	require.NoError(t, err)

	r.Close()
	r.Close()

	assert.Empty(t, l.calls, "close must not notify")
	assert.Equal(t, 0, r.Len())
	assert.ErrorIs(t, r.RemoveListener(h), errors.ErrNotFound)

	_, err = r.AddListener(Any(), l)
	assert.ErrorIs(t, err, errors.ErrDestroyed)

	assert.Equal(t, 0, notifySet(r, "P", property.Integer(1)))
}

func Test_Registry_ListenerRemovesAnotherMidRound(t *testing.T) {
	r := NewRegistry()

	victim := &recorder{}
	bystander := &recorder{}
	var victimHandle Handle

	remover := &recorder{}
	remover.on = func() {
		require.NoError(t, r.RemoveListener(victimHandle))
	}

	_, err := r.AddListener(Name("P"), remover)
	require.NoError(t, err)
	victimHandle, err = r.AddListener(Name("P"), victim)
	require.NoError(t, err)
	_, err = r.AddListener(Name("P"), bystander)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		assert.Equal(t, 2, notifySet(r, "P", property.Integer(1)))
	})

	assert.Len(t, remover.calls, 1)
	assert.Empty(t, victim.calls)
	assert.Len(t, bystander.calls, 1)
}

func Test_Registry_ListenerRemovesItselfMidRound(t *testing.T) {
	r := NewRegistry()
	self := &recorder{}
	other := &recorder{}

	var selfHandle Handle
	self.on = func() {
		require.NoError(t, r.RemoveListener(selfHandle))
	}

	var err error
	selfHandle, err = r.AddListener(Any(), self)
	require.NoError(t, err)
	_, err = r.AddListener(Any(), other)
	require.NoError(t, err)

	notifySet(r, "P", property.Integer(1))
	notifySet(r, "P", property.Integer(2))

	assert.Len(t, self.calls, 1)
	assert.Len(t, other.calls, 2)
}

func Test_Registry_ListenerAddedMidRoundWaits(t *testing.T) {
	r := NewRegistry()
	late := &recorder{}

	adder := &recorder{}
	adder.on = func() {
		if len(adder.calls) == 1 {
			_, err := r.AddListener(Name("P"), late)
			require.NoError(t, err)
		}
	}

	_, err := r.AddListener(Name("P"), adder)
	require.NoError(t, err)

	notifySet(r, "P", property.Integer(1))
	assert.Empty(t, late.calls)

	notifySet(r, "P", property.Integer(2))
	require.Len(t, late.calls, 1)
	assert.True(t, late.calls[0].value.Equal(property.Integer(2)))
}

func Test_Registry_NestedNotify(t *testing.T) {
	r := NewRegistry()
	var seen []string

	_, err := r.AddListener(Any(), Func(func(name string, _ property.Type, _ *property.Value) {
		seen = append(seen, name)
		if name == "outer" {
			inner := property.Integer(2)
			r.Notify("inner", inner.Type(), &inner)
		}
	}))
	require.NoError(t, err)

	notifySet(r, "outer", property.Integer(1))
	assert.Equal(t, []string{"outer", "inner"}, seen)
}

func Test_Registry_PanickingListenerIsContained(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	r := NewRegistry()
	after := &recorder{}

	_, err := r.AddListener(Name("P"), Func(func(string, property.Type, *property.Value) {
		panic("boom")
	}))
	require.NoError(t, err)
	_, err = r.AddListener(Name("P"), after)
	require.NoError(t, err)

	var delivered int
	assert.NotPanics(t, func() {
		delivered = notifySet(r, "P", property.Integer(1))
	})

	assert.Equal(t, 1, delivered)
	assert.Len(t, after.calls, 1)

	entries := logs.FilterMessage("listener panicked").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "P", entries[0].ContextMap()["property"])
}

func Test_Registry_ListenersGetPrivateCopies(t *testing.T) {
	r := NewRegistry()

	_, err := r.AddListener(Name("P"), Func(func(_ string, _ property.Type, v *property.Value) {
		b, _ := v.Bytes()
		b[0] = 0xff
	}))
	require.NoError(t, err)
	second := &recorder{}
	_, err = r.AddListener(Name("P"), second)
	require.NoError(t, err)

	src := property.RawData([]byte{1, 2})
	r.Notify("P", src.Type(), &src)

	got, _ := src.Bytes()
	assert.Equal(t, []byte{1, 2}, got)
	require.Len(t, second.calls, 1)
	assert.True(t, second.calls[0].value.Equal(property.RawData([]byte{1, 2})))
}

func Test_Registry_Capability(t *testing.T) {
	r := NewRegistry()

	reg, err := capability.As[Registrar](r, IDRegistrar)
	require.NoError(t, err)
	assert.Same(t, r, reg)

	_, err = capability.As[Listener](r, IDListener)
	assert.ErrorIs(t, err, errors.ErrNotSupported)
}

func Test_Handle_String(t *testing.T) {
	assert.Equal(t, "listener(none)", Handle{}.String())

	r := NewRegistry()
	h, err := r.AddListener(Any(), &recorder{})
	require.NoError(t, err)
	assert.Contains(t, h.String(), r.ID().String()[:8])
	assert.False(t, h.IsZero())
}

func Test_Filter(t *testing.T) {
	assert.True(t, Any().Matches("anything"))
	assert.True(t, Name("a").Matches("a"))
	assert.False(t, Name("a").Matches("A"))
	assert.True(t, ParseFilter("*").IsAny())
	assert.Equal(t, "x", ParseFilter("x").Target())
	assert.Equal(t, "*", Any().String())
}

func Test_LogListener(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := NewRegistry()

	_, err := r.AddListener(Any(), NewLogListener(zap.New(core)))
	require.NoError(t, err)

	notifySet(r, "P", property.String("v"))
	r.Notify("P", property.TypeString, nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "property changed", entries[0].Message)
	assert.Equal(t, `"v"`, entries[0].ContextMap()["value"])
	assert.Equal(t, "property removed", entries[1].Message)
}
