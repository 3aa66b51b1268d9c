package property

import (
	"encoding/hex"
	"math"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	"github.com/wippyai/propstore/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Property is a named, typed value held in a table.
type Property struct {
	Name  string
	Type  Type
	Value Value
}

// Clone returns a copy of p that shares no memory with it.
func (p Property) Clone() Property {
	p.Value = p.Value.Clone()
	return p
}

func (p Property) String() string {
	return p.Name + " " + p.Type.String() + " " + p.Value.String()
}

// ValidateName rejects names a table cannot hold: empty or invalid UTF-8.
func ValidateName(op errors.Op, name string) error {
	if name == "" {
		return errors.InvalidArgument(op, name, "property name must not be empty")
	}
	if !utf8.ValidString(name) {
		return errors.InvalidArgument(op, name, "property name must be valid UTF-8")
	}
	return nil
}

// Check validates a (name, type, value) triple before it enters a table.
func Check(op errors.Op, name string, t Type, v Value) error {
	if err := ValidateName(op, name); err != nil {
		return err
	}
	if !t.Valid() {
		return errors.New(op, errors.KindInvalidArgument).
			Name(name).
			Detail("invalid property type %d", uint8(t)).
			Build()
	}
	if t != v.Type() {
		return errors.New(op, errors.KindInvalidArgument).
			Name(name).
			Detail("type %s does not match value type %s", t, v.Type()).
			Value(v.Type()).
			Build()
	}
	return nil
}

type jsonValue struct {
	Type  string `json:"type"`
	Value any    `json:"value,omitempty"`
}

// MarshalJSON renders the value as {"type": ..., "value": ...}. Raw data is
// hex encoded; non-finite floats are rendered as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	out := jsonValue{Type: v.typ.String()}
	switch v.typ {
	case TypeInteger:
		out.Value = v.i
	case TypeFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			out.Value = v.String()
		} else {
			out.Value = v.f
		}
	case TypeBoolean:
		out.Value = v.b
	case TypeString:
		out.Value = v.s
	case TypeRawData:
		out.Value = hex.EncodeToString(v.raw)
	}
	return json.Marshal(out)
}

type jsonProperty struct {
	Name  string `json:"name"`
	Value Value  `json:"value"`
}

// MarshalJSON renders p as {"name": ..., "value": {...}}.
func (p Property) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonProperty{Name: p.Name, Value: p.Value})
}

// MarshalIndent renders properties as an indented JSON array.
func MarshalIndent(props []Property) ([]byte, error) {
	if props == nil {
		props = []Property{}
	}
	return json.MarshalIndent(props, "", "  ")
}
