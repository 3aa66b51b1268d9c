package property

import (
	"bytes"
	"encoding/hex"
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/propstore/errors"
)

// Type tags the variant held by a Value.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeString
	TypeRawData
)

var typeNames = [...]string{
	TypeUnknown: "unknown",
	TypeInteger: "integer",
	TypeFloat:   "float",
	TypeBoolean: "boolean",
	TypeString:  "string",
	TypeRawData: "raw",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// Valid reports whether t is one of the declared variants.
func (t Type) Valid() bool {
	return t <= TypeRawData
}

// ParseType accepts the String() names plus the aliases int, bool, str and bytes.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "unknown":
		return TypeUnknown, nil
	case "integer", "int":
		return TypeInteger, nil
	case "float":
		return TypeFloat, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	case "string", "str":
		return TypeString, nil
	case "raw", "bytes":
		return TypeRawData, nil
	}
	return TypeUnknown, errors.InvalidArgument(errors.OpParse, s, "unknown property type")
}

// Value is a tagged union over the property variants. The zero Value is Unknown.
type Value struct {
	raw []byte
	s   string
	i   int64
	f   float64
	b   bool
	typ Type
}

func Integer(v int64) Value { return Value{typ: TypeInteger, i: v} }

func Float(v float64) Value { return Value{typ: TypeFloat, f: v} }

func Boolean(v bool) Value { return Value{typ: TypeBoolean, b: v} }

func String(v string) Value { return Value{typ: TypeString, s: v} }

// RawData wraps b without copying it. The store clones raw data on entry, so
// callers may reuse b once the store call returns.
func RawData(b []byte) Value { return Value{typ: TypeRawData, raw: b} }

func Unknown() Value { return Value{} }

// Type returns the variant tag.
func (v Value) Type() Type { return v.typ }

func (v Value) Int() (int64, bool) { return v.i, v.typ == TypeInteger }

func (v Value) Float() (float64, bool) { return v.f, v.typ == TypeFloat }

func (v Value) Bool() (bool, bool) { return v.b, v.typ == TypeBoolean }

func (v Value) Str() (string, bool) { return v.s, v.typ == TypeString }

// Bytes returns the raw data without copying.
func (v Value) Bytes() ([]byte, bool) { return v.raw, v.typ == TypeRawData }

// Len returns the explicit length of raw data or string values, 0 otherwise.
func (v Value) Len() int {
	switch v.typ {
	case TypeRawData:
		return len(v.raw)
	case TypeString:
		return len(v.s)
	}
	return 0
}

// Clone returns a deep copy; raw data gets its own backing array.
func (v Value) Clone() Value {
	if v.typ == TypeRawData && v.raw != nil {
		v.raw = bytes.Clone(v.raw)
	}
	return v
}

// Equal compares type and content. Floats compare by bit pattern so NaN
// equals itself.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeInteger:
		return v.i == o.i
	case TypeFloat:
		return math.Float64bits(v.f) == math.Float64bits(o.f)
	case TypeBoolean:
		return v.b == o.b
	case TypeString:
		return v.s == o.s
	case TypeRawData:
		return bytes.Equal(v.raw, o.raw)
	}
	return true
}

// String renders the value for humans. Raw data is hex encoded.
func (v Value) String() string {
	switch v.typ {
	case TypeInteger:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeBoolean:
		return strconv.FormatBool(v.b)
	case TypeString:
		return strconv.Quote(v.s)
	case TypeRawData:
		return "0x" + hex.EncodeToString(v.raw)
	}
	return "<unknown>"
}

// Parse converts text into a value of type t. Integers accept the 0x, 0o and
// 0b prefixes; raw data is hex with an optional 0x prefix.
func Parse(t Type, text string) (Value, error) {
	switch t {
	case TypeInteger:
		n, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return Value{}, errors.Wrap(errors.OpParse, errors.KindInvalidArgument, err, "parse integer")
		}
		return Integer(n), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, errors.Wrap(errors.OpParse, errors.KindInvalidArgument, err, "parse float")
		}
		return Float(f), nil
	case TypeBoolean:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Value{}, errors.Wrap(errors.OpParse, errors.KindInvalidArgument, err, "parse boolean")
		}
		return Boolean(b), nil
	case TypeString:
		return String(text), nil
	case TypeRawData:
		b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X"))
		if err != nil {
			return Value{}, errors.Wrap(errors.OpParse, errors.KindInvalidArgument, err, "parse raw data")
		}
		return RawData(b), nil
	case TypeUnknown:
		return Unknown(), nil
	}
	return Value{}, errors.New(errors.OpParse, errors.KindInvalidArgument).
		Detail("unsupported type %s", t).
		Value(t).
		Build()
}
