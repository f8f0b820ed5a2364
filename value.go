package jsonextract

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

// Value kinds. The set is closed.
const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "unknown"
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is a parsed JSON value. Objects keep their members in source order.
// The zero Value is null. Values are not modified after construction.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	str     string
	elems   []Value
	members []Member
}

// NullValue returns the JSON null.
func NullValue() Value { return Value{} }

// BoolValue returns a JSON boolean.
func BoolValue(b bool) Value { return Value{kind: Bool, boolean: b} }

// NumberValue returns a JSON number.
func NumberValue(f float64) Value { return Value{kind: Number, number: f} }

// StringValue returns a JSON string.
func StringValue(s string) Value { return Value{kind: String, str: s} }

// ArrayValue returns a JSON array holding elems in order.
func ArrayValue(elems ...Value) Value { return Value{kind: Array, elems: elems} }

// ObjectValue returns a JSON object holding members in order.
func ObjectValue(members ...Member) Value { return Value{kind: Object, members: members} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean held by v, or false for other kinds.
func (v Value) Bool() bool { return v.boolean }

// Float returns the number held by v, or 0 for other kinds.
func (v Value) Float() float64 { return v.number }

// Elements returns the elements of an array.
func (v Value) Elements() []Value { return v.elems }

// Members returns the members of an object in source order.
func (v Value) Members() []Member { return v.members }

// Lookup returns the value of the object member named key.
func (v Value) Lookup(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether v is an object owning a member named key.
// A member whose value is null still counts.
func (v Value) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// String renders v the way a JavaScript template literal would: strings
// verbatim, numbers in shortest round-trip form, arrays as their
// comma-joined elements and objects as "[object Object]".
func (v Value) String() string {
	switch v.kind {
	case Bool:
		return strconv.FormatBool(v.boolean)
	case Number:
		return FormatNumber(v.number)
	case String:
		return v.str
	case Array:
		parts := make([]string, len(v.elems))
		for i, e := range v.elems {
			// Array joins render null as the empty string.
			if e.kind != Null {
				parts[i] = e.String()
			}
		}
		return strings.Join(parts, ",")
	case Object:
		return "[object Object]"
	}
	return "null"
}

// MarshalJSON encodes v with object members in source order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case Bool:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case Number:
		if math.IsInf(v.number, 0) || math.IsNaN(v.number) {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(FormatNumber(v.number))
	case String:
		b, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case Array:
		buf.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
	return nil
}

// FormatNumber renders f like JavaScript's String(f): integral values carry
// no fraction, and magnitudes of 1e21 and above or below 1e-6 switch to
// exponent notation.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
