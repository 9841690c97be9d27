// Package object defines the runtime values manipulated by the compiler and
// the virtual machine.
package object

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Type describes the tag of a Value.
type Type uint8

const (
	NIL Type = iota
	BOOL
	NUMBER
)

// String returns the name of the type as shown in error messages.
func (t Type) String() string {
	switch t {
	case NIL:
		return "nil"
	case BOOL:
		return "bool"
	case NUMBER:
		return "number"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Value is a tagged union over nil, booleans, and 64-bit floats. Values are
// small and are always passed by value. Only the payload matching the tag is
// ever set, so the == operator implements structural equality.
type Value struct {
	typ Type
	b   bool
	n   float64
}

// Nil is the absence value. It is also the zero Value.
var Nil = Value{}

var (
	True  = Value{typ: BOOL, b: true}
	False = Value{typ: BOOL, b: false}
)

// NewBool returns True or False.
func NewBool(b bool) Value {
	if b {
		return True
	}
	return False
}

// NewNumber wraps a float64.
func NewNumber(n float64) Value {
	return Value{typ: NUMBER, n: n}
}

// Type returns the tag of the value.
func (v Value) Type() Type {
	return v.typ
}

func (v Value) IsNil() bool {
	return v.typ == NIL
}

func (v Value) IsBool() bool {
	return v.typ == BOOL
}

func (v Value) IsNumber() bool {
	return v.typ == NUMBER
}

// AsNumber returns the numeric payload. The second result is false when the
// value is not a number.
func (v Value) AsNumber() (float64, bool) {
	return v.n, v.typ == NUMBER
}

// AsBool returns the boolean payload. The second result is false when the
// value is not a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.typ == BOOL
}

// IsFalsy reports whether the value counts as false in a logical context.
// Only nil and false are falsy; every number, including zero, is truthy.
func (v Value) IsFalsy() bool {
	switch v.typ {
	case NIL:
		return true
	case BOOL:
		return !v.b
	default:
		return false
	}
}

// Equals compares tag and payload. Numbers follow IEEE 754 equality, so NaN
// is not equal to itself.
func (v Value) Equals(other Value) bool {
	return v == other
}

// String returns the external representation printed by the VM.
func (v Value) String() string {
	switch v.typ {
	case BOOL:
		return strconv.FormatBool(v.b)
	case NUMBER:
		return FormatNumber(v.n)
	default:
		return "nil"
	}
}

// Interface returns the Go equivalent of the value: nil, bool, or float64.
func (v Value) Interface() interface{} {
	switch v.typ {
	case BOOL:
		return v.b
	case NUMBER:
		return v.n
	default:
		return nil
	}
}

// MarshalJSON encodes nil as null, booleans and finite numbers natively, and
// non-finite numbers as their printed string.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.typ == NUMBER && (math.IsInf(v.n, 0) || math.IsNaN(v.n)) {
		return json.Marshal(FormatNumber(v.n))
	}
	return json.Marshal(v.Interface())
}

// FormatNumber renders n as the shortest decimal that round-trips, never
// using exponent notation. Whole numbers have no fractional part.
func FormatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
