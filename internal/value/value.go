// Package value provides the uniform view over JSON-shaped data that
// the rest of the engine walks. It abstracts over the origin of a
// value — decoded JSON or a synthetic value manufactured by an
// operator or built-in function — behind a single interface.
package value

import (
	"errors"
	"math/big"
)

// Kind identifies the shape of a Value.
type Kind uint8

const (
	Null Kind = iota
	True
	False
	Number
	String
	Array
	Object
	Undefined
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case True:
		return "true"
	case False:
		return "false"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	case Undefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// ErrWrongKind is returned when an operation is invoked against a Value
// whose Kind does not support it.
var ErrWrongKind = errors.New("value: operation invalid for kind")

// Property is a name/value pair produced while iterating an object, in
// the order the underlying source presented them.
type Property struct {
	Name  string
	Value Value
}

// Value is the uniform interface every JSON-shaped value in the engine
// satisfies, whether it was decoded from the host document or
// manufactured by a built-in function or operator.
type Value interface {
	Kind() Kind

	// StringValue returns the string content of a String value.
	StringValue() (string, error)

	// Decimal returns the exact decimal representation of a Number
	// value. It fails (ok=false) for non-Number values and for numbers
	// that have no exact rational reading (e.g. a non-finite computed
	// double); callers fall back to Double in that case.
	Decimal() (*big.Rat, bool)

	// Double returns the closest binary floating point approximation
	// of a Number value.
	Double() (float64, bool)

	// Len returns the element count of an Array or property count of
	// an Object.
	Len() (int, error)

	// Index returns the element at i for an Array value.
	Index(i int) (Value, error)

	// Property returns the value bound to name for an Object value.
	// ok is false when the property is absent.
	Property(name string) (Value, bool)

	// Elements returns the elements of an Array value, in order.
	Elements() ([]Value, error)

	// Properties returns the name/value pairs of an Object value, in
	// the order the source presented them.
	Properties() ([]Property, error)
}
