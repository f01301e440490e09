package value

import (
	"fmt"
	"math/big"
	"strconv"
)

// node is the single concrete Value implementation used for both
// document-decoded values and synthetic values produced by operators
// and built-in functions.
type node struct {
	kind Kind

	str         string // String content, or the original literal text of a Number
	arr         []Value
	props       []Property
	numFloat    float64 // set together with numHasFloat for synthetic numbers with no literal text
	numHasFloat bool
}

// NullValue is the JSON null value.
var NullValue Value = &node{kind: Null}

// TrueValue is the JSON boolean true value.
var TrueValue Value = &node{kind: True}

// FalseValue is the JSON boolean false value.
var FalseValue Value = &node{kind: False}

// UndefinedValue is produced when a navigational step finds nothing.
var UndefinedValue Value = &node{kind: Undefined}

// NewString builds a synthetic String value.
func NewString(s string) Value {
	return &node{kind: String, str: s}
}

// NewBool builds a synthetic True/False value.
func NewBool(b bool) Value {
	if b {
		return TrueValue
	}
	return FalseValue
}

// NewNumberLiteral builds a Number value from its JSON source text
// (used by the parser for numeric literals and by decode for document
// numbers), preserving the exact decimal reading where possible.
func NewNumberLiteral(literal string) Value {
	return &node{kind: Number, str: literal}
}

// NewNumberFromFloat builds a synthetic Number value from a computed
// double; its Decimal reading is the double's exact binary value, and a
// non-finite double has none.
func NewNumberFromFloat(f float64) Value {
	return &node{kind: Number, numFloat: f, numHasFloat: true}
}

// NewNumberFromRat builds a synthetic Number value from an exact
// rational, keeping both the exact and approximate readings.
func NewNumberFromRat(r *big.Rat) Value {
	f, _ := r.Float64()
	return &node{kind: Number, str: r.RatString(), numFloat: f, numHasFloat: true}
}

// NewArray builds a synthetic Array value.
func NewArray(elems []Value) Value {
	return &node{kind: Array, arr: elems}
}

// NewObject builds a synthetic Object value from ordered properties.
func NewObject(props []Property) Value {
	return &node{kind: Object, props: props}
}

func (n *node) Kind() Kind { return n.kind }

func (n *node) StringValue() (string, error) {
	if n.kind != String {
		return "", fmt.Errorf("%w: StringValue on %s", ErrWrongKind, n.kind)
	}
	return n.str, nil
}

func (n *node) Decimal() (*big.Rat, bool) {
	if n.kind != Number {
		return nil, false
	}
	if n.str == "" {
		if n.numHasFloat {
			r := new(big.Rat).SetFloat64(n.numFloat)
			return r, r != nil
		}
		return nil, false
	}
	r, ok := new(big.Rat).SetString(n.str)
	if !ok {
		return nil, false
	}
	return r, true
}

func (n *node) Double() (float64, bool) {
	if n.kind != Number {
		return 0, false
	}
	if n.str == "" {
		return n.numFloat, n.numHasFloat
	}
	f, err := strconv.ParseFloat(n.str, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (n *node) Len() (int, error) {
	switch n.kind {
	case Array:
		return len(n.arr), nil
	case Object:
		return len(n.props), nil
	default:
		return 0, fmt.Errorf("%w: Len on %s", ErrWrongKind, n.kind)
	}
}

func (n *node) Index(i int) (Value, error) {
	if n.kind != Array {
		return nil, fmt.Errorf("%w: Index on %s", ErrWrongKind, n.kind)
	}
	if i < 0 || i >= len(n.arr) {
		return nil, fmt.Errorf("%w: index %d out of range", ErrWrongKind, i)
	}
	return n.arr[i], nil
}

func (n *node) Property(name string) (Value, bool) {
	if n.kind != Object {
		return nil, false
	}
	for _, p := range n.props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

func (n *node) Elements() ([]Value, error) {
	if n.kind != Array {
		return nil, fmt.Errorf("%w: Elements on %s", ErrWrongKind, n.kind)
	}
	return n.arr, nil
}

func (n *node) Properties() ([]Property, error) {
	if n.kind != Object {
		return nil, fmt.Errorf("%w: Properties on %s", ErrWrongKind, n.kind)
	}
	return n.props, nil
}
