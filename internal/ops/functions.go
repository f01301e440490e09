package ops

import (
	"math"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/dvorsky/jsonpath/internal/value"
)

// Function is a built-in callable usable from a filter or argument
// expression. Arity is -1 for variadic functions; every built-in listed
// here is fixed-arity, but the field exists so a caller can distinguish
// "checked at parse time" from "checked at call time" uniformly.
type Function struct {
	Name  string
	Arity int
	Call  func(args []value.Value) value.Value
}

// Functions indexes the built-in functions by name.
var Functions = map[string]Function{}

func register(f Function) {
	Functions[f.Name] = f
}

func init() {
	register(Function{Name: "abs", Arity: 1, Call: fnAbs})
	register(Function{Name: "ceil", Arity: 1, Call: fnCeil})
	register(Function{Name: "floor", Arity: 1, Call: fnFloor})
	register(Function{Name: "to_number", Arity: 1, Call: fnToNumber})
	register(Function{Name: "length", Arity: 1, Call: fnLength})
	register(Function{Name: "keys", Arity: 1, Call: fnKeys})
	register(Function{Name: "sum", Arity: 1, Call: fnSum})
	register(Function{Name: "avg", Arity: 1, Call: fnAvg})
	register(Function{Name: "prod", Arity: 1, Call: fnProd})
	register(Function{Name: "min", Arity: 1, Call: fnMin})
	register(Function{Name: "max", Arity: 1, Call: fnMax})
	register(Function{Name: "contains", Arity: 2, Call: fnContains})
	register(Function{Name: "starts_with", Arity: 2, Call: fnStartsWith})
	register(Function{Name: "ends_with", Arity: 2, Call: fnEndsWith})
	register(Function{Name: "tokenize", Arity: 2, Call: fnTokenize})
}

func fnAbs(args []value.Value) value.Value {
	v := args[0]
	if v.Kind() != value.Number {
		return value.NullValue
	}
	if r, ok := v.Decimal(); ok {
		return value.NewNumberFromRat(new(big.Rat).Abs(r))
	}
	f, ok := v.Double()
	if !ok {
		return value.NullValue
	}
	return value.NewNumberFromFloat(math.Abs(f))
}

func fnCeil(args []value.Value) value.Value  { return roundFn(args[0], math.Ceil) }
func fnFloor(args []value.Value) value.Value { return roundFn(args[0], math.Floor) }

func roundFn(v value.Value, f func(float64) float64) value.Value {
	if v.Kind() != value.Number {
		return value.NullValue
	}
	d, ok := v.Double()
	if !ok {
		return value.NullValue
	}
	return value.NewNumberFromFloat(f(d))
}

func fnToNumber(args []value.Value) value.Value {
	v := args[0]
	switch v.Kind() {
	case value.Number:
		return v
	case value.String:
		s, _ := v.StringValue()
		if r, ok := new(big.Rat).SetString(s); ok {
			return value.NewNumberFromRat(r)
		}
		return value.NullValue
	default:
		return value.NullValue
	}
}

func fnLength(args []value.Value) value.Value {
	v := args[0]
	switch v.Kind() {
	case value.Array, value.Object:
		n, _ := v.Len()
		return value.NewNumberFromFloat(float64(n))
	case value.String:
		s, _ := v.StringValue()
		return value.NewNumberFromFloat(float64(utf8.RuneCountInString(s)))
	default:
		return value.NullValue
	}
}

func fnKeys(args []value.Value) value.Value {
	v := args[0]
	if v.Kind() != value.Object {
		return value.NullValue
	}
	props, _ := v.Properties()
	names := make([]value.Value, len(props))
	for i, p := range props {
		names[i] = value.NewString(p.Name)
	}
	return value.NewArray(names)
}

func numericElements(v value.Value) ([]value.Value, bool) {
	if v.Kind() != value.Array {
		return nil, false
	}
	elems, _ := v.Elements()
	for _, e := range elems {
		if e.Kind() != value.Number {
			return nil, false
		}
	}
	return elems, true
}

func fnSum(args []value.Value) value.Value {
	elems, ok := numericElements(args[0])
	if !ok {
		return value.NullValue
	}
	return reduceNumbers(elems, new(big.Rat), func(acc *big.Rat, r *big.Rat) *big.Rat { return acc.Add(acc, r) },
		0, func(acc float64, f float64) float64 { return acc + f })
}

func fnProd(args []value.Value) value.Value {
	elems, ok := numericElements(args[0])
	if !ok {
		return value.NullValue
	}
	if len(elems) == 0 {
		return value.NullValue
	}
	return reduceNumbers(elems, big.NewRat(1, 1), func(acc *big.Rat, r *big.Rat) *big.Rat { return acc.Mul(acc, r) },
		1, func(acc float64, f float64) float64 { return acc * f })
}

func fnAvg(args []value.Value) value.Value {
	elems, ok := numericElements(args[0])
	if !ok || len(elems) == 0 {
		return value.NullValue
	}
	sum := fnSum(args)
	n := big.NewRat(int64(len(elems)), 1)
	if r, aok := sum.Decimal(); aok {
		return value.NewNumberFromRat(new(big.Rat).Quo(r, n))
	}
	f, _ := sum.Double()
	return value.NewNumberFromFloat(f / float64(len(elems)))
}

// reduceNumbers folds elems with the exact rational reducer when every
// element carries an exact decimal reading, falling back to the
// approximate double reducer otherwise.
func reduceNumbers(elems []value.Value, ratAcc *big.Rat, ratStep func(*big.Rat, *big.Rat) *big.Rat, floatSeed float64, floatStep func(float64, float64) float64) value.Value {
	allExact := true
	for _, e := range elems {
		if _, ok := e.Decimal(); !ok {
			allExact = false
			break
		}
	}

	if allExact {
		acc := ratAcc
		for _, e := range elems {
			r, _ := e.Decimal()
			acc = ratStep(acc, r)
		}
		return value.NewNumberFromRat(acc)
	}

	acc := floatSeed
	for _, e := range elems {
		f, ok := e.Double()
		if !ok {
			return value.NullValue
		}
		acc = floatStep(acc, f)
	}
	return value.NewNumberFromFloat(acc)
}

func fnMin(args []value.Value) value.Value { return extremum(args[0], -1) }
func fnMax(args []value.Value) value.Value { return extremum(args[0], 1) }

// extremum finds the element that wins under Compare(candidate,
// best)*want > 0, requiring every element share the same comparable
// kind (all numbers or all strings); anything else yields null.
func extremum(v value.Value, want int) value.Value {
	if v.Kind() != value.Array {
		return value.NullValue
	}
	elems, _ := v.Elements()
	if len(elems) == 0 {
		return value.NullValue
	}

	kind := elems[0].Kind()
	if kind != value.Number && kind != value.String {
		return value.NullValue
	}

	best := elems[0]
	for _, e := range elems[1:] {
		if e.Kind() != kind {
			return value.NullValue
		}
		cmp, ok := value.Compare(e, best)
		if !ok {
			return value.NullValue
		}
		if cmp*want > 0 {
			best = e
		}
	}
	return best
}

func fnContains(args []value.Value) value.Value {
	haystack, needle := args[0], args[1]
	switch haystack.Kind() {
	case value.Array:
		elems, _ := haystack.Elements()
		for _, e := range elems {
			if value.Equal(e, needle) {
				return value.TrueValue
			}
		}
		return value.FalseValue
	case value.String:
		if needle.Kind() != value.String {
			return value.NullValue
		}
		s, _ := haystack.StringValue()
		sub, _ := needle.StringValue()
		return value.NewBool(strings.Contains(s, sub))
	default:
		return value.NullValue
	}
}

func fnStartsWith(args []value.Value) value.Value { return stringPredicate(args, strings.HasPrefix) }
func fnEndsWith(args []value.Value) value.Value   { return stringPredicate(args, strings.HasSuffix) }

func stringPredicate(args []value.Value, f func(s, prefix string) bool) value.Value {
	a, b := args[0], args[1]
	if a.Kind() != value.String || b.Kind() != value.String {
		return value.NullValue
	}
	s, _ := a.StringValue()
	t, _ := b.StringValue()
	return value.NewBool(f(s, t))
}

func fnTokenize(args []value.Value) value.Value {
	s, pattern := args[0], args[1]
	if s.Kind() != value.String || pattern.Kind() != value.String {
		return value.NullValue
	}
	str, _ := s.StringValue()
	pat, _ := pattern.StringValue()
	re, err := CompileRegex(pat)
	if err != nil {
		return value.NullValue
	}
	parts := re.Split(str, -1)
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.NewString(p)
	}
	return value.NewArray(out)
}
