// Package ops implements the built-in operator and function registry:
// the fixed set of unary, binary, and n-ary operations the expression
// runtime dispatches to when it pops a UnaryOp, BinaryOp, or Function
// token off its stack.
package ops

import (
	"math/big"
	"regexp"

	"github.com/dvorsky/jsonpath/internal/value"
)

// Precedence levels, low to high, which the parser's precedence-climbing
// loop consults while assembling a filter or argument expression.
const (
	PrecOr = 1 + iota
	PrecAnd
	PrecEquality
	PrecRelational
	PrecAdditive
	PrecMultiplicative
	PrecRegex
	PrecUnary
)

// UnaryOp is a prefix operator: logical NOT or numeric negation.
type UnaryOp struct {
	Symbol        string
	Precedence    int
	RightAssoc    bool
	Apply         func(v value.Value) value.Value
}

// BinaryOp is an infix operator.
type BinaryOp struct {
	Symbol     string
	Precedence int
	RightAssoc bool
	Apply      func(lhs, rhs value.Value) value.Value
}

// Not is the "!" operator: boolean complement under the truthiness rule.
var Not = UnaryOp{
	Symbol:     "!",
	Precedence: PrecUnary,
	RightAssoc: true,
	Apply: func(v value.Value) value.Value {
		return value.NewBool(!value.Truthy(v))
	},
}

// Negate is unary "-": numeric negation, null on a non-number operand.
var Negate = UnaryOp{
	Symbol:     "-",
	Precedence: PrecUnary,
	RightAssoc: true,
	Apply: func(v value.Value) value.Value {
		if v.Kind() != value.Number {
			return value.NullValue
		}
		if r, ok := v.Decimal(); ok {
			return value.NewNumberFromRat(new(big.Rat).Neg(r))
		}
		f, ok := v.Double()
		if !ok {
			return value.NullValue
		}
		return value.NewNumberFromFloat(-f)
	},
}

// UnaryOps indexes the unary operators by their surface symbol.
var UnaryOps = map[string]UnaryOp{
	"!": Not,
	"-": Negate,
}

// boolOp builds a logical operator that yields one of its operands
// unchanged: lhs when returnLHS(truthiness of lhs) holds, else rhs.
func boolOp(symbol string, returnLHS func(lhsTruthy bool) bool) BinaryOp {
	return BinaryOp{
		Symbol:     symbol,
		Precedence: precedenceFor(symbol),
		Apply: func(lhs, rhs value.Value) value.Value {
			if returnLHS(value.Truthy(lhs)) {
				return lhs
			}
			return rhs
		},
	}
}

func precedenceFor(symbol string) int {
	switch symbol {
	case "||":
		return PrecOr
	case "&&":
		return PrecAnd
	case "==", "!=":
		return PrecEquality
	case "<", "<=", ">", ">=":
		return PrecRelational
	case "+", "-":
		return PrecAdditive
	case "*", "/", "%":
		return PrecMultiplicative
	case "=~":
		return PrecRegex
	default:
		return 0
	}
}

func compareOp(symbol string, ok func(cmp int) bool) BinaryOp {
	return BinaryOp{
		Symbol:     symbol,
		Precedence: precedenceFor(symbol),
		Apply: func(lhs, rhs value.Value) value.Value {
			cmp, comparable := value.Compare(lhs, rhs)
			if !comparable {
				return value.NullValue
			}
			return value.NewBool(ok(cmp))
		},
	}
}

func arithOp(symbol string, applyRat func(a, b *big.Rat) (*big.Rat, bool), applyFloat func(a, b float64) (float64, bool)) BinaryOp {
	return BinaryOp{
		Symbol:     symbol,
		Precedence: precedenceFor(symbol),
		Apply: func(lhs, rhs value.Value) value.Value {
			if lhs.Kind() != value.Number || rhs.Kind() != value.Number {
				return value.NullValue
			}
			if ar, aok := lhs.Decimal(); aok && applyRat != nil {
				if br, bok := rhs.Decimal(); bok {
					if r, ok := applyRat(ar, br); ok {
						return value.NewNumberFromRat(r)
					}
					return value.NullValue
				}
			}
			af, aok := lhs.Double()
			bf, bok := rhs.Double()
			if !aok || !bok {
				return value.NullValue
			}
			f, ok := applyFloat(af, bf)
			if !ok {
				return value.NullValue
			}
			return value.NewNumberFromFloat(f)
		},
	}
}

var (
	Or  = boolOp("||", func(l bool) bool { return l })
	And = boolOp("&&", func(l bool) bool { return !l })

	Eq = BinaryOp{Symbol: "==", Precedence: PrecEquality, Apply: func(lhs, rhs value.Value) value.Value {
		return value.NewBool(value.Equal(lhs, rhs))
	}}
	Ne = BinaryOp{Symbol: "!=", Precedence: PrecEquality, Apply: func(lhs, rhs value.Value) value.Value {
		return value.NewBool(!value.Equal(lhs, rhs))
	}}

	Lt = compareOp("<", func(c int) bool { return c < 0 })
	Le = compareOp("<=", func(c int) bool { return c <= 0 })
	Gt = compareOp(">", func(c int) bool { return c > 0 })
	Ge = compareOp(">=", func(c int) bool { return c >= 0 })

	Add = arithOp("+",
		func(a, b *big.Rat) (*big.Rat, bool) { return new(big.Rat).Add(a, b), true },
		func(a, b float64) (float64, bool) { return a + b, true })
	Sub = arithOp("-",
		func(a, b *big.Rat) (*big.Rat, bool) { return new(big.Rat).Sub(a, b), true },
		func(a, b float64) (float64, bool) { return a - b, true })
	Mul = arithOp("*",
		func(a, b *big.Rat) (*big.Rat, bool) { return new(big.Rat).Mul(a, b), true },
		func(a, b float64) (float64, bool) { return a * b, true })
	Div = arithOp("/",
		func(a, b *big.Rat) (*big.Rat, bool) {
			if b.Sign() == 0 {
				return nil, false
			}
			return new(big.Rat).Quo(a, b), true
		},
		func(a, b float64) (float64, bool) {
			if b == 0 {
				return 0, false
			}
			return a / b, true
		})
	Mod = arithOp("%", nil, floatMod)

	Regex = BinaryOp{Symbol: "=~", Precedence: PrecRegex, Apply: applyRegexMatch}
)

func floatMod(a, b float64) (float64, bool) {
	if b == 0 {
		return 0, false
	}
	// big.Rat has no modulus; the "%" operator always evaluates through
	// the double path even when both operands carry an exact decimal.
	quotient := float64(int64(a / b))
	return a - quotient*b, true
}

// BinaryOps indexes the binary operators by their surface symbol, in
// increasing precedence order for documentation purposes; lookups are
// by symbol regardless of order.
var BinaryOps = map[string]BinaryOp{
	"||": Or, "&&": And,
	"==": Eq, "!=": Ne,
	"<": Lt, "<=": Le, ">": Gt, ">=": Ge,
	"+": Add, "-": Sub, "*": Mul, "%": Mod, "/": Div,
	"=~": Regex,
}

// BuildRegexPattern folds a JSONPath regex literal's case-insensitive
// flag into a Go regexp inline-flag prefix, so the resulting pattern
// string alone is enough to reproduce the literal's matching behavior
// wherever it ends up (the =~ operator, or the tokenize() function).
func BuildRegexPattern(pattern string, caseInsensitive bool) string {
	if caseInsensitive {
		return "(?i)" + pattern
	}
	return pattern
}

// CompileRegex compiles a pattern built by BuildRegexPattern.
func CompileRegex(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(pattern)
}

func applyRegexMatch(lhs, rhs value.Value) value.Value {
	if lhs.Kind() != value.String || rhs.Kind() != value.String {
		return value.FalseValue
	}
	s, _ := lhs.StringValue()
	pattern, _ := rhs.StringValue()
	re, err := regexp.Compile(pattern)
	if err != nil {
		return value.FalseValue
	}
	return value.NewBool(re.MatchString(s))
}
