package eval

import (
	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/resources"
	"github.com/dvorsky/jsonpath/internal/stack"
	"github.com/dvorsky/jsonpath/internal/value"
)

// Evaluate runs a postfix token sequence against (root, current) and
// returns the resulting value. lastPath is current's location, needed
// when the expression reaches a Parent selector. ok is false only when
// the token sequence is malformed (an operator or selector finds too few
// operands, a function's argument count does not match its arity, or the
// stack is empty at the end) — callers treat that as a falsy result
// rather than propagating an error. An operator or function that cannot
// be applied to its operands pushes null and evaluation continues, so
// such a failure does not by itself make the whole expression fail.
func Evaluate(tokens []Token, res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value) (value.Value, bool) {
	values := stack.New[value.Value]()
	var arguments []value.Value

	for _, tok := range tokens {
		switch tok.Kind {
		case TValue:
			values.Push(tok.Value)
		case TRoot:
			values.Push(root)
		case TCurrent:
			values.Push(current)
		case TSelector:
			v, ok := values.Pop()
			if !ok {
				return value.NullValue, false
			}
			values.Push(tok.Selector.TryEvaluate(res, root, lastPath, v))
		case TUnary:
			v, ok := values.Pop()
			if !ok {
				return value.NullValue, false
			}
			values.Push(tok.Unary.Apply(v))
		case TBinary:
			rhs, ok1 := values.Pop()
			lhs, ok2 := values.Pop()
			if !ok1 || !ok2 {
				return value.NullValue, false
			}
			values.Push(tok.Binary.Apply(lhs, rhs))
		case TArgument:
			v, ok := values.Pop()
			if !ok {
				return value.NullValue, false
			}
			arguments = append(arguments, v)
		case TFunction:
			if tok.Function.Arity >= 0 && tok.Function.Arity != len(arguments) {
				return value.NullValue, false
			}
			result := tok.Function.Call(arguments)
			arguments = nil
			values.Push(result)
		case TExpression:
			v, ok := Evaluate(tok.Expression, res, root, lastPath, current)
			if !ok {
				return value.NullValue, false
			}
			values.Push(v)
		}
	}

	top, ok := values.Pop()
	if !ok {
		return value.NullValue, false
	}
	return top, true
}

// Truthy evaluates tokens and reports whether the result is truthy,
// treating evaluation failure as falsy — the rule filter predicates use
// to decide whether to emit an element.
func Truthy(tokens []Token, res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value) bool {
	v, ok := Evaluate(tokens, res, root, lastPath, current)
	if !ok {
		return false
	}
	return value.Truthy(v)
}
