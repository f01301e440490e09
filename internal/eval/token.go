// Package eval implements the postfix expression runtime that filter
// predicates and function-call arguments compile down to.
package eval

import (
	"github.com/dvorsky/jsonpath/internal/ops"
	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/resources"
	"github.com/dvorsky/jsonpath/internal/value"
)

// Selectable is the subset of the selector tree's contract the
// expression runtime needs. It is declared here, rather than imported
// from the selector package, so that package can depend on eval (to
// run Filter predicates) without creating an import cycle. lastPath is
// the location of current, needed by Parent selectors reached through
// a subquery such as `^.foo`.
type Selectable interface {
	TryEvaluate(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value) value.Value
}

// TokenKind tags the variant a Token holds.
type TokenKind uint8

const (
	TSelector TokenKind = iota
	TRoot
	TCurrent
	TUnary
	TBinary
	TFunction
	TExpression
	TValue
	TArgument
)

// Token is one element of the postfix sequence the parser assembles
// for a filter or argument expression.
type Token struct {
	Kind       TokenKind
	Selector   Selectable
	Unary      ops.UnaryOp
	Binary     ops.BinaryOp
	Function   ops.Function
	Expression []Token
	Value      value.Value
}

func Selector(s Selectable) Token   { return Token{Kind: TSelector, Selector: s} }
func RootToken() Token              { return Token{Kind: TRoot} }
func CurrentToken() Token           { return Token{Kind: TCurrent} }
func UnaryToken(op ops.UnaryOp) Token   { return Token{Kind: TUnary, Unary: op} }
func BinaryToken(op ops.BinaryOp) Token { return Token{Kind: TBinary, Binary: op} }
func FunctionToken(fn ops.Function) Token { return Token{Kind: TFunction, Function: fn} }
func ExpressionToken(tokens []Token) Token { return Token{Kind: TExpression, Expression: tokens} }
func ValueToken(v value.Value) Token   { return Token{Kind: TValue, Value: v} }
func ArgumentToken() Token             { return Token{Kind: TArgument} }
