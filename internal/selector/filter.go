package selector

import (
	"github.com/dvorsky/jsonpath/internal/eval"
	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/resources"
	"github.com/dvorsky/jsonpath/internal/value"
)

// Filter emits the array elements or object property values for which
// Expr evaluates truthy, with current bound to each candidate in turn.
// Filtering a scalar yields nothing.
type Filter struct {
	base
	Expr []eval.Token
}

func NewFilter(expr []eval.Token) *Filter {
	s := &Filter{Expr: expr}
	s.base = newBase()
	return s
}

func (s *Filter) Select(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value, sink Sink, depth int) error {
	switch current.Kind() {
	case value.Array:
		elems, _ := current.Elements()
		for i, v := range elems {
			path := pathmodel.Index(lastPath, i)
			if !eval.Truthy(s.Expr, res, root, path, v) {
				continue
			}
			if err := s.emit(res, root, path, v, sink, depth); err != nil {
				return err
			}
		}
	case value.Object:
		props, _ := current.Properties()
		for _, p := range props {
			path := pathmodel.Name(lastPath, p.Name)
			if !eval.Truthy(s.Expr, res, root, path, p.Value) {
				continue
			}
			if err := s.emit(res, root, path, p.Value, sink, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Filter) TryEvaluate(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value) value.Value {
	return evaluate(s, res, root, lastPath, current)
}
