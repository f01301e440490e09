package selector

import (
	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/resources"
	"github.com/dvorsky/jsonpath/internal/value"
)

// Wildcard emits every array element in index order, or every object
// property in the source's iteration order.
type Wildcard struct {
	base
}

func NewWildcard() *Wildcard {
	s := &Wildcard{}
	s.base = newBase()
	return s
}

func (s *Wildcard) Select(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value, sink Sink, depth int) error {
	switch current.Kind() {
	case value.Array:
		elems, _ := current.Elements()
		for i, v := range elems {
			if err := s.emit(res, root, pathmodel.Index(lastPath, i), v, sink, depth); err != nil {
				return err
			}
		}
	case value.Object:
		props, _ := current.Properties()
		for _, p := range props {
			if err := s.emit(res, root, pathmodel.Name(lastPath, p.Name), p.Value, sink, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Wildcard) TryEvaluate(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value) value.Value {
	return evaluate(s, res, root, lastPath, current)
}
