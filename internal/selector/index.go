package selector

import (
	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/resources"
	"github.com/dvorsky/jsonpath/internal/value"
)

// Index selects a single array element by position, supporting
// negative indices counted from the end.
type Index struct {
	base
	I int
}

func NewIndex(i int) *Index {
	s := &Index{I: i}
	s.base = newBase()
	return s
}

func (s *Index) Select(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value, sink Sink, depth int) error {
	if current.Kind() != value.Array {
		return nil
	}
	n, _ := current.Len()

	idx := s.I
	if idx < 0 || idx >= n {
		idx = n + s.I
	}
	if idx < 0 || idx >= n {
		return nil
	}

	v, err := current.Index(idx)
	if err != nil {
		return nil
	}
	return s.emit(res, root, pathmodel.Index(lastPath, idx), v, sink, depth)
}

func (s *Index) TryEvaluate(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value) value.Value {
	return evaluate(s, res, root, lastPath, current)
}
