package selector

import (
	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/resources"
	"github.com/dvorsky/jsonpath/internal/value"
)

// Current forwards current unchanged. It anchors a filter or subquery
// expression to the element under evaluation.
type Current struct {
	base
}

func NewCurrent() *Current {
	c := &Current{}
	c.base = newBase()
	return c
}

func (s *Current) Select(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value, sink Sink, depth int) error {
	return s.emit(res, root, lastPath, current, sink, depth)
}

func (s *Current) TryEvaluate(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value) value.Value {
	return evaluate(s, res, root, lastPath, current)
}
