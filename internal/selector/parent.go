package selector

import (
	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/resources"
	"github.com/dvorsky/jsonpath/internal/value"
)

// Parent walks back Depth ancestors on lastPath (the caret operator,
// repeated for depth). Walking past the root produces nothing.
type Parent struct {
	base
	Depth int
}

func NewParent(depth int) *Parent {
	p := &Parent{Depth: depth}
	p.base = newBase()
	return p
}

func (s *Parent) Select(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, _ value.Value, sink Sink, depth int) error {
	ancestor := lastPath.Ancestor(s.Depth)
	if ancestor == nil {
		return nil
	}
	v, ok := valueAt(root, ancestor)
	if !ok {
		return nil
	}
	return s.emit(res, root, ancestor, v, sink, depth)
}

func (s *Parent) TryEvaluate(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value) value.Value {
	return evaluate(s, res, root, lastPath, current)
}
