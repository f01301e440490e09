package selector

import (
	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/resources"
	"github.com/dvorsky/jsonpath/internal/value"
)

// RecursiveDescent (..) emits the current node, then every descendant,
// depth-first. Each instance tracks its own nesting depth independent
// of any enclosing RecursiveDescent, so chained forms like $..a..b each
// get the full MaxDepth budget rather than sharing one.
type RecursiveDescent struct {
	base
}

func NewRecursiveDescent() *RecursiveDescent {
	s := &RecursiveDescent{}
	s.base = newBase()
	return s
}

func (s *RecursiveDescent) Select(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value, sink Sink, _ int) error {
	return s.walk(res, root, lastPath, current, sink, 0)
}

func (s *RecursiveDescent) walk(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value, sink Sink, localDepth int) error {
	if localDepth > res.MaxDepth {
		return ErrMaxDepthExceeded
	}

	if err := s.emit(res, root, lastPath, current, sink, 0); err != nil {
		return err
	}

	switch current.Kind() {
	case value.Array:
		elems, _ := current.Elements()
		for i, v := range elems {
			if err := s.walk(res, root, pathmodel.Index(lastPath, i), v, sink, localDepth+1); err != nil {
				return err
			}
		}
	case value.Object:
		props, _ := current.Properties()
		for _, p := range props {
			if err := s.walk(res, root, pathmodel.Name(lastPath, p.Name), p.Value, sink, localDepth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *RecursiveDescent) TryEvaluate(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value) value.Value {
	return evaluate(s, res, root, lastPath, current)
}
