package selector

import (
	"sync"

	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/resources"
	"github.com/dvorsky/jsonpath/internal/value"
)

// Union runs each of Children in turn (insertion order guaranteed in
// Sequential mode; unspecified order, run concurrently, in Parallel
// mode). Children were built as independent chains and are repointed,
// at construction, to share Union's own tail box — so appending a
// selector after a Union extends every branch at once, with no back
// edges between branches.
type Union struct {
	base
	Children []Selector
}

// NewUnion assembles a Union over children, which must not yet be
// attached to any other chain.
func NewUnion(children []Selector) *Union {
	u := &Union{Children: children}
	u.base = newBase()
	shared := u.base.tail
	for _, c := range children {
		attachSharedTail(c, shared)
	}
	return u
}

func (s *Union) Select(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value, sink Sink, depth int) error {
	if res.Options.ExecutionMode != resources.Parallel {
		for _, c := range s.Children {
			if err := c.Select(res, root, lastPath, current, sink, depth); err != nil {
				return err
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, len(s.Children))
	for i, c := range s.Children {
		wg.Add(1)
		go func(i int, c Selector) {
			defer wg.Done()
			errs[i] = c.Select(res, root, lastPath, current, sink, depth)
		}(i, c)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Union) TryEvaluate(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value) value.Value {
	return evaluate(s, res, root, lastPath, current)
}
