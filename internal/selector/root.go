package selector

import (
	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/resources"
	"github.com/dvorsky/jsonpath/internal/value"
)

// Root forwards the document root, ignoring current. id identifies
// this instance for TryEvaluate's memoization: a query that references
// $ more than once (typically inside a filter) evaluates the sub-chain
// hanging off it only once per top-level query.
type Root struct {
	base
	id int
}

// NewRoot builds a Root selector with the given memoization id. id is
// assigned by the parser, one per distinct $ occurrence in a query.
func NewRoot(id int) *Root {
	r := &Root{id: id}
	r.base = newBase()
	return r
}

func (s *Root) Select(res *resources.Resources, root value.Value, _ *pathmodel.Node, _ value.Value, sink Sink, depth int) error {
	return s.emit(res, root, pathmodel.Root, root, sink, depth)
}

func (s *Root) TryEvaluate(res *resources.Resources, root value.Value, _ *pathmodel.Node, _ value.Value) value.Value {
	if v, ok := res.Memoized(s.id); ok {
		return v
	}
	v := evaluate(s, res, root, pathmodel.Root, root)
	res.Memoize(s.id, v)
	return v
}
