package selector

import (
	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/value"
)

// valueAt re-walks root along path's steps, returning the value found
// there. Used by Parent to rebuild the ancestor's value, since paths
// are recorded as locations rather than as value references.
func valueAt(root value.Value, path *pathmodel.Node) (value.Value, bool) {
	loc := pathmodel.Materialize(path)
	cur := root
	for i := 0; i < loc.Len(); i++ {
		step := loc.Step(i)
		var next value.Value
		var err error
		if step.IsIndex() {
			next, err = cur.Index(step.StepIndex())
		} else {
			var ok bool
			next, ok = cur.Property(step.StepName())
			if !ok {
				return nil, false
			}
		}
		if err != nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
