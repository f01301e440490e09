package selector

import (
	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/resources"
	"github.com/dvorsky/jsonpath/internal/value"
)

// Slice selects a run of array elements ([start:stop:step]). Start and
// Stop are nil when omitted from the query text. Step must be nonzero;
// the parser rejects a literal step of 0 before a Slice is ever built.
type Slice struct {
	base
	Start *int
	Stop  *int
	Step  int
}

func NewSlice(start, stop *int, step int) *Slice {
	s := &Slice{Start: start, Stop: stop, Step: step}
	s.base = newBase()
	return s
}

func normalizeSliceIndex(i, n int) int {
	if i >= 0 {
		return i
	}
	return n + i
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// bounds computes the iteration bounds for a slice over an array of
// length n: indices in [lower, upper) for a positive step, and in
// (lower, upper], walked downward from upper, for a negative step,
// following the ascending/descending clamp rules used by JSONPath's
// slice selector.
func (s *Slice) bounds(n int) (lower, upper int) {
	if s.Step >= 0 {
		lower = 0
		if s.Start != nil {
			lower = clamp(normalizeSliceIndex(*s.Start, n), 0, n)
		}
		upper = n
		if s.Stop != nil {
			upper = clamp(normalizeSliceIndex(*s.Stop, n), 0, n)
		}
		return lower, upper
	}

	upper = n - 1
	if s.Start != nil {
		upper = clamp(normalizeSliceIndex(*s.Start, n), -1, n-1)
	}
	lower = -1
	if s.Stop != nil {
		lower = clamp(normalizeSliceIndex(*s.Stop, n), -1, n-1)
	}
	return lower, upper
}

func (s *Slice) Select(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value, sink Sink, depth int) error {
	if current.Kind() != value.Array || s.Step == 0 {
		return nil
	}
	n, _ := current.Len()
	lower, upper := s.bounds(n)

	if s.Step > 0 {
		for i := lower; i < upper; i += s.Step {
			v, err := current.Index(i)
			if err != nil {
				continue
			}
			if err := s.emit(res, root, pathmodel.Index(lastPath, i), v, sink, depth); err != nil {
				return err
			}
		}
		return nil
	}

	for i := upper; i > lower; i += s.Step {
		v, err := current.Index(i)
		if err != nil {
			continue
		}
		if err := s.emit(res, root, pathmodel.Index(lastPath, i), v, sink, depth); err != nil {
			return err
		}
	}
	return nil
}

func (s *Slice) TryEvaluate(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value) value.Value {
	return evaluate(s, res, root, lastPath, current)
}
