package selector

import (
	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/resources"
	"github.com/dvorsky/jsonpath/internal/value"
)

// Identifier looks up a named property (.name, ['name']). As a
// convenience, Name == "length" applied to an array or string yields
// its element/codepoint count instead of nothing, wherever the selector
// runs (query chain or filter expression), mirroring the built-in
// length() function.
type Identifier struct {
	base
	Name string
}

func NewIdentifier(name string) *Identifier {
	s := &Identifier{Name: name}
	s.base = newBase()
	return s
}

func (s *Identifier) Select(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value, sink Sink, depth int) error {
	switch current.Kind() {
	case value.Object:
		v, ok := current.Property(s.Name)
		if !ok {
			return nil
		}
		return s.emit(res, root, pathmodel.Name(lastPath, s.Name), v, sink, depth)
	case value.Array:
		if s.Name != "length" {
			return nil
		}
		n, _ := current.Len()
		return s.emit(res, root, pathmodel.Name(lastPath, s.Name), value.NewNumberFromFloat(float64(n)), sink, depth)
	case value.String:
		if s.Name != "length" {
			return nil
		}
		str, _ := current.StringValue()
		return s.emit(res, root, pathmodel.Name(lastPath, s.Name), value.NewNumberFromFloat(float64(len([]rune(str)))), sink, depth)
	default:
		return nil
	}
}

func (s *Identifier) TryEvaluate(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value) value.Value {
	return evaluate(s, res, root, lastPath, current)
}
