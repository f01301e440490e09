package pathmodel

import (
	"strconv"
	"strings"
)

// Location is a materialized sequence of steps from the document root
// to a matched node, in root-to-leaf order.
type Location struct {
	steps []Node
}

// Materialize walks n back to the root and returns the steps in
// root-to-leaf order.
func Materialize(n *Node) Location {
	if n.IsRoot() {
		return Location{}
	}

	var reversed []Node
	for cur := n; !cur.IsRoot(); cur = cur.parent {
		reversed = append(reversed, *cur)
	}

	steps := make([]Node, len(reversed))
	for i, s := range reversed {
		steps[len(reversed)-1-i] = s
	}
	return Location{steps: steps}
}

// Len returns the number of steps in the location.
func (l Location) Len() int {
	return len(l.steps)
}

// Step returns the i-th step, root-to-leaf.
func (l Location) Step(i int) Node {
	return l.steps[i]
}

// Equal reports whether two locations describe the same sequence of steps.
func (l Location) Equal(other Location) bool {
	if len(l.steps) != len(other.steps) {
		return false
	}
	for i := range l.steps {
		a, b := l.steps[i], other.steps[i]
		if a.isIndex != b.isIndex {
			return false
		}
		if a.isIndex {
			if a.index != b.index {
				return false
			}
		} else if a.name != b.name {
			return false
		}
	}
	return true
}

// Compare orders two locations lexicographically over their steps: two
// name steps compare by ordinal string order, two index steps compare
// numerically, and a name step always sorts before an index step at the
// same position (an arbitrary but fixed and documented convention — the
// source spec leaves this open, see DESIGN.md).
func (l Location) Compare(other Location) int {
	n := min(len(l.steps), len(other.steps))
	for i := 0; i < n; i++ {
		if c := compareStep(l.steps[i], other.steps[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(l.steps) < len(other.steps):
		return -1
	case len(l.steps) > len(other.steps):
		return 1
	default:
		return 0
	}
}

func compareStep(a, b Node) int {
	if a.isIndex != b.isIndex {
		if !a.isIndex {
			return -1
		}
		return 1
	}
	if a.isIndex {
		switch {
		case a.index < b.index:
			return -1
		case a.index > b.index:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.name, b.name)
}

// String renders the canonical normalized-path form, e.g.
// $['key1']['key2'][3], using single quotes and ordinal escaping of
// embedded single quotes and backslashes.
func (l Location) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, s := range l.steps {
		if s.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
			continue
		}
		b.WriteString("['")
		escapeInto(&b, s.name)
		b.WriteString("']")
	}
	return b.String()
}

func escapeInto(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		default:
			b.WriteRune(r)
		}
	}
}
