// Package selector implements the tagged sum of selector-tree node
// variants the parser assembles: Root, Current, Parent, Identifier,
// Index, Slice, Wildcard, RecursiveDescent, Filter, and Union. A parsed
// query is a chain of these, threaded together by tail linkage.
package selector

import (
	"github.com/dvorsky/jsonpath/internal/eval"
	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/resources"
	"github.com/dvorsky/jsonpath/internal/value"
)

// Sink receives one matched (path, value) pair. path is always
// populated: building it is a handful of pointer-linked allocations,
// cheap enough that gating it behind resources.Resources.HasPath() (used
// by the driver to decide whether rendering it to a string is worth
// doing) isn't worth the complexity of threading a skip flag through
// every selector.
type Sink func(path *pathmodel.Node, v value.Value)

// Selector is the interface every node of a parsed query satisfies.
// Select walks the chain starting at the receiver, emitting matches to
// sink; TryEvaluate collapses the chain's output to a single value for
// use inside a filter or argument expression, satisfying eval.Selectable.
type Selector interface {
	Select(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value, sink Sink, depth int) error
	TryEvaluate(res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value) value.Value

	// Tail returns the selector this one delegates to once it has
	// computed its own next (path, value), or nil at the end of a chain.
	Tail() Selector

	linkNext(next Selector)
	tailBox() *tailSlot
	useTailBox(box *tailSlot)
}

var _ eval.Selectable = Selector(nil)

// tailSlot is shared by pointer among a Union's branches so that
// appending after the Union extends every branch at once, without back
// edges between the branches themselves.
type tailSlot struct {
	sel Selector
}

// base is embedded by every concrete selector to provide tail linkage.
type base struct {
	tail *tailSlot
}

func newBase() base {
	return base{tail: &tailSlot{}}
}

func (b *base) Tail() Selector             { return b.tail.sel }
func (b *base) linkNext(next Selector)     { b.tail.sel = next }
func (b *base) tailBox() *tailSlot         { return b.tail }
func (b *base) useTailBox(box *tailSlot)   { b.tail = box }

// emit forwards (path, v) to the tail if one is linked, or to sink if
// this is the end of the chain.
func (b *base) emit(res *resources.Resources, root value.Value, path *pathmodel.Node, v value.Value, sink Sink, depth int) error {
	if tail := b.Tail(); tail != nil {
		return tail.Select(res, root, path, v, sink, depth)
	}
	sink(path, v)
	return nil
}

// AppendSelector links next onto the end of chain's tail. A nil chain
// simply becomes next. Appending after a Union extends every branch at
// once, since branches share their tail box with the Union itself.
func AppendSelector(chain, next Selector) Selector {
	if chain == nil {
		return next
	}
	cur := chain
	for cur.Tail() != nil {
		cur = cur.Tail()
	}
	cur.linkNext(next)
	return chain
}

// attachSharedTail repoints the tail-most link of head's chain to use
// shared's box in place of its own, so a later append to shared is
// visible from head without walking back into it.
func attachSharedTail(head Selector, shared *tailSlot) {
	cur := head
	for cur.Tail() != nil {
		cur = cur.Tail()
	}
	cur.useTailBox(shared)
}

// evaluate runs s (and its tail) collecting every emitted value,
// collapsing the result the way TryEvaluate is specified to: zero
// matches is Undefined, one match is that value, more than one is
// wrapped in a synthetic array.
func evaluate(s Selector, res *resources.Resources, root value.Value, lastPath *pathmodel.Node, current value.Value) value.Value {
	var results []value.Value
	err := s.Select(res, root, lastPath, current, func(_ *pathmodel.Node, v value.Value) {
		results = append(results, v)
	}, 0)
	if err != nil {
		return value.NullValue
	}
	switch len(results) {
	case 0:
		return value.UndefinedValue
	case 1:
		return results[0]
	default:
		return value.NewArray(results)
	}
}
