// Package jsonpath compiles and runs JSONPath queries against
// document trees produced by internal/value.Decode. Parse once,
// then run the resulting Path against as many documents as needed:
//
//	path, err := jsonpath.Parse("$.store.book[?@.price < 10].title")
//	if err != nil {
//		var perr *jsonpath.ParseError
//		if errors.As(err, &perr) {
//			// perr.Line, perr.Column, perr.Message
//		}
//	}
//	values, err := path.SelectValues(doc, jsonpath.Options{})
package jsonpath

import (
	"io"
	"sync"

	"github.com/dvorsky/jsonpath/internal/parser"
	"github.com/dvorsky/jsonpath/internal/pathmodel"
	"github.com/dvorsky/jsonpath/internal/resources"
	"github.com/dvorsky/jsonpath/internal/selector"
	"github.com/dvorsky/jsonpath/internal/value"
)

// Value is a decoded JSON document node, or a value manufactured by a
// filter expression. It is the type every Path method accepts and
// returns.
type Value = value.Value

// Decode reads a single JSON document from r, preserving object
// property order for callers that render normalized paths or re-emit
// matched documents.
func Decode(r io.Reader) (Value, error) {
	return value.Decode(r)
}

// ExecutionMode selects how a query with more than one union branch
// (e.g. $['a','b'] or $[?@.x,?@.y]) runs those branches.
type ExecutionMode = resources.ExecutionMode

const (
	// Sequential runs union branches one after another, preserving
	// source order in the result set. The default.
	Sequential = resources.Sequential
	// Parallel runs union branches concurrently. Useful when branches
	// each carry an expensive filter predicate; only the resulting set
	// is guaranteed, not source order, unless Sort is also set.
	Parallel = resources.Parallel
)

// Options configures a single Select/SelectPaths/SelectNodes call.
type Options struct {
	// MaxDepth bounds RecursiveDescent (..) traversal depth. Zero
	// selects the default of 64; a query that would need to walk
	// deeper fails with MaxDepthExceeded rather than looping forever
	// over a cyclic or pathologically deep document.
	MaxDepth int

	// ExecutionMode selects how union branches run. Zero value is
	// Sequential.
	ExecutionMode ExecutionMode

	// NoDuplicates drops results whose normalized path was already
	// emitted, keeping the first occurrence. Queries like
	// $.a[?true,?true] would otherwise report the same element
	// twice.
	NoDuplicates bool

	// Sort orders results by normalized path before returning them,
	// overriding whatever order NoDuplicates or a Parallel
	// ExecutionMode would otherwise leave them in.
	Sort bool
}

func (o Options) toResources() *resources.Resources {
	return resources.New(resources.Options{
		MaxDepth:      o.MaxDepth,
		ExecutionMode: o.ExecutionMode,
		NoDuplicates:  o.NoDuplicates,
		Sort:          o.Sort,
	})
}

// Node pairs a matched value with the normalized path it was found
// at, as returned by (*Path).SelectNodes.
type Node struct {
	Path  string
	Value Value
}

// Path is a compiled query, safe for concurrent use against different
// documents (compilation state is read-only; per-call state lives in
// an internal resources.Resources built fresh for each Select call).
type Path struct {
	chain selector.Selector
}

// Parse compiles query text into a Path. A malformed query fails with
// a *ParseError identifying the offending token's position.
func Parse(query string) (*Path, error) {
	chain, err := parser.Parse(query)
	if err != nil {
		return nil, convertParseError(err)
	}
	return &Path{chain: chain}, nil
}

type match struct {
	path  *pathmodel.Node
	value value.Value
}

// run walks the chain against root, collecting every match, and
// applies Sort/NoDuplicates post-processing. In Parallel mode the sink
// is invoked from concurrent Union branches, so it is guarded by a
// mutex; Sequential mode never contends and pays no locking cost.
func (p *Path) run(root Value, opts Options) ([]match, error) {
	res := opts.toResources()

	var matches []match
	sink := func(path *pathmodel.Node, v value.Value) {
		matches = append(matches, match{path: path, value: v})
	}
	if opts.ExecutionMode == Parallel {
		sink = synchronizedSink(sink)
	}

	if err := p.chain.Select(res, root, pathmodel.Root, root, sink, 0); err != nil {
		return nil, convertSelectError(err)
	}

	return postProcess(matches, res.Flags), nil
}

func synchronizedSink(sink selector.Sink) selector.Sink {
	var mu sync.Mutex
	return func(path *pathmodel.Node, v value.Value) {
		mu.Lock()
		defer mu.Unlock()
		sink(path, v)
	}
}

func postProcess(matches []match, flags resources.Flags) []match {
	if flags&resources.SortByPath != 0 {
		sortByPath(matches)
	}
	if flags&resources.NoDuplicates != 0 {
		matches = dedupeByPath(matches)
	}
	return matches
}

func sortByPath(matches []match) {
	locs := make([]pathmodel.Location, len(matches))
	for i, m := range matches {
		locs[i] = pathmodel.Materialize(m.path)
	}
	insertionSortByLocation(matches, locs)
}

// insertionSortByLocation sorts matches (and its parallel locs slice)
// in place. Result sets from a single query are small enough — one
// per matched element — that insertion sort's simplicity outweighs an
// O(n log n) algorithm's asymptotic edge.
func insertionSortByLocation(matches []match, locs []pathmodel.Location) {
	for i := 1; i < len(matches); i++ {
		j := i
		for j > 0 && locs[j-1].Compare(locs[j]) > 0 {
			locs[j-1], locs[j] = locs[j], locs[j-1]
			matches[j-1], matches[j] = matches[j], matches[j-1]
			j--
		}
	}
}

// dedupeByPath keeps the first occurrence of each distinct normalized
// path, preserving the order matches arrived in.
func dedupeByPath(matches []match) []match {
	seen := make(map[string]struct{}, len(matches))
	out := matches[:0]
	for _, m := range matches {
		key := pathmodel.Materialize(m.path).String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}

// SelectValues runs the query against root, returning the matched
// values in the order Options dictates.
func (p *Path) SelectValues(root Value, opts Options) ([]Value, error) {
	matches, err := p.run(root, opts)
	if err != nil {
		return nil, err
	}
	values := make([]Value, len(matches))
	for i, m := range matches {
		values[i] = m.value
	}
	return values, nil
}

// SelectPaths runs the query against root, returning the normalized
// path of every match without materializing the matched values.
func (p *Path) SelectPaths(root Value, opts Options) ([]string, error) {
	matches, err := p.run(root, opts)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = pathmodel.Materialize(m.path).String()
	}
	return paths, nil
}

// SelectNodes runs the query against root, returning both the
// normalized path and value of every match.
func (p *Path) SelectNodes(root Value, opts Options) ([]Node, error) {
	matches, err := p.run(root, opts)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, len(matches))
	for i, m := range matches {
		nodes[i] = Node{Path: pathmodel.Materialize(m.path).String(), Value: m.value}
	}
	return nodes, nil
}
