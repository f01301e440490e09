// Package resources holds the per-query configuration and mutable
// state threaded through a single evaluation of a parsed selector
// tree — the JSONPath analogue of a request-scoped context.
package resources

import (
	"sync"

	"github.com/dvorsky/jsonpath/internal/value"
)

// ExecutionMode selects how a Union selector runs its sub-selectors.
type ExecutionMode uint8

const (
	Sequential ExecutionMode = iota
	Parallel
)

func (m ExecutionMode) String() string {
	if m == Parallel {
		return "parallel"
	}
	return "sequential"
}

// Flags is a bitfield of post-processing options. Setting either
// duplicate-removal or sorting implies Path, since both need a
// materialized location to compare against.
type Flags uint8

const (
	Path Flags = 1 << iota
	NoDuplicates
	SortByPath
)

// Options configures a single Select/SelectPaths/SelectNodes call.
type Options struct {
	// MaxDepth bounds RecursiveDescent traversal. Zero means the
	// default of 64.
	MaxDepth int

	ExecutionMode ExecutionMode
	NoDuplicates  bool
	Sort          bool
}

// DefaultMaxDepth is used when Options.MaxDepth is zero.
const DefaultMaxDepth = 64

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) flags() Flags {
	var f Flags
	if o.NoDuplicates {
		f |= NoDuplicates | Path
	}
	if o.Sort {
		f |= SortByPath | Path
	}
	return f
}

// Resources is created fresh for each top-level Select call and
// discarded once results are collected. It carries the effective
// options and a memoization cache from root-selector id to its
// evaluated result, so a query that references $ more than once
// (e.g. inside a filter) does not re-walk the document each time.
type Resources struct {
	Options Options
	Flags   Flags
	MaxDepth int

	mu    sync.Mutex
	cache map[int]value.Value
}

// New builds a Resources for a single query evaluation.
func New(opts Options) *Resources {
	return &Resources{
		Options:  opts,
		Flags:    opts.flags(),
		MaxDepth: opts.maxDepth(),
		cache:    make(map[int]value.Value),
	}
}

// HasPath reports whether path computation is requested.
func (r *Resources) HasPath() bool {
	return r.Flags&Path != 0
}

// Memoized returns the cached result for a root-selector id.
func (r *Resources) Memoized(id int) (value.Value, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.cache[id]
	return v, ok
}

// Memoize stores the result for a root-selector id. Safe to call from
// concurrent Union branches in Parallel mode.
func (r *Resources) Memoize(id int, v value.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[id] = v
}
