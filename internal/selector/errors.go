package selector

import "errors"

// ErrMaxDepthExceeded is returned by RecursiveDescent.Select when the
// document nests deeper than the configured MaxDepth.
var ErrMaxDepthExceeded = errors.New("selector: max depth exceeded")
