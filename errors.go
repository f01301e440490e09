package jsonpath

import (
	"errors"
	"fmt"

	"github.com/dvorsky/jsonpath/internal/parser"
	"github.com/dvorsky/jsonpath/internal/selector"
)

// ParseError reports a query that failed to compile, with the source
// position of the token that triggered the failure.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsonpath: %d:%d: %s", e.Line, e.Column, e.Message)
}

func convertParseError(err error) error {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return &ParseError{Line: perr.Line, Column: perr.Column, Message: perr.Message}
	}
	return err
}

// ErrMaxDepthExceeded is returned by SelectValues/SelectPaths/SelectNodes
// when a recursive descent (..) needed to walk deeper than Options.MaxDepth
// allows.
var ErrMaxDepthExceeded = errors.New("jsonpath: max depth exceeded")

// ErrInternalInvariant reports a selector-tree state the engine
// believes is unreachable for any query Parse accepts. Seeing it
// surfaced from a real call means the invariant was wrong, not the
// caller's input.
var ErrInternalInvariant = errors.New("jsonpath: internal invariant violated")

func convertSelectError(err error) error {
	if errors.Is(err, selector.ErrMaxDepthExceeded) {
		return ErrMaxDepthExceeded
	}
	return fmt.Errorf("%w: %v", ErrInternalInvariant, err)
}
