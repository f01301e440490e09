package parser

import "fmt"

// Error reports a query that could not be parsed, with the source
// position of the token that triggered the failure.
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func parseErrorf(line, column int, format string, args ...any) error {
	return &Error{Line: line, Column: column, Message: fmt.Sprintf(format, args...)}
}
