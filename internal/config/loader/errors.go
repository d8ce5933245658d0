package loader

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("parse error")

// ParseError reports a document that is not syntactically valid.
type ParseError struct {
	// Path names the source: a file path or the embedded defaults name.
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error renders the location the way compilers do: path:line:column.
func (e *ParseError) Error() string {
	loc := e.Path
	switch {
	case e.Line > 0 && e.Column > 0:
		loc = fmt.Sprintf("%s:%d:%d", e.Path, e.Line, e.Column)
	case e.Line > 0:
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return "invalid document " + loc + ": " + e.Message
}

// Unwrap returns the parser error.
func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
