package paths

import (
	"errors"
	"fmt"
)

// Sentinels matched by the concrete path errors through errors.Is.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrPathResolution  = errors.New("path resolution failed")
)

// ProjectNotFoundError is returned when no project marker is found above
// the starting directory.
type ProjectNotFoundError struct {
	// Start is the directory the search began in.
	Start string
	// Marker is the name searched for.
	Marker string
	// Levels is the number of parent directories examined.
	Levels int
	// Err is the underlying error, if any.
	Err error
}

func (e *ProjectNotFoundError) Error() string {
	msg := fmt.Sprintf("project root not found: no %s within %d levels above %s", e.Marker, e.Levels, e.Start)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ProjectNotFoundError) Unwrap() error {
	return e.Err
}

// Is matches ErrProjectNotFound.
func (e *ProjectNotFoundError) Is(target error) bool {
	return target == ErrProjectNotFound
}

// ResolutionError is returned when a path-bearing field is absent. It
// wraps a *schema.MissingFieldError for the same path.
type ResolutionError struct {
	// Path is the dotted path of the field.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ResolutionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot resolve path %s", e.Path)
	}
	return fmt.Sprintf("cannot resolve path %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Is matches ErrPathResolution.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrPathResolution
}

var errNotDir = errors.New("not a directory")
