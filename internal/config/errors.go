package config

import (
	"errors"

	"github.com/tkutils/toolkit/internal/config/loader"
	"github.com/tkutils/toolkit/internal/config/paths"
	"github.com/tkutils/toolkit/internal/config/schema"
)

// Errors returned by the configuration pipeline. Each stage returns its
// own concrete type; all of them match one of these sentinels through
// errors.Is.
var (
	// ErrParse matches *ParseError.
	ErrParse = loader.ErrParse

	// ErrProjectNotFound matches *ProjectNotFoundError.
	ErrProjectNotFound = paths.ErrProjectNotFound

	// ErrPathResolution matches *PathResolutionError.
	ErrPathResolution = paths.ErrPathResolution

	// ErrMissingField matches *MissingFieldError.
	ErrMissingField = schema.ErrMissingField

	// ErrTypeValidation matches *TypeValidationError.
	ErrTypeValidation = schema.ErrTypeValidation

	// ErrUnknownField matches *UnknownFieldError.
	ErrUnknownField = schema.ErrUnknownField

	// ErrSectionNotFound indicates a section or source name that does not exist.
	ErrSectionNotFound = errors.New("section not found")

	// ErrPathNotExist indicates a configured path missing on disk.
	ErrPathNotExist = errors.New("configured path does not exist")
)

// Concrete error types of each pipeline stage.
type (
	// ParseError reports malformed source text with its line and column.
	ParseError = loader.ParseError

	// ProjectNotFoundError reports a failed project root discovery.
	ProjectNotFoundError = paths.ProjectNotFoundError

	// PathResolutionError reports a missing path-bearing field.
	PathResolutionError = paths.ResolutionError

	// MissingFieldError reports a declared field absent after merging.
	MissingFieldError = schema.MissingFieldError

	// TypeValidationError reports a value of the wrong type or range.
	TypeValidationError = schema.TypeValidationError

	// UnknownFieldError reports a key the schema does not declare.
	UnknownFieldError = schema.UnknownFieldError
)
