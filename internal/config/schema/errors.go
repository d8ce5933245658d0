package schema

import (
	"errors"
	"fmt"
)

// Sentinels matched by the concrete validation errors through errors.Is.
var (
	ErrMissingField   = errors.New("missing field")
	ErrTypeValidation = errors.New("type validation failed")
	ErrUnknownField   = errors.New("unknown field")
)

// MissingFieldError reports a declared property absent from the document.
type MissingFieldError struct {
	// Path is the full dotted path of the missing field.
	Path string
	// Source names the document the field was expected in, if known.
	Source string
}

func (e *MissingFieldError) Error() string {
	return withSource(fmt.Sprintf("missing required field %s", e.Path), e.Source)
}

// Is matches ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// TypeValidationError reports a value that does not convert to its
// declared type or violates a constraint of that type.
type TypeValidationError struct {
	// Path is the full dotted path of the offending field.
	Path string
	// Expected describes the declared type or constraint.
	Expected string
	// Value is the received value in plain Go form.
	Value any
	// Source names the document that supplied the value, if known.
	Source string
}

func (e *TypeValidationError) Error() string {
	return withSource(fmt.Sprintf("%s: expected %s, got %s", e.Path, e.Expected, describe(e.Value)), e.Source)
}

// Is matches ErrTypeValidation.
func (e *TypeValidationError) Is(target error) bool {
	return target == ErrTypeValidation
}

// UnknownFieldError reports a key the schema does not declare.
type UnknownFieldError struct {
	// Path is the full dotted path of the unknown key.
	Path string
	// Source names the document that supplied the key, if known.
	Source string
}

func (e *UnknownFieldError) Error() string {
	return withSource(fmt.Sprintf("unknown field %s", e.Path), e.Source)
}

// Is matches ErrUnknownField.
func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

func withSource(msg, source string) string {
	if source == "" {
		return msg
	}
	return msg + " (from " + source + ")"
}

// describe renders a received value with its type, e.g. `string "yes"`.
func describe(v any) string {
	switch val := v.(type) {
	case nil:
		return "nothing"
	case string:
		return fmt.Sprintf("string %q", val)
	case bool:
		return fmt.Sprintf("boolean %v", val)
	case int64:
		return fmt.Sprintf("integer %d", val)
	case float64:
		return fmt.Sprintf("number %v", val)
	case map[string]any:
		return "table"
	case []any:
		return fmt.Sprintf("array of %d items", len(val))
	default:
		return fmt.Sprintf("%T %v", val, val)
	}
}
