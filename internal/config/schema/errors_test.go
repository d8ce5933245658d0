package schema

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&MissingFieldError{Path: "pycharm.paths.venv"}, "missing required field pycharm.paths.venv"},
		{&MissingFieldError{Path: "a.b", Source: "defaults"}, "missing required field a.b (from defaults)"},
		{&UnknownFieldError{Path: "pp.widht", Source: "override (/p/t.toml)"}, "unknown field pp.widht (from override (/p/t.toml))"},
		{&TypeValidationError{Path: "pp.width", Expected: "integer", Value: 3.5}, "pp.width: expected integer, got number 3.5"},
		{&TypeValidationError{Path: "x", Expected: "string", Value: int64(4)}, "x: expected string, got integer 4"},
		{&TypeValidationError{Path: "x", Expected: "string", Value: map[string]any{}}, "x: expected string, got table"},
		{&TypeValidationError{Path: "x", Expected: "string", Value: []any{1, 2}}, "x: expected string, got array of 2 items"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestErrorSentinels(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", &UnknownFieldError{Path: "x"})
	assert.True(t, errors.Is(wrapped, ErrUnknownField))
	assert.False(t, errors.Is(wrapped, ErrMissingField))
	assert.False(t, errors.Is(&MissingFieldError{}, ErrTypeValidation))
	assert.True(t, errors.Is(&TypeValidationError{}, ErrTypeValidation))
}
