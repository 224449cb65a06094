package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorFormatting(t *testing.T) {
	plain := NewValidationError("start topic ID is required")
	assert.Equal(t, "VALIDATION: start topic ID is required", plain.Error())

	cause := errors.New("connection reset")
	wrapped := NewDirectoryError("load current topics", cause)
	assert.Contains(t, wrapped.Error(), "load current topics")
	assert.Contains(t, wrapped.Error(), "connection reset")
}

func TestDirectoryErrorPreservesCause(t *testing.T) {
	cause := errors.New("table missing")
	err := NewDirectoryError("find start topic", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, ErrorTypeDirectory, GetType(err))
	assert.False(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
}

func TestTypeHelpers(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		isValidation bool
		isNotFound   bool
		wantType     ErrorType
	}{
		{
			name:         "validation error",
			err:          NewValidationError("bad input"),
			isValidation: true,
			wantType:     ErrorTypeValidation,
		},
		{
			name:       "not found error",
			err:        NewNotFoundError("topic x"),
			isNotFound: true,
			wantType:   ErrorTypeNotFound,
		},
		{
			name:       "wrapped not found is still detected",
			err:        fmt.Errorf("outer: %w", NewNotFoundError("topic y")),
			isNotFound: true,
			wantType:   ErrorTypeNotFound,
		},
		{
			name:     "plain error falls back to internal",
			err:      errors.New("boom"),
			wantType: ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValidation, IsValidation(tt.err))
			assert.Equal(t, tt.isNotFound, IsNotFound(tt.err))
			assert.Equal(t, tt.wantType, GetType(tt.err))
		})
	}
}

func TestNotFoundMessageNamesResource(t *testing.T) {
	err := NewNotFoundError("start topic ghost")
	assert.Contains(t, err.Error(), "start topic ghost not found")
}

func TestWithDetailsAndCause(t *testing.T) {
	cause := errors.New("inner")
	err := NewValidationError("max distance cannot be negative").
		WithDetails(map[string]interface{}{"maxDistance": -1}).
		WithCause(cause)

	assert.Equal(t, -1, err.Details["maxDistance"])
	assert.ErrorIs(t, err, cause)
}
