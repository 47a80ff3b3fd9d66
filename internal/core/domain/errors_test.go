package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnknownContentType", ErrUnknownContentType},
		{"ErrNoUsers", ErrNoUsers},
		{"ErrImportAborted", ErrImportAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
}

func TestErrUnknownContentType_Wrapped(t *testing.T) {
	err := fmt.Errorf("%w: %s", ErrUnknownContentType, "recipes")

	assert.True(t, errors.Is(err, ErrUnknownContentType))
	assert.Contains(t, err.Error(), "recipes")
}

func TestErrImportAborted_JoinsCause(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrImportAborted, ErrNoUsers)

	assert.True(t, errors.Is(err, ErrImportAborted))
	assert.True(t, errors.Is(err, ErrNoUsers))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestErrors_Unique(t *testing.T) {
	errs := []error{ErrNotFound, ErrInvalidInput, ErrUnknownContentType, ErrNoUsers, ErrImportAborted}

	for i, a := range errs {
		for j, b := range errs {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
