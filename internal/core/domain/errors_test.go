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
		{"ErrDuplicatePassport", ErrDuplicatePassport},
		{"ErrTariffNotSet", ErrTariffNotSet},
		{"ErrIndexOutOfRange", ErrIndexOutOfRange},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct verifies the cashbox error kinds never match each other.
func TestErrors_Distinct(t *testing.T) {
	kinds := []error{ErrDuplicatePassport, ErrTariffNotSet, ErrIndexOutOfRange}
	for i, a := range kinds {
		for j, b := range kinds {
			assert.Equal(t, i == j, errors.Is(a, b))
		}
	}
}

func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("%w: destination Sochi", ErrTariffNotSet)
	assert.True(t, errors.Is(err, ErrTariffNotSet))
	assert.False(t, errors.Is(err, ErrIndexOutOfRange))
	assert.Equal(t, "tariff not set: destination Sochi", err.Error())
}
