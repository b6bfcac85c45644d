package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct domain error", func(t *testing.T) {
		err := New(CodeConflict, "username exists")
		assert.True(t, HasCode(err, CodeConflict))
		assert.False(t, HasCode(err, CodeUnauthorized))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeUnauthorized, "invalid token"))
		assert.True(t, HasCode(err, CodeUnauthorized))
	})

	t.Run("plain error has no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "store unavailable")

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestValidationFields(t *testing.T) {
	err := NewValidation(map[string]string{"username": "is required"})
	err.Add("password", "is required")

	de := Load(err)
	require.NotNil(t, de)
	assert.Equal(t, CodeValidation, de.Code)
	assert.Len(t, de.Fields, 2)
	assert.Equal(t, "is required", de.Fields["password"])
}
