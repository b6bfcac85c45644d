package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "leavehub/pkg/domain-errors"
)

func TestParseUserID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID(uuid.Nil.String())
		require.Error(t, err)
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseUserID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(valid), id)
	})
}

// ParseSessionID shares parseUUID with ParseUserID; only boundary inputs that
// could differ are exercised here.
func TestParseSessionID_RejectsAttackVectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"SQL injection attempt", "'; DROP TABLE users;--"},
		{"path traversal", "../../../etc/passwd"},
		{"oversized input", strings.Repeat("a", 1000)},
		{"whitespace only", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSessionID(tt.input)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestTypeDistinction(t *testing.T) {
	userID := NewUserID()
	sessionID := NewSessionID()

	// These would fail to compile if types were interchangeable:
	// var _ UserID = sessionID
	// var _ SessionID = userID

	assert.NotEqual(t, uuid.UUID(userID), uuid.UUID(sessionID))
	assert.False(t, userID.IsNil())
	assert.True(t, UserID{}.IsNil())
}
