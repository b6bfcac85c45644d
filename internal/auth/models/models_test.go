package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "leavehub/pkg/domain"
	dErrors "leavehub/pkg/domain-errors"
)

func TestDefaultLeaveBalance(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"before reference date", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), 0},
		{"on reference date", LeaveReferenceDate, 0},
		{"one day short of a month", time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC), 0},
		{"exactly one month", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 2},
		{"three months and change", time.Date(2024, 4, 20, 12, 0, 0, 0, time.UTC), 6},
		{"one year", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultLeaveBalance(tt.now))
		})
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	session := Session{
		ID:        id.NewSessionID(),
		UserID:    id.NewUserID(),
		CreatedAt: now,
		ExpiresAt: now.Add(2 * time.Minute),
	}

	assert.False(t, session.Expired(now.Add(time.Minute)))
	assert.True(t, session.Expired(now.Add(3*time.Minute)))
	// Expiry boundary is exclusive: a session is dead at exactly ExpiresAt.
	assert.True(t, session.Expired(session.ExpiresAt))
}

func TestRegisterRequestValidate(t *testing.T) {
	t.Run("enumerates every missing field", func(t *testing.T) {
		req := RegisterRequest{Name: "  ", Username: "", Password: " ", Role: ""}
		req.Normalize()

		err := req.Validate()
		require.Error(t, err)

		de := dErrors.Load(err)
		require.NotNil(t, de)
		assert.Equal(t, dErrors.CodeValidation, de.Code)
		assert.Len(t, de.Fields, 4)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		req := RegisterRequest{Name: "Ada", Username: "ada", Password: "secret1", Role: "wizard"}
		req.Normalize()

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, dErrors.Load(err).Fields, "role")
	})

	t.Run("rejects negative leave balance", func(t *testing.T) {
		req := RegisterRequest{Name: "Ada", Username: "ada", Password: "secret1", Role: "employee", AvailableDaysOff: "-3"}
		req.Normalize()

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, dErrors.Load(err).Fields, "availableDaysOff")
	})

	t.Run("accepts trimmed valid input", func(t *testing.T) {
		req := RegisterRequest{Name: " Ada ", Username: " ada ", Password: " secret1 ", Role: " employee ", AvailableDaysOff: "10"}
		req.Normalize()

		require.NoError(t, req.Validate())
		assert.Equal(t, "ada", req.Username)
		assert.Equal(t, 10, req.LeaveBalance(0))
	})

	t.Run("leave balance falls back to default when absent", func(t *testing.T) {
		req := RegisterRequest{Name: "Ada", Username: "ada", Password: "secret1", Role: "employee"}
		req.Normalize()

		require.NoError(t, req.Validate())
		assert.Equal(t, 6, req.LeaveBalance(6))
	})
}

func TestProfileOmitsPasswordHash(t *testing.T) {
	user := User{
		ID:           id.NewUserID(),
		Name:         "Ada",
		Username:     "ada",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         RoleEmployee,
		LeaveBalance: 4,
	}

	profile := user.Profile()
	assert.Equal(t, "ada", profile.Username)
	assert.Equal(t, 4, profile.AvailableDaysOff)
	// Profile has no hash field at all; the compiler enforces it. This test
	// documents the projection boundary.
	assert.Equal(t, user.ID.String(), profile.ID)
}
