package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "leavehub/pkg/domain"
	dErrors "leavehub/pkg/domain-errors"
)

func newService() *JWTService {
	return NewJWTService("test-signing-key", "leavehub", "leavehub-api")
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService()
	userID := id.NewUserID()
	sessionID := id.NewSessionID()

	token, err := svc.GenerateAccessToken(userID, sessionID, "employee", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, sessionID.String(), claims.SessionID)
	assert.Equal(t, "employee", claims.Role)
	assert.NotEmpty(t, claims.ID, "token carries a jti")
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := newService()

	token, err := svc.GenerateAccessToken(id.NewUserID(), id.NewSessionID(), "employee", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateRejectsWrongKey(t *testing.T) {
	token, err := newService().GenerateAccessToken(id.NewUserID(), id.NewSessionID(), "employee", time.Hour)
	require.NoError(t, err)

	other := NewJWTService("different-key", "leavehub", "leavehub-api")
	_, err = other.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := newService().ValidateToken("not.a.token")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
