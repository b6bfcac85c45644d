// Package domain holds the typed identifiers shared across services.
// Typed uuid wrappers prevent cross-type assignment at compile time, so a
// session ID can never be handed to a user lookup.
package domain

import (
	"github.com/google/uuid"

	dErrors "leavehub/pkg/domain-errors"
)

type UserID uuid.UUID

type SessionID uuid.UUID

func NewUserID() UserID       { return UserID(uuid.New()) }
func NewSessionID() SessionID { return SessionID(uuid.New()) }

func (id UserID) String() string    { return uuid.UUID(id).String() }
func (id SessionID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// ParseUserID validates raw input at trust boundaries. IDs must be valid,
// non-empty, non-nil UUIDs.
func ParseUserID(raw string) (UserID, error) {
	parsed, err := parseUUID(raw)
	if err != nil {
		return UserID{}, err
	}
	return UserID(parsed), nil
}

// ParseSessionID validates raw input at trust boundaries.
func ParseSessionID(raw string) (SessionID, error) {
	parsed, err := parseUUID(raw)
	if err != nil {
		return SessionID{}, err
	}
	return SessionID(parsed), nil
}

func parseUUID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	if len(raw) > 64 {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is malformed")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is malformed")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is malformed")
	}
	return parsed, nil
}
