// Package models holds the identity records tracked by leavehub. Storage of
// the actual records lives behind the store interfaces in internal/auth/store.
package models

import (
	"time"

	id "leavehub/pkg/domain"
)

// Role is the fixed set of roles a user can hold.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleLeader   Role = "leader"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a member of the role enum.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleLeader, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// LeaveReferenceDate anchors the leave accrual formula: two days accrue per
// whole month elapsed since this date.
var LeaveReferenceDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultLeaveBalance computes the accrued leave balance for a user created
// at now: 2 days per whole month since the reference date, floored at zero.
func DefaultLeaveBalance(now time.Time) int {
	if now.Before(LeaveReferenceDate) {
		return 0
	}
	months := 0
	cursor := LeaveReferenceDate.AddDate(0, 1, 0)
	for !cursor.After(now) {
		months++
		cursor = cursor.AddDate(0, 1, 0)
	}
	return 2 * months
}

// User is the primary identity record. PasswordHash never leaves the service:
// responses carry the Profile projection instead.
type User struct {
	ID           id.UserID
	Name         string
	Username     string
	PasswordHash string
	Role         Role
	LeaveBalance int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the sanitized projection of a User safe to serialize.
type Profile struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Username         string `json:"username"`
	Role             string `json:"role"`
	AvailableDaysOff int    `json:"availableDaysOff"`
}

// Profile returns the response-safe projection of the user.
func (u User) Profile() Profile {
	return Profile{
		ID:               u.ID.String(),
		Name:             u.Name,
		Username:         u.Username,
		Role:             u.Role.String(),
		AvailableDaysOff: u.LeaveBalance,
	}
}

// Session is the server-side proof of an active login. ExpiresAt is always
// strictly after CreatedAt.
type Session struct {
	ID        id.SessionID
	UserID    id.UserID
	Device    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
