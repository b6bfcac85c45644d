package models

import (
	"strconv"
	"strings"

	dErrors "leavehub/pkg/domain-errors"
)

// RegisterRequest carries the raw registration fields. All fields arrive as
// text and are trimmed before use; AvailableDaysOff stays a string so "not
// supplied" and "zero" remain distinguishable.
type RegisterRequest struct {
	Name             string `json:"name"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	Role             string `json:"role"`
	AvailableDaysOff string `json:"availableDaysOff,omitempty"`
}

// Normalize trims surrounding whitespace from every field.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Username = strings.TrimSpace(r.Username)
	r.Password = strings.TrimSpace(r.Password)
	r.Role = strings.TrimSpace(r.Role)
	r.AvailableDaysOff = strings.TrimSpace(r.AvailableDaysOff)
}

// Validate enumerates every problem field. Callers must Normalize first.
func (r *RegisterRequest) Validate() error {
	fields := make(map[string]string)
	if r.Name == "" {
		fields["name"] = "is required"
	}
	if r.Username == "" {
		fields["username"] = "is required"
	}
	if r.Password == "" {
		fields["password"] = "is required"
	}
	switch {
	case r.Role == "":
		fields["role"] = "is required"
	case !Role(r.Role).Valid():
		fields["role"] = "must be one of employee, manager, leader, admin"
	}
	if r.AvailableDaysOff != "" {
		if days, err := strconv.Atoi(r.AvailableDaysOff); err != nil || days < 0 {
			fields["availableDaysOff"] = "must be a non-negative integer"
		}
	}
	if len(fields) > 0 {
		return dErrors.NewValidation(fields)
	}
	return nil
}

// LeaveBalance returns the requested override, or falls back to the accrual
// default computed at createdAt. Validate must have accepted the request.
func (r *RegisterRequest) LeaveBalance(defaultBalance int) int {
	if r.AvailableDaysOff == "" {
		return defaultBalance
	}
	days, err := strconv.Atoi(r.AvailableDaysOff)
	if err != nil {
		return defaultBalance
	}
	return days
}

// LoginRequest carries the raw login fields.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Normalize trims surrounding whitespace from both fields.
func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Password = strings.TrimSpace(r.Password)
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string  `json:"token"`
	User      Profile `json:"user"`
	SessionID string  `json:"sessionId"`
}
