// Package audit captures structured auth events. Events are emitted from
// domain logic and fanned out to a sink: Kafka when configured, otherwise an
// in-process worker appending to a memory store.
package audit

import "time"

// Action names an auth-relevant occurrence.
type Action string

const (
	ActionUserRegistered Action = "user.registered"
	ActionUserLogin      Action = "user.login"
	ActionLoginFailed    Action = "user.login_failed"
	ActionSessionExpired Action = "session.expired"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	UserID    string    `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Device    string    `json:"device,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}
