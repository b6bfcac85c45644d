// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets these values; services and handlers read them. Keeping the
// package free of net/http dependencies lets services import only what they
// need.
//
// Usage in services (read values):
//
//	userID := requestcontext.UserID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "leavehub/pkg/domain"
)

type (
	userIDKey      struct{}
	sessionIDKey   struct{}
	roleKey        struct{}
	deviceKey      struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need raw context.WithValue.
var (
	ContextKeyUserID      = userIDKey{}
	ContextKeySessionID   = sessionIDKey{}
	ContextKeyRole        = roleKey{}
	ContextKeyDevice      = deviceKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// UserID retrieves the authenticated user ID from the context.
// Returns the zero value (nil UUID) if not set.
func UserID(ctx context.Context) id.UserID {
	if userID, ok := ctx.Value(ContextKeyUserID).(id.UserID); ok {
		return userID
	}
	return id.UserID{}
}

// WithUserID injects a user ID into the context.
func WithUserID(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

// SessionID retrieves the session ID from the context.
func SessionID(ctx context.Context) id.SessionID {
	if sessionID, ok := ctx.Value(ContextKeySessionID).(id.SessionID); ok {
		return sessionID
	}
	return id.SessionID{}
}

// WithSessionID injects a session ID into the context.
func WithSessionID(ctx context.Context, sessionID id.SessionID) context.Context {
	return context.WithValue(ctx, ContextKeySessionID, sessionID)
}

// Role retrieves the authenticated user's role name from the context.
func Role(ctx context.Context) string {
	if role, ok := ctx.Value(ContextKeyRole).(string); ok {
		return role
	}
	return ""
}

// WithRole injects a role name into the context.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ContextKeyRole, role)
}

// Device retrieves the parsed device summary ("Chrome on Linux") set by the
// device middleware.
func Device(ctx context.Context) string {
	if device, ok := ctx.Value(ContextKeyDevice).(string); ok {
		return device
	}
	return ""
}

// WithDevice injects a device summary into a context. Useful for service unit
// tests that don't run the full HTTP middleware chain.
func WithDevice(ctx context.Context, device string) context.Context {
	return context.WithValue(ctx, ContextKeyDevice, device)
}

// RequestID retrieves the request correlation ID from the context.
func RequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// WithRequestID injects a request correlation ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now returns the request time pinned by middleware, falling back to the wall
// clock. Services read time through this so tests can freeze it.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins the request time in the context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
