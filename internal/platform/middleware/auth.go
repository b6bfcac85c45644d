package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	id "leavehub/pkg/domain"
	dErrors "leavehub/pkg/domain-errors"
	"leavehub/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	UserID    string
	SessionID string
	Role      string
}

// SessionChecker validates that the server-side session behind a token is
// still alive. Implementations return CodeUnauthorized when the session is
// missing or expired (deleting the expired record as a side effect) and
// CodeInternal on store failures.
type SessionChecker interface {
	CheckSession(ctx context.Context, sessionID id.SessionID) error
}

// RequireAuth gates access to protected operations. The bearer token is
// always verified; when checker is non-nil the session record must also be
// alive, so session expiry can invalidate access before the token's own
// expiry.
func RequireAuth(validator JWTValidator, checker SessionChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeJSONMessage(w, http.StatusUnauthorized, "no token, authorization denied")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeJSONMessage(w, http.StatusUnauthorized, "token is not valid")
				return
			}

			userID, err := id.ParseUserID(claims.UserID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed user claim",
					"request_id", requestID,
				)
				writeJSONMessage(w, http.StatusUnauthorized, "token is not valid")
				return
			}
			sessionID, err := id.ParseSessionID(claims.SessionID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed session claim",
					"request_id", requestID,
				)
				writeJSONMessage(w, http.StatusUnauthorized, "token is not valid")
				return
			}

			if checker != nil {
				if err := checker.CheckSession(ctx, sessionID); err != nil {
					if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
						logger.WarnContext(ctx, "unauthorized access - session expired",
							"session_id", sessionID.String(),
							"request_id", requestID,
						)
						writeJSONMessage(w, http.StatusUnauthorized, "session expired")
						return
					}
					logger.ErrorContext(ctx, "failed to check session",
						"error", err,
						"request_id", requestID,
					)
					writeJSONMessage(w, http.StatusInternalServerError, "failed to validate session")
					return
				}
			}

			ctx = requestcontext.WithUserID(ctx, userID)
			ctx = requestcontext.WithSessionID(ctx, sessionID)
			ctx = requestcontext.WithRole(ctx, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
