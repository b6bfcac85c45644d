package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asaskevich/govalidator"

	"leavehub/internal/auth/models"
	"leavehub/internal/transport/http/shared"
	id "leavehub/pkg/domain"
	dErrors "leavehub/pkg/domain-errors"
	"leavehub/pkg/requestcontext"
)

//go:generate mockgen -source=handlers_auth.go -destination=mocks/auth_mocks.go -package=mocks AuthService

// AuthService is the slice of the auth service the transport layer needs.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) error
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	UserInfo(ctx context.Context, userID id.UserID, sessionID id.SessionID) (*models.Profile, error)
}

// AuthHandler is the thin HTTP layer over the auth service. It should
// delegate without embedding business logic so transport concerns remain
// isolated.
type AuthHandler struct {
	auth   AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid register request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := validateRegisterShape(&req); err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.auth.Register(ctx, &req); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "registration failed",
				"request_id", requestID,
				"error", err.Error(),
			)
			shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "registration failed"))
			return
		}
		shared.WriteError(w, err)
		return
	}

	shared.WriteMessage(w, http.StatusCreated, "user registered successfully")
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid login request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.auth.Login(ctx, &req)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "login failed",
				"request_id", requestID,
				"error", err.Error(),
			)
			shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "login failed"))
			return
		}
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, result)
}

// handleSessionCheck serves GET /api/login: the token got the caller through
// RequireAuth, and the session must additionally still be alive.
func (h *AuthHandler) handleSessionCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	sessionID := requestcontext.SessionID(ctx)
	if userID.IsNil() || sessionID.IsNil() {
		// Should never happen behind RequireAuth.
		h.logger.ErrorContext(ctx, "auth context missing despite middleware",
			"request_id", requestID,
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	profile, err := h.auth.UserInfo(ctx, userID, sessionID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "session check failed",
				"request_id", requestID,
				"error", err.Error(),
			)
			shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "session check failed"))
			return
		}
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]any{"user": profile})
}

func (h *AuthHandler) handleProtected(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "this is a protected resource",
		"userId":  requestcontext.UserID(ctx).String(),
		"role":    requestcontext.Role(ctx),
	})
}

// validateRegisterShape enforces transport-level bounds before the service
// sees the request. Semantic validation (required fields, role enum, leave
// balance) lives in the service.
func validateRegisterShape(req *models.RegisterRequest) error {
	if !govalidator.StringLength(req.Name, "0", "255") {
		return dErrors.New(dErrors.CodeInvalidInput, "name too long")
	}
	if !govalidator.StringLength(req.Username, "0", "64") {
		return dErrors.New(dErrors.CodeInvalidInput, "username too long")
	}
	// bcrypt rejects inputs beyond 72 bytes; fail fast at the boundary.
	if !govalidator.StringLength(req.Password, "0", "72") {
		return dErrors.New(dErrors.CodeInvalidInput, "password too long")
	}
	return nil
}
