// Package shared centralizes domain error translation to HTTP responses so
// every handler produces the same JSON envelopes.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "leavehub/pkg/domain-errors"
)

// errorBody is the envelope for failures: always a message, plus a field map
// for validation errors.
type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// ToHTTPStatus maps a domain error code to its HTTP status. Validation and
// conflict both map to 400; auth-related failures are deliberately
// coarse-grained 401s.
func ToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation, dErrors.CodeBadRequest, dErrors.CodeInvalidInput, dErrors.CodeConflict:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err as JSON. Unclassified errors become opaque 500s; the
// underlying cause never reaches the body.
func WriteError(w http.ResponseWriter, err error) {
	de := dErrors.Load(err)
	status := http.StatusInternalServerError
	body := errorBody{Message: "internal server error"}
	if de != nil {
		status = ToHTTPStatus(de.Code)
		body.Message = de.Message
		body.Errors = de.Fields
	}
	WriteJSON(w, status, body)
}

// WriteJSON renders v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage renders a bare {message} envelope.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}
