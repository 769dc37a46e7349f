package api

import (
	"log/slog"
	"net/http"

	"github.com/mlukashev/task-manager-api/internal/api/shared"
	"github.com/mlukashev/task-manager-api/internal/service"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/login. On success the response body is the raw
// bearer token as plain text, matching clients that treat the whole body as
// the token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var params service.LoginParams
	if err := shared.DecodeJSON(r, &params); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(params); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	token, err := h.authService.Login(r.Context(), params)
	if err != nil {
		// Repeated auth failures are worth seeing in logs.
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err,
			shared.WithElevatedLogLevel())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(token)); err != nil {
		slog.Error("failed to write token response", "error", err)
	}
}
