package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mlukashev/task-manager-api/internal/api/shared"
	"github.com/mlukashev/task-manager-api/internal/redact"
	"github.com/mlukashev/task-manager-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token from the Authorization header and
// stores the principal's email in the request context. Requests without a
// valid token are rejected with 401 before reaching the handler.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Token expired"
			}

			// Log the failure with a redacted error; the token itself must
			// never appear in logs.
			slog.Warn("token validation failed",
				slog.String("error", redact.Error(err)),
				slog.String("trace_id", shared.GetTraceID(r.Context())),
				slog.String("path", r.URL.Path))

			shared.RespondWithError(w, r, http.StatusUnauthorized, message)
			return
		}

		ctx := shared.WithPrincipalEmail(r.Context(), claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
