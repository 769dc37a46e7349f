package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlukashev/task-manager-api/internal/api/middleware"
	"github.com/mlukashev/task-manager-api/internal/api/shared"
	"github.com/mlukashev/task-manager-api/internal/mocks"
	"github.com/mlukashev/task-manager-api/internal/service/auth"
)

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	validJWT := &mocks.MockJWTService{
		Claims: &auth.Claims{Email: "hexlet@example.com"},
	}

	principalCapture := func(got *string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, _ := shared.GetPrincipalEmail(r.Context())
			*got = email
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("missing header is 401", func(t *testing.T) {
		var principal string
		handler := middleware.NewAuthMiddleware(validJWT).Authenticate(principalCapture(&principal))

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, principal)
	})

	t.Run("non-bearer scheme is 401", func(t *testing.T) {
		var principal string
		handler := middleware.NewAuthMiddleware(validJWT).Authenticate(principalCapture(&principal))

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token is 401 and does not echo the token", func(t *testing.T) {
		jwt := &mocks.MockJWTService{ValidateError: auth.ErrInvalidToken}
		var principal string
		handler := middleware.NewAuthMiddleware(jwt).Authenticate(principalCapture(&principal))

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer bogus-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotContains(t, rec.Body.String(), "bogus-token")
	})

	t.Run("expired token reports expiry", func(t *testing.T) {
		jwt := &mocks.MockJWTService{ValidateError: auth.ErrExpiredToken}
		handler := middleware.NewAuthMiddleware(jwt).Authenticate(http.NotFoundHandler())

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token expired")
	})

	t.Run("valid token stores the principal email", func(t *testing.T) {
		var principal string
		handler := middleware.NewAuthMiddleware(validJWT).Authenticate(principalCapture(&principal))

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hexlet@example.com", principal)
	})
}
