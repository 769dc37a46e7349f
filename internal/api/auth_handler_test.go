package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukashev/task-manager-api/internal/api"
	"github.com/mlukashev/task-manager-api/internal/domain"
	"github.com/mlukashev/task-manager-api/internal/mocks"
	"github.com/mlukashev/task-manager-api/internal/service"
)

func seedAPIUser(t *testing.T, users *mocks.MockUserStore, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, "qwerty", "John", "Doe")
	require.NoError(t, err)
	user.PasswordDigest = "hashed:qwerty"
	user.Password = ""
	return users.AddUser(user)
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Parallel()

	newHandler := func(users *mocks.MockUserStore) *api.AuthHandler {
		svc := service.NewAuthService(users, &mocks.MockPasswordHasher{}, &mocks.MockJWTService{Token: "signed-token"}, nil)
		return api.NewAuthHandler(svc)
	}

	t.Run("valid credentials return the raw token", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		seedAPIUser(t, users, "hexlet@example.com")
		handler := newHandler(users)

		req := httptest.NewRequest(http.MethodPost, "/api/login",
			strings.NewReader(`{"username":"hexlet@example.com","password":"qwerty"}`))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
		assert.Equal(t, "signed-token", rec.Body.String())
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		seedAPIUser(t, users, "hexlet@example.com")
		handler := newHandler(users)

		req := httptest.NewRequest(http.MethodPost, "/api/login",
			strings.NewReader(`{"username":"hexlet@example.com","password":"wrong"}`))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotContains(t, rec.Body.String(), "wrong")
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		handler := newHandler(mocks.NewMockUserStore())

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		handler := newHandler(mocks.NewMockUserStore())

		req := httptest.NewRequest(http.MethodPost, "/api/login",
			strings.NewReader(`{"username":"hexlet@example.com"}`))
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
