package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukashev/task-manager-api/internal/mocks"
	"github.com/mlukashev/task-manager-api/internal/service"
	"github.com/mlukashev/task-manager-api/internal/service/auth"
)

func TestAuthServiceLogin(t *testing.T) {
	t.Parallel()

	newService := func(users *mocks.MockUserStore) *service.AuthService {
		hasher := &mocks.MockPasswordHasher{}
		jwt := &mocks.MockJWTService{Token: "signed-token"}
		return service.NewAuthService(users, hasher, jwt, nil)
	}

	t.Run("valid credentials return a token", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		seedUser(t, users, "hexlet@example.com")
		svc := newService(users)

		token, err := svc.Login(context.Background(), service.LoginParams{
			Username: "hexlet@example.com",
			Password: "qwerty",
		})

		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
	})

	t.Run("wrong password is invalid credentials", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		seedUser(t, users, "hexlet@example.com")
		svc := newService(users)

		_, err := svc.Login(context.Background(), service.LoginParams{
			Username: "hexlet@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from a wrong password", func(t *testing.T) {
		svc := newService(mocks.NewMockUserStore())

		_, err := svc.Login(context.Background(), service.LoginParams{
			Username: "nobody@example.com",
			Password: "qwerty",
		})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}
