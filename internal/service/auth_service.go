package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mlukashev/task-manager-api/internal/platform/logger"
	"github.com/mlukashev/task-manager-api/internal/service/auth"
	"github.com/mlukashev/task-manager-api/internal/store"
)

// LoginParams is the payload for the login endpoint. Username carries the
// user's email address.
type LoginParams struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService authenticates users and issues bearer tokens.
type AuthService struct {
	users    store.UserStore
	verifier auth.PasswordVerifier
	jwt      auth.JWTService
	logger   *slog.Logger
}

// NewAuthService creates a new AuthService with the given dependencies.
// If logger is nil, a default logger will be used.
func NewAuthService(
	users store.UserStore,
	verifier auth.PasswordVerifier,
	jwt auth.JWTService,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:    users,
		verifier: verifier,
		jwt:      jwt,
		logger:   logger.With(slog.String("component", "auth_service")),
	}
}

// Login verifies the credentials and returns a signed bearer token.
// An unknown email and a wrong password both return
// auth.ErrInvalidCredentials so callers cannot probe which of the two was
// wrong.
func (s *AuthService) Login(ctx context.Context, params LoginParams) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, params.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", auth.ErrInvalidCredentials
		}
		return "", err
	}

	if err := s.verifier.Compare(user.PasswordDigest, params.Password); err != nil {
		log.Warn("failed login attempt", slog.Int64("user_id", user.ID))
		return "", auth.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(ctx, user.Email)
	if err != nil {
		return "", err
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return token, nil
}
