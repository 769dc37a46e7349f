package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mlukashev/task-manager-api/internal/domain"
	"github.com/mlukashev/task-manager-api/internal/optional"
	"github.com/mlukashev/task-manager-api/internal/platform/logger"
	"github.com/mlukashev/task-manager-api/internal/service/auth"
	"github.com/mlukashev/task-manager-api/internal/store"
)

// CreateUserParams is the payload for user registration.
type CreateUserParams struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=3,max=72"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateUserParams is the partial-update payload for a user profile.
// Every field is three-state: absent fields leave the entity unchanged.
type UpdateUserParams struct {
	FirstName optional.Value[string] `json:"firstName"`
	LastName  optional.Value[string] `json:"lastName"`
	Email     optional.Value[string] `json:"email"`
	Password  optional.Value[string] `json:"password"`
}

// UserService implements the business rules around user profiles:
// password hashing, profile ownership, and the assigned-tasks delete guard.
type UserService struct {
	users  store.UserStore
	tasks  store.TaskStore
	hasher auth.PasswordHasher
	tx     store.TxRunner
	logger *slog.Logger
}

// NewUserService creates a new UserService with the given dependencies.
// If logger is nil, a default logger will be used.
func NewUserService(
	users store.UserStore,
	tasks store.TaskStore,
	hasher auth.PasswordHasher,
	tx store.TxRunner,
	logger *slog.Logger,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		users:  users,
		tasks:  tasks,
		hasher: hasher,
		tx:     tx,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Get returns the user with the given ID.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetByEmail returns the user with the given email.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// Create registers a new user, hashing the supplied password.
// Returns store.ErrEmailExists if the email is already taken.
func (s *UserService) Create(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(params.Email, params.Password, params.FirstName, params.LastName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	digest, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordDigest = digest
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update to the user's own profile.
// The target must exist (store.ErrUserNotFound otherwise) and must belong to
// the acting principal (ErrNotProfileOwner otherwise); the existence check
// runs first so a non-existent id reads as not-found even for non-owners.
func (s *UserService) Update(
	ctx context.Context,
	principalEmail string,
	id int64,
	params UpdateUserParams,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.User
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.users.WithTx(tx)

		current, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkProfileOwner(principalEmail, current); err != nil {
			return err
		}

		// Work on a copy so a failed hash or write leaves the loaded entity
		// untouched.
		user := *current

		if v, ok := params.FirstName.Get(); ok {
			user.FirstName = v
		}
		if v, ok := params.LastName.Get(); ok {
			user.LastName = v
		}
		if v, ok := params.Email.Get(); ok {
			user.Email = v
		}

		// Re-hash only when a non-blank password was supplied.
		if v, ok := params.Password.Get(); ok && v != "" {
			if err := domain.ValidatePassword(v); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrValidation, err)
			}
			digest, err := s.hasher.Hash(v)
			if err != nil {
				log.Error("failed to hash password", slog.String("error", err.Error()))
				return fmt.Errorf("failed to hash password: %w", err)
			}
			user.PasswordDigest = digest
		}

		if err := users.Update(ctx, &user); err != nil {
			return err
		}
		updated = &user
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("user profile updated", slog.Int64("user_id", id))
	return updated, nil
}

// Delete removes the user's own profile.
// The order of guards mirrors Update; additionally the user must not be the
// assignee of any task (ErrUserHasTasks, a conflict, otherwise).
func (s *UserService) Delete(ctx context.Context, principalEmail string, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.users.WithTx(tx)
		tasks := s.tasks.WithTx(tx)

		user, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkProfileOwner(principalEmail, user); err != nil {
			return err
		}

		assigned, err := tasks.ExistsByAssigneeID(ctx, id)
		if err != nil {
			return err
		}
		if assigned {
			return ErrUserHasTasks
		}

		return users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Info("user profile deleted", slog.Int64("user_id", id))
	return nil
}

// checkProfileOwner allows the operation only when the acting principal's
// email matches the target user's email exactly.
func checkProfileOwner(principalEmail string, target *domain.User) error {
	if principalEmail == "" || principalEmail != target.Email {
		return ErrNotProfileOwner
	}
	return nil
}
