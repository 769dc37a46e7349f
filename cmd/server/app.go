package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlukashev/task-manager-api/internal/config"
	"github.com/mlukashev/task-manager-api/internal/platform/postgres"
	"github.com/mlukashev/task-manager-api/internal/service"
	"github.com/mlukashev/task-manager-api/internal/service/auth"
	"github.com/mlukashev/task-manager-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore   store.UserStore
	statusStore store.TaskStatusStore
	labelStore  store.LabelStore
	taskStore   store.TaskStore

	// Services
	jwtService        auth.JWTService
	passwordHasher    auth.PasswordHasher
	authService       *service.AuthService
	userService       *service.UserService
	taskStatusService *service.TaskStatusService
	labelService      *service.LabelService
	taskService       *service.TaskService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	hasher := auth.NewBcryptHasher()
	app.passwordHasher = hasher

	app.userStore = postgres.NewUserStore(db, logger)
	app.statusStore = postgres.NewTaskStatusStore(db, logger)
	app.labelStore = postgres.NewLabelStore(db, logger)
	app.taskStore = postgres.NewTaskStore(db, logger)

	txRunner := store.NewTxRunner(db)

	app.authService = service.NewAuthService(app.userStore, hasher, app.jwtService, logger)
	app.userService = service.NewUserService(app.userStore, app.taskStore, hasher, txRunner, logger)
	app.taskStatusService = service.NewTaskStatusService(app.statusStore, app.taskStore, txRunner, logger)
	app.labelService = service.NewLabelService(app.labelStore, app.taskStore, txRunner, logger)
	app.taskService = service.NewTaskService(
		app.taskStore, app.statusStore, app.userStore, app.labelStore, txRunner, logger)

	logger.Info("application initialized successfully")
	return app, nil
}

// seedAdminUser creates the configured admin account when it does not exist
// yet, so a fresh deployment has a login to start from.
func (app *application) seedAdminUser(ctx context.Context) error {
	if app.config.Seed.AdminEmail == "" {
		return nil
	}

	_, err := app.userService.Create(ctx, service.CreateUserParams{
		Email:    app.config.Seed.AdminEmail,
		Password: app.config.Seed.AdminPassword,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			app.logger.Debug("admin user already present",
				"email", app.config.Seed.AdminEmail)
			return nil
		}
		return err
	}

	app.logger.Info("admin user seeded", "email", app.config.Seed.AdminEmail)
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
