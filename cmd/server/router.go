package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mlukashev/task-manager-api/internal/api"
	apimiddleware "github.com/mlukashev/task-manager-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.authService)
	userHandler := api.NewUserHandler(app.userService)
	statusHandler := api.NewTaskStatusHandler(app.taskStatusService)
	labelHandler := api.NewLabelHandler(app.labelService)
	taskHandler := api.NewTaskHandler(app.taskService)

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints: login and registration.
		r.Post("/login", authHandler.Login)
		r.Post("/users", userHandler.Create)

		// Everything else requires a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/users", userHandler.List)
			r.Get("/users/{id}", userHandler.Get)
			r.Put("/users/{id}", userHandler.Update)
			r.Delete("/users/{id}", userHandler.Delete)

			r.Get("/task_statuses", statusHandler.List)
			r.Post("/task_statuses", statusHandler.Create)
			r.Get("/task_statuses/{id}", statusHandler.Get)
			r.Put("/task_statuses/{id}", statusHandler.Update)
			r.Delete("/task_statuses/{id}", statusHandler.Delete)

			r.Get("/labels", labelHandler.List)
			r.Post("/labels", labelHandler.Create)
			r.Get("/labels/{id}", labelHandler.Get)
			r.Put("/labels/{id}", labelHandler.Update)
			r.Delete("/labels/{id}", labelHandler.Delete)

			r.Get("/tasks", taskHandler.List)
			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Put("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
