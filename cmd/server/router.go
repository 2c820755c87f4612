package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/phrazzld/task-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/service"
)

const apiTitle = "Task API"

// setupRouter builds the HTTP handler from the application's services.
func (app *application) setupRouter() http.Handler {
	return newRouter(app.taskService, app.config.Server, app.logger)
}

// newRouter mounts the task routes, the health check, and the OpenAPI
// document behind the standard middleware and CORS.
func newRouter(tasks service.TaskService, cfg config.ServerConfig, l *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(l))
	r.Use(middleware.Recoverer)

	r.Route("/tasks", api.NewTaskHandler(tasks, l).Routes)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			l.Error("Failed to write health check response", slog.String("error", err.Error()))
		}
	})

	r.Get("/docs/openapi.json", api.OpenAPIHandler(api.BuildOpenAPI(apiTitle, appVersion, api.TaskRoutes)))

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return cors(r)
}
