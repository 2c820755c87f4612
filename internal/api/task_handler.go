package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/paginate"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service"
)

// TaskIDParam is the chi URL parameter holding a task id.
const TaskIDParam = "id"

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if tasks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("task service cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// Routes mounts the task endpoints on r.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Get("/", h.ListTasks)
	r.Post("/", h.CreateTask)
	r.Get("/{"+TaskIDParam+"}", h.GetTask)
	r.Put("/{"+TaskIDParam+"}", h.UpdateTask)
	r.Delete("/{"+TaskIDParam+"}", h.DeleteTask)
}

// ListTasks handles GET /tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := paginate.ParseQuery(r.URL.Path, r.URL.Query())

	page, err := h.tasks.ListTasks(r.Context(), q)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// GetTask handles GET /tasks/{id}
// A missing task is answered with 200 and an empty object.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, TaskIDParam)
	if err != nil {
		log.Debug("invalid task id", slog.String("task_id", chi.URLParam(r, TaskIDParam)))
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, TaskNotFoundMessage(id.String()))
		return
	}
	if task == nil {
		shared.RespondWithJSON(w, r, http.StatusOK, struct{}{})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// CreateTask handles POST /tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	c, err := validateTaskInput(w, r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	id, err := h.tasks.CreateTask(r.Context(), c)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateTaskResponse{ID: id})
}

// UpdateTask handles PUT /tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, TaskIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	c, err := validateTaskInput(w, r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.tasks.UpdateTask(r.Context(), id, c); err != nil {
		HandleAPIError(w, r, err, TaskNotFoundMessage(id.String()))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteTask handles DELETE /tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, TaskIDParam)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, TaskNotFoundMessage(id.String()))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
