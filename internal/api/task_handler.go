package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService    service.TaskService
	strictNotFound bool
	logger         *slog.Logger
}

// NewTaskHandler creates a new TaskHandler. A nil apiConfig selects the
// default behaviour, where update and delete of a missing task succeed.
func NewTaskHandler(
	taskService service.TaskService,
	apiConfig *config.APIConfig,
	logger *slog.Logger,
) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	h := &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
	if apiConfig != nil {
		h.strictNotFound = apiConfig.StrictNotFound
	}
	return h
}

// RegisterRoutes mounts the task endpoints on r.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", Handle(h.CreateTask))
		r.Get("/", Handle(h.ListTasks))
		r.Put("/{id}", Handle(h.UpdateTask))
		r.Delete("/{id}", Handle(h.DeleteTask))
	})
}

// CreateTask handles POST /tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) error {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	if err := shared.ValidateRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(r.Context(), req.Title, req.Description, req.Status)
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newTaskResponse(task))
	return nil
}

// ListTasks handles GET /tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) error {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskListResponse(tasks))
	return nil
}

// UpdateTask handles PUT /tasks/{id} requests
// Unless strict not-found handling is enabled, a missing task answers 200
// with a null body.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, req.ToPatch())
	if err != nil {
		if store.IsNotFoundError(err) && !h.strictNotFound {
			logger.FromContextOrDefault(r.Context(), h.logger).
				Debug("update of missing task answered with null", slog.String("task_id", id))
			shared.RespondWithJSON(w, r, http.StatusOK, nil)
			return nil
		}
		return err
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(task))
	return nil
}

// DeleteTask handles DELETE /tasks/{id} requests
// Unless strict not-found handling is enabled, deleting a missing task is
// confirmed like any other delete.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		if !store.IsNotFoundError(err) || h.strictNotFound {
			return err
		}
		logger.FromContextOrDefault(r.Context(), h.logger).
			Debug("delete of missing task confirmed", slog.String("task_id", id))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: TaskDeletedMessage})
	return nil
}

// Health handles GET /health requests. It answers 503 when the store does
// not respond to a ping.
func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) error {
	if err := h.taskService.CheckHealth(r.Context()); err != nil {
		return NewStatusError(http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable), err)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Error("failed to write health check response", slog.String("error", err.Error()))
	}
	return nil
}
