package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskServiceError is a custom error type for task service errors.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// TaskService provides task-related operations
type TaskService interface {
	// CreateTask validates the fields, applies defaults and persists a new task
	CreateTask(ctx context.Context, title string, description *string, status *domain.Status) (*domain.Task, error)

	// ListTasks returns every task in storage order
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// UpdateTask applies a validated partial update and returns the resulting task
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask removes the task with the given id
	DeleteTask(ctx context.Context, id string) error

	// CheckHealth reports whether the underlying store answers a ping
	CheckHealth(ctx context.Context) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService
// It returns an error if the store is nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	title string,
	description *string,
	status *domain.Status,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title, description, status)
	if err != nil {
		log.Debug("rejected invalid task", slog.String("error", err.Error()))
		return nil, err
	}

	created, err := s.taskStore.Create(ctx, task)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		slog.String("task_id", created.ID),
		slog.String("status", string(created.Status)))
	return created, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list_tasks", "failed to retrieve tasks", err)
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask
// The whole patch is validated before anything is written.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id string,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("task_id", id))

	if err := patch.Validate(); err != nil {
		log.Debug("rejected invalid task patch", slog.String("error", err.Error()))
		return nil, err
	}

	updated, err := s.taskStore.Update(ctx, id, patch)
	if err != nil {
		if domain.IsValidationError(err) {
			return nil, err
		}
		if store.IsNotFoundError(err) {
			log.Debug("task not found for update")
			return nil, NewTaskServiceError("update_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to update task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated", slog.String("status", string(updated.Status)))
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("task_id", id))

	if err := s.taskStore.Delete(ctx, id); err != nil {
		if domain.IsValidationError(err) {
			return err
		}
		if store.IsNotFoundError(err) {
			log.Debug("task not found for delete")
			return NewTaskServiceError("delete_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to delete task", slog.String("error", err.Error()))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted")
	return nil
}

// CheckHealth implements TaskService.CheckHealth
func (s *taskServiceImpl) CheckHealth(ctx context.Context) error {
	if err := s.taskStore.Ping(ctx); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("task store ping failed",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", ErrTaskStoreUnavailable, err)
	}
	return nil
}
