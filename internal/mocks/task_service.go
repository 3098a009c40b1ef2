package mocks

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	CreateTaskFn  func(ctx context.Context, title string, description *string, status *domain.Status) (*domain.Task, error)
	ListTasksFn   func(ctx context.Context) ([]*domain.Task, error)
	UpdateTaskFn  func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTaskFn  func(ctx context.Context, id string) error
	CheckHealthFn func(ctx context.Context) error

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error
}

// CreateTask implements the TaskService.CreateTask method
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	title string,
	description *string,
	status *domain.Status,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, title, description, status)
	}
	return m.Task, m.DefaultError
}

// ListTasks implements the TaskService.ListTasks method
func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// UpdateTask implements the TaskService.UpdateTask method
func (m *MockTaskService) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, patch)
	}
	return m.Task, m.DefaultError
}

// DeleteTask implements the TaskService.DeleteTask method
func (m *MockTaskService) DeleteTask(ctx context.Context, id string) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.DefaultError
}

// CheckHealth implements the TaskService.CheckHealth method
func (m *MockTaskService) CheckHealth(ctx context.Context) error {
	if m.CheckHealthFn != nil {
		return m.CheckHealthFn(ctx)
	}
	return nil
}
