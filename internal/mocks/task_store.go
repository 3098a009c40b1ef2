package mocks

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Custom behavior functions
	CreateFn func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	ListFn   func(ctx context.Context) ([]*domain.Task, error)
	UpdateFn func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteFn func(ctx context.Context, id string) error
	PingFn   func(ctx context.Context) error
	CloseFn  func(ctx context.Context) error

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error

	// Call tracking
	CreateCalls int
	CloseCalls  int
}

// Create implements the TaskStore.Create method
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	m.CreateCalls++
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.Task, m.DefaultError
}

// List implements the TaskStore.List method
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// Update implements the TaskStore.Update method
func (m *MockTaskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return m.Task, m.DefaultError
}

// Delete implements the TaskStore.Delete method
func (m *MockTaskStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

// Ping implements the TaskStore.Ping method
func (m *MockTaskStore) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return m.DefaultError
}

// Close implements the TaskStore.Close method
func (m *MockTaskStore) Close(ctx context.Context) error {
	m.CloseCalls++
	if m.CloseFn != nil {
		return m.CloseFn(ctx)
	}
	return nil
}
