package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskStore keeps tasks in a map guarded by a mutex and remembers insertion
// order so List behaves like a collection scan.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[uuid.UUID]domain.Task
	order  []uuid.UUID
	logger *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty store. If logger is nil, a default logger is used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		tasks:  make(map[uuid.UUID]domain.Task),
		logger: logger.With(slog.String("component", "memory_task_store")),
	}
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.New()
	stored := cloneTask(*task)
	stored.ID = id.String()

	s.mu.Lock()
	s.tasks[id] = stored
	s.order = append(s.order, id)
	s.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).Debug("task created",
		slog.String("task_id", stored.ID))

	out := cloneTask(stored)
	return &out, nil
}

// List implements store.TaskStore.List.
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*domain.Task, 0, len(s.order))
	for _, id := range s.order {
		t := cloneTask(s.tasks[id])
		tasks = append(tasks, &t)
	}
	return tasks, nil
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := parseID(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tasks[key]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	patch.Apply(&current)
	s.tasks[key] = current

	out := cloneTask(current)
	return &out, nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := parseID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[key]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, key)
	for i, existing := range s.order {
		if existing == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Ping implements store.TaskStore.Ping.
func (s *TaskStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close implements store.TaskStore.Close.
func (s *TaskStore) Close(context.Context) error {
	return nil
}

func parseID(id string) (uuid.UUID, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID)
	}
	return key, nil
}

// cloneTask copies t so callers never share the description pointer with the store.
func cloneTask(t domain.Task) domain.Task {
	if t.Description != nil {
		desc := *t.Description
		t.Description = &desc
	}
	return t
}
