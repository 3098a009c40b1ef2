package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// Implementations assign IDs on Create and must honour context cancellation.
// No transactional guarantees are exposed to callers: concurrent updates to
// the same task are resolved by the backend (last write wins).
type TaskStore interface {
	// Create persists a new task and returns it with its assigned ID.
	// The input must already be valid according to domain rules.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// List returns every task in the backend's natural order.
	// An empty store yields an empty, non-nil slice.
	List(ctx context.Context) ([]*domain.Task, error)

	// Update applies patch to the task with the given ID and returns the result.
	// Returns ErrNotFound if no such task exists, or a ValidationError
	// wrapping domain.ErrInvalidID if the ID is malformed for this backend.
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes the task with the given ID.
	// Returns ErrNotFound if no such task exists.
	Delete(ctx context.Context, id string) error

	// Ping checks connectivity with the backend.
	Ping(ctx context.Context) error

	// Close releases the backend connection. It is safe to call once.
	Close(ctx context.Context) error
}
