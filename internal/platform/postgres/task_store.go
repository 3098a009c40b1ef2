package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// The store takes ownership of db and closes it in Close.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db *sql.DB, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id := uuid.New()
	now := s.now()

	query := `
		INSERT INTO tasks (id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		id,
		task.Title,
		task.Description,
		string(task.Status),
		now,
		now,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	created := *task
	created.ID = id.String()

	log.Debug("task created", slog.String("task_id", created.ID))
	return &created, nil
}

// List implements store.TaskStore.List
// Tasks are returned oldest first.
func (s *PostgresTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, status
		FROM tasks
		ORDER BY created_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "row iteration failed", MapError(err))
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update
// The row is locked while the patch is applied so concurrent patches to
// different fields of the same task do not overwrite each other.
func (s *PostgresTaskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var updated *domain.Task
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		current, err := selectTaskForUpdate(ctx, tx, taskID)
		if err != nil {
			return err
		}

		if !patch.IsEmpty() {
			patch.Apply(current)
			if err := writeTask(ctx, tx, taskID, current, s.now()); err != nil {
				return err
			}
		}

		updated = current
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for update", slog.String("task_id", id))
		} else {
			log.Error("failed to update task",
				slog.String("error", err.Error()),
				slog.String("task_id", id))
		}
		return nil, err
	}

	log.Debug("task updated", slog.String("task_id", id))
	return updated, nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found for delete", slog.String("task_id", id))
			return store.ErrTaskNotFound
		}
		return store.NewStoreError("task", "delete", "rows affected unavailable", err)
	}

	log.Debug("task deleted", slog.String("task_id", id))
	return nil
}

// Ping implements store.TaskStore.Ping
func (s *PostgresTaskStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close implements store.TaskStore.Close
func (s *PostgresTaskStore) Close(context.Context) error {
	return s.db.Close()
}

// selectTaskForUpdate loads a task and locks its row until q's transaction ends.
func selectTaskForUpdate(ctx context.Context, q store.DBTX, id uuid.UUID) (*domain.Task, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, title, description, status
		FROM tasks
		WHERE id = $1
		FOR UPDATE
	`, id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "update", "select failed", MapError(err))
	}
	return task, nil
}

func writeTask(ctx context.Context, q store.DBTX, id uuid.UUID, task *domain.Task, now time.Time) error {
	result, err := q.ExecContext(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, updated_at = $4
		WHERE id = $5
	`,
		task.Title,
		task.Description,
		string(task.Status),
		now,
		id,
	)
	if err != nil {
		return store.NewStoreError("task", "update", "update failed", MapError(err))
	}
	return CheckRowsAffected(result, "task")
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		id          uuid.UUID
		task        domain.Task
		description sql.NullString
		status      string
	)

	if err := row.Scan(&id, &task.Title, &description, &status); err != nil {
		return nil, err
	}

	task.ID = id.String()
	task.Status = domain.Status(status)
	if description.Valid {
		desc := description.String
		task.Description = &desc
	}
	return &task, nil
}

func parseID(id string) (uuid.UUID, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID)
	}
	return taskID, nil
}
