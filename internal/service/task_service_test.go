package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func statusPtr(s domain.Status) *domain.Status { return &s }

func newService(t *testing.T, taskStore store.TaskStore) service.TaskService {
	t.Helper()
	svc, err := service.NewTaskService(taskStore, nil)
	require.NoError(t, err)
	return svc
}

func TestNewTaskService_NilStore(t *testing.T) {
	svc, err := service.NewTaskService(nil, nil)
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateTask(t *testing.T) {
	t.Run("defaults_status_and_persists", func(t *testing.T) {
		var stored *domain.Task
		mockStore := &mocks.MockTaskStore{
			CreateFn: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
				stored = task
				created := *task
				created.ID = "abc"
				return &created, nil
			},
		}

		got, err := newService(t, mockStore).CreateTask(context.Background(), "Buy milk", nil, nil)
		require.NoError(t, err)

		assert.Equal(t, "abc", got.ID)
		assert.Equal(t, domain.StatusPending, got.Status)
		assert.Nil(t, got.Description)
		require.NotNil(t, stored)
		assert.Equal(t, "Buy milk", stored.Title)
	})

	t.Run("invalid_input_never_reaches_store", func(t *testing.T) {
		tests := []struct {
			name    string
			title   string
			status  *domain.Status
			wantErr error
		}{
			{name: "missing_title", title: "", wantErr: domain.ErrEmptyTitle},
			{name: "bogus_status", title: "x", status: statusPtr("Bogus"), wantErr: domain.ErrInvalidStatus},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockStore := &mocks.MockTaskStore{}

				_, err := newService(t, mockStore).CreateTask(context.Background(), tt.title, nil, tt.status)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, domain.IsValidationError(err))
				assert.Zero(t, mockStore.CreateCalls)
			})
		}
	})

	t.Run("store_failure_is_wrapped", func(t *testing.T) {
		dbErr := errors.New("connection lost")
		mockStore := &mocks.MockTaskStore{DefaultError: dbErr}

		_, err := newService(t, mockStore).CreateTask(context.Background(), "x", strPtr("d"), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)

		var svcErr *service.TaskServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create_task", svcErr.Operation)
	})
}

func TestListTasks(t *testing.T) {
	t.Run("nil_from_store_becomes_empty", func(t *testing.T) {
		tasks, err := newService(t, &mocks.MockTaskStore{}).ListTasks(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("passes_order_through", func(t *testing.T) {
		mockStore := &mocks.MockTaskStore{Tasks: []*domain.Task{
			{ID: "1", Title: "a", Status: domain.StatusPending},
			{ID: "2", Title: "b", Status: domain.StatusCompleted},
		}}

		tasks, err := newService(t, mockStore).ListTasks(context.Background())
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "1", tasks[0].ID)
		assert.Equal(t, "2", tasks[1].ID)
	})

	t.Run("store_failure", func(t *testing.T) {
		_, err := newService(t, &mocks.MockTaskStore{DefaultError: errors.New("boom")}).
			ListTasks(context.Background())
		assert.Error(t, err)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Run("invalid_patch_is_rejected_before_store", func(t *testing.T) {
		called := false
		mockStore := &mocks.MockTaskStore{
			UpdateFn: func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
				called = true
				return nil, nil
			},
		}

		_, err := newService(t, mockStore).UpdateTask(context.Background(), "1",
			domain.TaskPatch{Title: strPtr("ok"), Status: statusPtr("Done")})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
		assert.False(t, called, "a partially valid patch writes nothing")
	})

	t.Run("passes_patch_to_store", func(t *testing.T) {
		mockStore := &mocks.MockTaskStore{
			UpdateFn: func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
				task := &domain.Task{ID: id, Title: "Buy milk", Status: domain.StatusPending}
				patch.Apply(task)
				return task, nil
			},
		}

		got, err := newService(t, mockStore).UpdateTask(context.Background(), "1",
			domain.TaskPatch{Status: statusPtr(domain.StatusCompleted)})
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", got.Title)
		assert.Equal(t, domain.StatusCompleted, got.Status)
	})

	t.Run("not_found", func(t *testing.T) {
		mockStore := &mocks.MockTaskStore{DefaultError: store.ErrTaskNotFound}

		_, err := newService(t, mockStore).UpdateTask(context.Background(), "1", domain.TaskPatch{})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("malformed_id_stays_a_validation_error", func(t *testing.T) {
		idErr := domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID)
		mockStore := &mocks.MockTaskStore{DefaultError: idErr}

		_, err := newService(t, mockStore).UpdateTask(context.Background(), "zz", domain.TaskPatch{})
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})
}

func TestDeleteTask(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{name: "success"},
		{name: "not_found", storeErr: store.ErrTaskNotFound, wantErr: store.ErrNotFound},
		{
			name:     "malformed_id",
			storeErr: domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID),
			wantErr:  domain.ErrValidation,
		},
		{name: "storage_failure", storeErr: errors.New("timeout"), wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := &mocks.MockTaskStore{DefaultError: tt.storeErr}
			err := newService(t, mockStore).DeleteTask(context.Background(), "1")

			switch {
			case tt.storeErr == nil:
				assert.NoError(t, err)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				var svcErr *service.TaskServiceError
				assert.ErrorAs(t, err, &svcErr)
				assert.False(t, store.IsNotFoundError(err))
			}
		})
	}
}

func TestCheckHealth(t *testing.T) {
	assert.NoError(t, newService(t, &mocks.MockTaskStore{}).CheckHealth(context.Background()))

	mockStore := &mocks.MockTaskStore{
		PingFn: func(ctx context.Context) error { return errors.New("no reachable servers") },
	}
	err := newService(t, mockStore).CheckHealth(context.Background())
	assert.ErrorIs(t, err, service.ErrTaskStoreUnavailable)
}
