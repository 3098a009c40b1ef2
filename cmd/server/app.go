package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// application holds the dependencies of a running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	openStore   storeOpener
	taskStore   store.TaskStore
	taskService service.TaskService

	lifecycle *lifecycle

	mu   sync.Mutex
	addr net.Addr
}

// newApplication creates an application that has not connected to storage yet.
func newApplication(cfg *config.Config, logger *slog.Logger) *application {
	if logger == nil {
		logger = slog.Default()
	}

	return &application{
		config:    cfg,
		logger:    logger,
		openStore: openTaskStore,
		lifecycle: newLifecycle(logger),
	}
}

// Run connects to storage, serves HTTP until ctx is cancelled or the process
// receives SIGINT or SIGTERM, then shuts down. A storage connection failure
// is returned immediately without opening the listener.
func (app *application) Run(ctx context.Context) error {
	app.lifecycle.transition(StateConnecting)

	taskStore, err := app.openStore(ctx, app.config.Database, app.logger)
	if err != nil {
		app.lifecycle.transition(StateStopped)
		return fmt.Errorf("failed to connect to storage: %w", err)
	}
	app.taskStore = taskStore

	app.taskService, err = service.NewTaskService(taskStore, app.logger)
	if err != nil {
		app.cleanup(ctx)
		app.lifecycle.transition(StateStopped)
		return fmt.Errorf("failed to create task service: %w", err)
	}

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// listenAddr returns the address the server is bound to, or nil before the
// listener is open.
func (app *application) listenAddr() net.Addr {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.addr
}

// cleanup closes the storage connection. Errors are logged, not returned.
func (app *application) cleanup(ctx context.Context) {
	if app.taskStore == nil {
		return
	}

	if err := app.taskStore.Close(ctx); err != nil {
		app.logger.Error("error closing storage connection", slog.String("error", err.Error()))
		return
	}
	app.logger.Info("storage connection closed")
}
