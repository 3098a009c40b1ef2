package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/phrazzld/task-api/internal/platform/mongo"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// storeOpener connects to the configured backend.
type storeOpener func(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (store.TaskStore, error)

// openTaskStore connects to the backend selected by cfg.Driver. Connection
// attempts are bounded by cfg.ConnectTimeout and are not retried.
func openTaskStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (store.TaskStore, error) {
	log := logger.With(
		slog.String("driver", cfg.Driver),
		slog.String("url", redact.URL(cfg.URL)),
	)
	start := time.Now()

	var (
		taskStore store.TaskStore
		err       error
	)
	switch cfg.Driver {
	case config.DriverMemory:
		taskStore = memory.NewTaskStore(logger)
	case config.DriverMongo:
		taskStore, err = openMongo(ctx, cfg, logger)
	case config.DriverPostgres:
		taskStore, err = openPostgres(ctx, cfg, logger)
	default:
		err = fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if err != nil {
		log.Error("failed to connect to storage", slog.String("error", redact.Error(err)))
		return nil, err
	}

	log.Info("storage connection established",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return taskStore, nil
}

func openMongo(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (store.TaskStore, error) {
	s, err := mongo.Connect(ctx, cfg.URL, cfg.Name, cfg.ConnectTimeout, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (store.TaskStore, error) {
	db, err := postgres.Open(ctx, cfg.URL, cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, db, "up", logger); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return postgres.NewPostgresTaskStore(db, logger), nil
}
