package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/postgres"
)

func newMigrateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <" + strings.Join(postgres.MigrationCommands, "|") + ">",
		Short:     "Run PostgreSQL schema migrations",
		Long:      `Run the schema migrations embedded in the binary against the configured PostgreSQL database. Only the postgres driver uses migrations.`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: postgres.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := initializeApp(opts)
			if err != nil {
				return reportError(cmd, err)
			}

			if err := runMigration(cmd, cfg, log, args[0]); err != nil {
				log.Error("migration failed", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}
}

func runMigration(cmd *cobra.Command, cfg *config.Config, log *slog.Logger, command string) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf(
			"migrations are only supported for the %s driver, configured driver is %s",
			config.DriverPostgres,
			cfg.Database.Driver,
		)
	}

	db, err := postgres.Open(cmd.Context(), cfg.Database.URL, cfg.Database.ConnectTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database connection", slog.String("error", closeErr.Error()))
		}
	}()

	return postgres.Migrate(cmd.Context(), db, command, log)
}
