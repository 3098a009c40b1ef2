// Package main implements the entry point for the task API server.
//
// The binary has two commands: serve (the default) runs the HTTP API, and
// migrate applies PostgreSQL schema migrations.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
)

// cliOptions holds the flags shared by every command.
type cliOptions struct {
	configFile string
	envFile    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the root command without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	serveCmd := newServeCmd(opts)
	rootCmd := &cobra.Command{
		Use:           "task-api",
		Short:         "REST API for managing tasks",
		Long:          `task-api serves create, list, update and delete operations for tasks backed by MongoDB, PostgreSQL or an in-memory store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Path to a config file (default: ./config.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newMigrateCmd(opts))
	return rootCmd
}

func newServeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := initializeApp(opts)
			if err != nil {
				return reportError(cmd, err)
			}

			app := newApplication(cfg, log)
			if err := app.Run(cmd.Context()); err != nil {
				log.Error("server exited with error", slog.String("error", redact.Error(err)))
				return err
			}
			return nil
		},
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp(opts *cliOptions) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadWithOptions(config.Options{
		ConfigFile: opts.configFile,
		EnvFile:    opts.envFile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("database_url", redact.URL(cfg.Database.URL)),
		slog.Bool("strict_not_found", cfg.API.StrictNotFound))

	return cfg, log, nil
}

// reportError prints startup failures that happen before a logger exists.
func reportError(cmd *cobra.Command, err error) error {
	cmd.PrintErrln("Error:", redact.Error(err))
	return err
}
