package main

// Run database migrations:
//   go run ./cmd/migrate up
//   go run ./cmd/migrate status

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/storage/db"
	"resume-analyzer/internal/shared/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or inspect the database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(cmd.Context(), db.RunMigrations)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print applied and pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(cmd.Context(), db.MigrationStatus)
			},
		},
	)
	return root
}

func withDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	cfg := config.Load()
	telemetry.SetLevel(cfg.LogLevel)

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer sqlDB.Close()

	if err := fn(ctx, sqlDB); err != nil {
		return err
	}
	telemetry.Info("migrate.done", nil)
	return nil
}
