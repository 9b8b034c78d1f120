package main

import (
	"fmt"

	"github.com/phrazzld/attune-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// migrationsSourceDir is where `migrate create` writes new files.
var migrationsSourceDir = "internal/platform/postgres/migrations"

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down|status|version|create NAME]",
		Short: "Run database schema migrations",
		Long: `Run the embedded goose migrations against the configured database.

Examples:
  # Apply all pending migrations
  attune-api migrate up

  # Show applied and pending migrations
  attune-api migrate status

  # Create a new SQL migration in the source tree
  attune-api migrate create add_emotion_index`,
		Args:      validateMigrateArgs,
		ValidArgs: []string{"up", "down", "status", "version", "create"},
		RunE:      runMigrate,
	}
	cmd.Flags().StringVar(&migrationsSourceDir, "dir", migrationsSourceDir, "migrations directory for create")
	return cmd
}

func validateMigrateArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("a migration command is required (up, down, status, version or create NAME)")
	}
	switch args[0] {
	case "create":
		if len(args) != 2 {
			return fmt.Errorf("create requires exactly one NAME argument")
		}
	case "up", "down", "status", "version":
		if len(args) != 1 {
			return fmt.Errorf("%s takes no further arguments", args[0])
		}
	default:
		return fmt.Errorf("%w: %s", postgres.ErrUnknownMigrationCommand, args[0])
	}
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if args[0] == "create" {
		if err := postgres.CreateMigration(migrationsSourceDir, args[1]); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		return nil
	}

	cfg, logger, err := loadAppConfig(configFile)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return postgres.NewMigrator(db, logger).Run(cmd.Context(), args[0])
}
