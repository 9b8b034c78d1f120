// Package main implements the attune-api server: an HTTP API for logging
// emotions, analyzing emotional patterns and recommending regulation
// strategies.
package main

import (
	"os"
	_ "time/tzdata" // IANA zones for the timezone query parameter

	"github.com/spf13/cobra"
)

var (
	// configFile is an optional path to a YAML config file
	configFile string
	// version information
	version = "dev"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the binary without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "attune-api",
		Short: "Emotional pattern and regulation strategy API",
		Long: `attune-api serves the emotion logging, pattern analysis and strategy
recommendation API.

Configuration is read from config.yaml in the working directory (or --config)
and ATTUNE_* environment variables, e.g. ATTUNE_DATABASE_URL.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newTokenCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadAppConfig(configFile)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logger, db, nil)
	if err != nil {
		_ = db.Close()
		return err
	}

	return app.Run(cmd.Context())
}
