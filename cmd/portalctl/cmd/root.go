// Package cmd provides the portalctl commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kdevnel/device-portal/internal/infrastructure/postgres"
	"github.com/kdevnel/device-portal/pkg/config"
	"github.com/kdevnel/device-portal/pkg/logger"
)

var (
	envFile string
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "portalctl",
	Short: "Administer the device portal database",
	Long: `portalctl runs maintenance tasks against the device portal database.

Examples:
  portalctl migrate
  portalctl seed
  portalctl seed --sql seed.sql
  portalctl clear --yes`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(clearCmd)
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Variables already set in the environment win over the file.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	level := loaded.App.LogLevel
	if verbose {
		level = "debug"
	}
	logger.New(logger.Config{Env: loaded.App.Env, Level: level, Service: "portalctl"})
	cfg = loaded
	return nil
}

// openPool connects to PostgreSQL. portalctl has no in-memory mode.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	if cfg.Storage.Driver != config.StoragePostgres {
		return nil, fmt.Errorf("portalctl requires STORAGE_DRIVER=%s, got %q", config.StoragePostgres, cfg.Storage.Driver)
	}
	return postgres.NewPool(ctx, cfg.DB)
}
