package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kdevnel/device-portal/internal/infrastructure/postgres"
)

var migrateList bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Apply the embedded SQL migrations that have not run yet.

Each migration runs in its own transaction and is recorded in
schema_migrations, so running migrate twice is harmless.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateList, "list", false, "print the embedded migrations without connecting")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if migrateList {
		names, err := postgres.Migrations()
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %d migration(s) applied\n", applied)
	return nil
}
