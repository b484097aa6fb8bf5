package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kdevnel/device-portal/internal/application/admin"
	"github.com/kdevnel/device-portal/internal/infrastructure/postgres"
)

var (
	seedSQLPath string
	clearYes    bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample device catalog",
	Long: `Insert the sample devices. Devices whose name already exists are skipped.

With --sql the inserts are written to a script instead of being executed.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every quote and device",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	seedCmd.Flags().StringVar(&seedSQLPath, "sql", "", "write an SQL script to this path instead of connecting")
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deletion")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if seedSQLPath != "" {
		out, err := os.Create(seedSQLPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", seedSQLPath, err)
		}
		defer out.Close()
		if err := admin.WriteSeedSQL(out); err != nil {
			return fmt.Errorf("write %s: %w", seedSQLPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ wrote %s (%d devices)\n", seedSQLPath, len(admin.SampleDevices))
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	maintenance, closePool, err := openMaintenance(ctx)
	if err != nil {
		return err
	}
	defer closePool()

	report, err := maintenance.Seed(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %d device(s) created, %d already present\n", report.Created, report.Skipped)
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	if !clearYes {
		return fmt.Errorf("refusing to delete data without --yes")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	maintenance, closePool, err := openMaintenance(ctx)
	if err != nil {
		return err
	}
	defer closePool()

	report, err := maintenance.Clear(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %d quote(s) and %d device(s) deleted\n", report.Quotes, report.Devices)
	return nil
}

func openMaintenance(ctx context.Context) (*admin.Maintenance, func(), error) {
	pool, err := openPool(ctx)
	if err != nil {
		return nil, nil, err
	}
	m := admin.NewMaintenance(postgres.NewDeviceRepository(pool), postgres.NewQuoteRepository(pool))
	return m, pool.Close, nil
}
