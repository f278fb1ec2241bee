package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sqlbook/sqlbook/internal/store"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Database string
}

// SeedOutput is the JSON payload for a successful seed.
type SeedOutput struct {
	Database string `json:"database"`
	Tables   int    `json:"tables"`
	Rows     int    `json:"rows"`
}

// seedTables names the storefront tables in insert order.
var seedTables = []string{"customers", "products", "orders", "order_items"}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create and seed a storefront database file",
		Long: `Create a SQLite database file with the storefront schema and fixtures.

The target must not already hold the storefront tables; seeding an
existing database fails rather than guessing at its state. Delete the
file to start over.

Example:
  sqlbook seed --db ./storefront.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSeed(opts *SeedOptions, cmd *cobra.Command) error {
	if opts.Database == ":memory:" {
		return NewExitError(ExitCommandError, "an in-memory database does not outlive the command; pass a file path")
	}

	slog.Info("seeding database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := st.Init(ctx); err != nil {
		return WrapExitError(ExitCommandError, "failed to initialize database", err)
	}
	if err := st.Seed(ctx); err != nil {
		return WrapExitError(ExitCommandError, "failed to seed database", err)
	}

	total := 0
	for _, table := range seedTables {
		var n int
		if err := st.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to count %s", table), err)
		}
		total += n
	}
	slog.Info("database seeded", "path", opts.Database, "rows", total)

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(SeedOutput{
			Database: opts.Database,
			Tables:   len(seedTables),
			Rows:     total,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Seeded %s (%d rows across %d tables)\n", opts.Database, total, len(seedTables))
	return nil
}
