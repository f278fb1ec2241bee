package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sqlbook/sqlbook/internal/catalog"
	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
}

// RunOutput is the JSON payload for a run invocation.
type RunOutput struct {
	Database string              `json:"database"`
	Results  []*report.ResultSet `json:"results"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [query ...]",
		Short: "Run guidebook queries and print their results",
		Long: `Run guidebook queries against a storefront database.

With no arguments, runs the entire catalog in guidebook order. Named
queries run in the order given; names are catalog slugs (see 'sqlbook
list').

By default queries run against a fresh in-memory database seeded with
the fixture data, so results match the documented outputs exactly.
With --db pointing at a file, the database is opened as-is: it must
already hold the storefront schema (see 'sqlbook seed'), and the
record-sale entry will lower its stock levels for real.

Examples:
  sqlbook run
  sqlbook run top-electronics price-ranks
  sqlbook run --db ./storefront.db monthly-sales
  sqlbook run --format json customer-segments`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueries(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", ":memory:", "path to SQLite database")

	return cmd
}

func runQueries(opts *RunOptions, args []string, cmd *cobra.Command) error {
	// Resolve every name before touching the database, so a typo in the
	// second argument cannot leave a half-run mutation behind.
	var targets []catalog.Query
	if len(args) == 0 {
		targets = catalog.All()
	} else {
		for _, arg := range args {
			q, ok := catalog.BySlug(arg)
			if !ok {
				msg := fmt.Sprintf("unknown query %q (try 'sqlbook list')", arg)
				if opts.Format == "json" {
					formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
					_ = formatter.Error("E_UNKNOWN_QUERY", msg, nil)
				}
				return NewExitError(ExitCommandError, msg)
			}
			targets = append(targets, q)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openRunStore(ctx, opts.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	runID := uuid.Must(uuid.NewV7()).String()
	slog.Info("run starting", "run_id", runID, "db", opts.Database, "queries", len(targets))

	w := cmd.OutOrStdout()
	output := RunOutput{Database: opts.Database, Results: make([]*report.ResultSet, 0, len(targets))}

	for i, q := range targets {
		slog.Debug("running query", "run_id", runID, "slug", q.Slug)
		rs, err := q.Run(ctx, st)
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("failed to run %s", q.Slug), err)
		}
		output.Results = append(output.Results, rs)

		if opts.Format == "json" {
			continue
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "-- %d. %s: %s\n", q.ID, q.Slug, q.Title)
		if err := rs.RenderText(w); err != nil {
			return err
		}
	}

	if opts.Format == "json" {
		return outputRunJSON(w, runID, output)
	}
	return nil
}

// openRunStore opens the target database. An in-memory database gets
// the schema and fixtures; a file database is opened as-is.
func openRunStore(ctx context.Context, path string) (*store.Store, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	if path != ":memory:" {
		return st, nil
	}

	if err := st.Init(ctx); err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to initialize database", err)
	}
	if err := st.Seed(ctx); err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to seed database", err)
	}
	return st, nil
}

// outputRunJSON writes the collected results in the response envelope.
func outputRunJSON(w io.Writer, runID string, output RunOutput) error {
	response := CLIResponse{
		Status: "ok",
		Data:   output,
		RunID:  runID,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}
