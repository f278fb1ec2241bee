package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sqlbook/sqlbook/internal/harness"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Suite string // path to a suite file; empty means the embedded default
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the conformance suite",
		Long: `Run the conformance suite against a fresh seeded database.

Each run seeds an in-memory database from scratch and executes the
suite's queries in order, so documented outputs are checked against
exactly the state the guidebook describes. The embedded default suite
covers every catalog entry; --suite substitutes a YAML file of your
own.

Exit codes:
  0 - All checks passed
  1 - One or more checks failed
  2 - Command error (unreadable suite, invalid check, etc.)

Examples:
  sqlbook check
  sqlbook check --suite ./my-suite.yaml
  sqlbook check --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Suite, "suite", "", "path to a suite YAML file (default: embedded suite)")

	return cmd
}

func runChecks(opts *CheckOptions, cmd *cobra.Command) error {
	suite, err := loadCheckSuite(opts.Suite)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load suite", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := harness.Run(ctx, suite)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to run suite", err)
	}
	slog.Debug("suite finished", "run_id", result.RunID, "suite", result.Suite, "pass", result.Pass)

	if opts.Format == "json" {
		return outputCheckJSON(cmd, result)
	}
	return outputCheckText(cmd, result)
}

// loadCheckSuite loads the named suite file, or the embedded default
// when path is empty.
func loadCheckSuite(path string) (*harness.Suite, error) {
	if path == "" {
		return harness.DefaultSuite()
	}
	return harness.LoadSuite(path)
}

// outputCheckJSON writes the harness result in the response envelope.
func outputCheckJSON(cmd *cobra.Command, result *harness.Result) error {
	status := "ok"
	if !result.Pass {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   result,
		RunID:  result.RunID,
	}

	if !result.Pass {
		response.Error = &CLIError{
			Code:    "E_CHECK_FAILED",
			Message: fmt.Sprintf("%d check(s) failed", len(result.Errors)),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.Pass {
		// Check failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("%d check(s) failed", len(result.Errors)))
	}
	return nil
}

// outputCheckText writes per-query pass/fail lines, failure details,
// and a summary.
func outputCheckText(cmd *cobra.Command, result *harness.Result) error {
	w := cmd.OutOrStdout()

	passed := 0
	for _, q := range result.Queries {
		if q.Failures == 0 {
			fmt.Fprintf(w, "✓ %s\n", q.Query)
			passed++
		} else {
			fmt.Fprintf(w, "✗ %s\n", q.Query)
		}
	}

	for _, e := range result.Errors {
		fmt.Fprintln(w)
		fmt.Fprintln(w, e)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Check Summary: %d passed, %d failed, %d total\n",
		passed, len(result.Queries)-passed, len(result.Queries))

	if !result.Pass {
		// Check failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("%d check(s) failed", len(result.Errors)))
	}

	fmt.Fprintln(w, "✓ All checks passed")
	return nil
}
