package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sqlbook/sqlbook/internal/catalog"
)

// ShowOutput is the JSON payload for a show invocation.
type ShowOutput struct {
	ID        int      `json:"id"`
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Concepts  []string `json:"concepts"`
	Mutates   bool     `json:"mutates,omitempty"`
	Statement string   `json:"statement"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <query>",
		Short: "Print one query's annotated SQL",
		Long: `Print the annotated SQL of one guidebook entry.

The query may be named by slug or by catalog position. The output is
valid SQL with the annotations as comments, so it can be piped straight
into sqlite3 against a seeded database.

Examples:
  sqlbook show top-electronics
  sqlbook show 7
  sqlbook show price-ranks --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, name string, cmd *cobra.Command) error {
	q, ok := lookupQuery(name)
	if !ok {
		msg := fmt.Sprintf("unknown query %q (try 'sqlbook list')", name)
		if opts.Format == "json" {
			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			_ = formatter.Error("E_UNKNOWN_QUERY", msg, nil)
		}
		return NewExitError(ExitCommandError, msg)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(ShowOutput{
			ID:        q.ID,
			Slug:      q.Slug,
			Title:     q.Title,
			Concepts:  q.Concepts,
			Mutates:   q.Mutates,
			Statement: q.Statement,
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "-- %d. %s: %s\n", q.ID, q.Slug, q.Title)
	fmt.Fprintf(w, "-- Concepts: %s\n", strings.Join(q.Concepts, ", "))
	if q.Mutates {
		fmt.Fprintln(w, "-- Mutates the database when run.")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, q.Statement)
	return nil
}

// lookupQuery resolves a slug or a 1-based catalog position.
func lookupQuery(name string) (catalog.Query, bool) {
	if q, ok := catalog.BySlug(name); ok {
		return q, true
	}
	if id, err := strconv.Atoi(name); err == nil {
		return catalog.ByID(id)
	}
	return catalog.Query{}, false
}
