package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/sqlbook/sqlbook/internal/catalog"
	"github.com/sqlbook/sqlbook/internal/report"
)

// ListEntry is one catalog entry in JSON list output.
type ListEntry struct {
	ID       int      `json:"id"`
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Concepts []string `json:"concepts"`
	Mutates  bool     `json:"mutates,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the guidebook queries",
		Long: `List every query in the guidebook catalog.

Each entry shows its position, slug, title, and the SQL concepts it
demonstrates. Slugs name queries for 'sqlbook show' and 'sqlbook run'.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	entries := catalog.All()

	if opts.Format == "json" {
		formatter := &OutputFormatter{
			Format:  opts.Format,
			Writer:  cmd.OutOrStdout(),
			Verbose: opts.Verbose,
		}
		out := make([]ListEntry, 0, len(entries))
		for _, q := range entries {
			out = append(out, ListEntry{
				ID:       q.ID,
				Slug:     q.Slug,
				Title:    q.Title,
				Concepts: q.Concepts,
				Mutates:  q.Mutates,
			})
		}
		return formatter.Success(out)
	}

	// The catalog listing is itself tabular, so it renders through the
	// same result-set table as query output.
	rs := report.NewResultSet("catalog", "id", "slug", "title", "concepts")
	for _, q := range entries {
		if err := rs.AddRow(
			report.Int(int64(q.ID)),
			report.Text(q.Slug),
			report.Text(q.Title),
			report.Text(strings.Join(q.Concepts, ", ")),
		); err != nil {
			return err
		}
	}
	return rs.RenderText(cmd.OutOrStdout())
}
