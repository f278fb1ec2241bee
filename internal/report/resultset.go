// Package report holds the tabular result model shared by the query catalog,
// the conformance harness, and the CLI. A ResultSet is an ordered set of rows
// of sealed Value cells; it renders as an aligned text table for terminal
// output and as canonical JSON for golden-file comparison.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ResultSet is the generic output of one catalog query.
// Rows preserve the order the query produced; every query in the catalog
// carries an explicit ORDER BY, so this order is a total order.
type ResultSet struct {
	// Name identifies the producing query (its slug).
	Name string `json:"name"`

	// Columns holds the projected column names in SELECT order.
	Columns []string `json:"columns"`

	// Rows holds the cells, one slice per row, aligned with Columns.
	Rows [][]Value `json:"rows"`
}

// NewResultSet creates an empty result set for the named query.
func NewResultSet(name string, columns ...string) *ResultSet {
	return &ResultSet{
		Name:    name,
		Columns: columns,
		Rows:    [][]Value{},
	}
}

// AddRow appends a row of cells. The cell count must match Columns.
func (rs *ResultSet) AddRow(cells ...Value) error {
	if len(cells) != len(rs.Columns) {
		return fmt.Errorf("row has %d cells, result set has %d columns", len(cells), len(rs.Columns))
	}
	rs.Rows = append(rs.Rows, cells)
	return nil
}

// RowCount returns the number of rows.
func (rs *ResultSet) RowCount() int {
	return len(rs.Rows)
}

// Column returns the index of the named column, or -1 if absent.
func (rs *ResultSet) Column(name string) int {
	for i, c := range rs.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// RenderText writes the result set as an aligned table.
// Numeric cells right-align; widths are rune-aware so non-ASCII names
// (e.g. "Café Press Coffee Maker") keep columns straight.
func (rs *ResultSet) RenderText(w io.Writer) error {
	widths := make([]int, len(rs.Columns))
	for i, col := range rs.Columns {
		widths[i] = utf8.RuneCountInString(col)
	}
	for _, row := range rs.Rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell.Display()); n > widths[i] {
				widths[i] = n
			}
		}
	}

	// Header row
	header := make([]string, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = pad(col, widths[i], false)
	}
	if _, err := fmt.Fprintf(w, " %s\n", strings.Join(header, " | ")); err != nil {
		return err
	}

	// Separator
	sep := make([]string, len(rs.Columns))
	for i := range rs.Columns {
		sep[i] = strings.Repeat("-", widths[i]+2)
	}
	if _, err := fmt.Fprintf(w, "%s\n", strings.Join(sep, "+")); err != nil {
		return err
	}

	// Data rows
	for _, row := range rs.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = pad(cell.Display(), widths[i], cell.Numeric())
		}
		if _, err := fmt.Fprintf(w, " %s\n", strings.Join(cells, " | ")); err != nil {
			return err
		}
	}

	// Row count footer
	suffix := "rows"
	if len(rs.Rows) == 1 {
		suffix = "row"
	}
	if _, err := fmt.Fprintf(w, "(%d %s)\n", len(rs.Rows), suffix); err != nil {
		return err
	}

	return nil
}

// pad aligns a cell to the column width; right-aligned when numeric.
func pad(s string, width int, right bool) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}
