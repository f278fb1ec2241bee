package harness

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/store"
)

// validIdentifier matches valid SQL identifiers (table/column names).
// Only allows alphanumeric and underscore, must start with letter or underscore.
// This prevents SQL injection via identifier interpolation.
var validIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// CheckError is returned when a conformance check fails.
// It includes the query context to help debug the failure.
type CheckError struct {
	Type     string // Check type for categorization
	Query    string // Catalog slug of the checked query
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Check failed: %s on %s\n", e.Type, e.Query)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)

	return buf.String()
}

// evaluateCheck runs one check against a query result.
// final_state probes the database after the query ran, so it takes the
// store; every other check reads only the result set.
func evaluateCheck(ctx context.Context, st *store.Store, rs *report.ResultSet, check Check) error {
	switch check.Type {
	case CheckRowCount:
		return checkRowCount(rs, check)
	case CheckAllEqual:
		return checkAllEqual(rs, check)
	case CheckNonIncreasing, CheckNonDecreasing:
		return checkOrdered(rs, check)
	case CheckGreaterThan:
		return checkGreaterThan(rs, check)
	case CheckSum:
		return checkSum(rs, check)
	case CheckNoDuplicateRows:
		return checkNoDuplicateRows(rs)
	case CheckFinalState:
		return checkFinalState(ctx, st, rs.Name, check)
	default:
		return fmt.Errorf("unknown check type %q", check.Type)
	}
}

// checkRowCount validates the result size against count, min, and max bounds.
func checkRowCount(rs *report.ResultSet, check Check) error {
	n := rs.RowCount()

	if check.Count != nil && n != *check.Count {
		return &CheckError{
			Type:     CheckRowCount,
			Query:    rs.Name,
			Expected: fmt.Sprintf("exactly %d rows", *check.Count),
			Actual:   fmt.Sprintf("%d rows", n),
		}
	}
	if check.Min != nil && n < *check.Min {
		return &CheckError{
			Type:     CheckRowCount,
			Query:    rs.Name,
			Expected: fmt.Sprintf("at least %d rows", *check.Min),
			Actual:   fmt.Sprintf("%d rows", n),
		}
	}
	if check.Max != nil && n > *check.Max {
		return &CheckError{
			Type:     CheckRowCount,
			Query:    rs.Name,
			Expected: fmt.Sprintf("at most %d rows", *check.Max),
			Actual:   fmt.Sprintf("%d rows", n),
		}
	}

	return nil
}

// checkAllEqual validates that every cell in the column equals the value.
func checkAllEqual(rs *report.ResultSet, check Check) error {
	col, err := columnIndex(rs, check)
	if err != nil {
		return err
	}

	for i, row := range rs.Rows {
		if !cellEquals(row[col], check.Value) {
			return &CheckError{
				Type:     CheckAllEqual,
				Query:    rs.Name,
				Expected: fmt.Sprintf("every %s = %v", check.Column, check.Value),
				Actual:   fmt.Sprintf("row %d has %s", i+1, row[col].Display()),
			}
		}
	}

	return nil
}

// checkOrdered validates monotonic order down the rows of a column.
// Handles both non_increasing and non_decreasing.
func checkOrdered(rs *report.ResultSet, check Check) error {
	col, err := columnIndex(rs, check)
	if err != nil {
		return err
	}

	for i := 1; i < len(rs.Rows); i++ {
		prev, curr := rs.Rows[i-1][col], rs.Rows[i][col]

		cmp, err := compareCells(prev, curr)
		if err != nil {
			return &CheckError{
				Type:     check.Type,
				Query:    rs.Name,
				Expected: fmt.Sprintf("comparable cells in column %s", check.Column),
				Actual:   fmt.Sprintf("rows %d and %d: %v", i, i+1, err),
			}
		}

		if check.Type == CheckNonIncreasing && cmp < 0 {
			return &CheckError{
				Type:     check.Type,
				Query:    rs.Name,
				Expected: fmt.Sprintf("%s non-increasing down the rows", check.Column),
				Actual:   fmt.Sprintf("row %d rises from %s to %s", i+1, prev.Display(), curr.Display()),
			}
		}
		if check.Type == CheckNonDecreasing && cmp > 0 {
			return &CheckError{
				Type:     check.Type,
				Query:    rs.Name,
				Expected: fmt.Sprintf("%s non-decreasing down the rows", check.Column),
				Actual:   fmt.Sprintf("row %d falls from %s to %s", i+1, prev.Display(), curr.Display()),
			}
		}
	}

	return nil
}

// checkGreaterThan validates that every cell in the column exceeds the value.
func checkGreaterThan(rs *report.ResultSet, check Check) error {
	col, err := columnIndex(rs, check)
	if err != nil {
		return err
	}

	threshold, err := decimalValue(check.Value)
	if err != nil {
		return fmt.Errorf("greater_than value: %w", err)
	}

	for i, row := range rs.Rows {
		d, err := cellDecimal(row[col])
		if err != nil {
			return &CheckError{
				Type:     CheckGreaterThan,
				Query:    rs.Name,
				Expected: fmt.Sprintf("numeric cells in column %s", check.Column),
				Actual:   fmt.Sprintf("row %d: %v", i+1, err),
			}
		}
		if d.Cmp(threshold) <= 0 {
			return &CheckError{
				Type:     CheckGreaterThan,
				Query:    rs.Name,
				Expected: fmt.Sprintf("every %s > %v", check.Column, check.Value),
				Actual:   fmt.Sprintf("row %d has %s", i+1, row[col].Display()),
			}
		}
	}

	return nil
}

// checkSum validates that a numeric column sums exactly to the value.
// The sum is computed in decimal so money columns reconcile without
// float drift.
func checkSum(rs *report.ResultSet, check Check) error {
	col, err := columnIndex(rs, check)
	if err != nil {
		return err
	}

	want, err := decimalValue(check.Value)
	if err != nil {
		return fmt.Errorf("sum value: %w", err)
	}

	total := decimal.Zero
	for i, row := range rs.Rows {
		d, err := cellDecimal(row[col])
		if err != nil {
			return &CheckError{
				Type:     CheckSum,
				Query:    rs.Name,
				Expected: fmt.Sprintf("numeric cells in column %s", check.Column),
				Actual:   fmt.Sprintf("row %d: %v", i+1, err),
			}
		}
		total = total.Add(d)
	}

	if !total.Equal(want) {
		return &CheckError{
			Type:     CheckSum,
			Query:    rs.Name,
			Expected: fmt.Sprintf("%s summing to %v", check.Column, check.Value),
			Actual:   fmt.Sprintf("sum is %s", total.String()),
		}
	}

	return nil
}

// checkNoDuplicateRows validates that no two rows are identical across
// all projected columns.
func checkNoDuplicateRows(rs *report.ResultSet) error {
	seen := make(map[string]int, len(rs.Rows))
	for i, row := range rs.Rows {
		key := rowKey(row)
		if first, dup := seen[key]; dup {
			return &CheckError{
				Type:     CheckNoDuplicateRows,
				Query:    rs.Name,
				Expected: "no duplicate rows",
				Actual:   fmt.Sprintf("row %d duplicates row %d", i+1, first+1),
			}
		}
		seen[key] = i
	}

	return nil
}

// rowKey joins cell displays with a unit separator so adjacent cells
// cannot glue together into a false duplicate.
func rowKey(row []report.Value) string {
	parts := make([]string, len(row))
	for i, cell := range row {
		parts[i] = cell.Display()
	}
	return strings.Join(parts, "\x1f")
}

// checkFinalState queries a table after the catalog query ran and
// validates expected values using subset semantics.
//
// Security: table and column names are validated against a whitelist
// pattern to prevent SQL injection via identifier interpolation. Values
// are always passed as query parameters, never interpolated.
func checkFinalState(ctx context.Context, st *store.Store, query string, check Check) error {
	if !validIdentifier.MatchString(check.Table) {
		return fmt.Errorf("invalid table name %q: must match pattern %s", check.Table, validIdentifier.String())
	}

	whereSQL, whereArgs, err := buildWhereClause(check.Where)
	if err != nil {
		return err // Identifier validation failed
	}

	stmt := fmt.Sprintf("SELECT * FROM %s", check.Table)
	if whereSQL != "" {
		stmt += " WHERE " + whereSQL
	}

	rows, err := st.Query(ctx, stmt, whereArgs...)
	if err != nil {
		return &CheckError{
			Type:     CheckFinalState,
			Query:    query,
			Expected: fmt.Sprintf("query table %s", check.Table),
			Actual:   fmt.Sprintf("query error: %v", err),
		}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("get columns: %w", err)
	}

	if !rows.Next() {
		return &CheckError{
			Type:     CheckFinalState,
			Query:    query,
			Expected: fmt.Sprintf("row in %s where %s", check.Table, formatWhereClause(check.Where)),
			Actual:   "row not found",
		}
	}

	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}
	if err := rows.Scan(valuePtrs...); err != nil {
		return fmt.Errorf("scan row: %w", err)
	}

	// A second matching row would make the check ambiguous.
	if rows.Next() {
		return &CheckError{
			Type:     CheckFinalState,
			Query:    query,
			Expected: fmt.Sprintf("exactly one row in %s where %s", check.Table, formatWhereClause(check.Where)),
			Actual:   "multiple rows matched (check is ambiguous)",
		}
	}

	actualRow := make(map[string]interface{})
	for i, col := range columns {
		actualRow[col] = values[i]
	}

	// Subset semantics - only fields named in expect are compared.
	for key, expectedValue := range check.Expect {
		actualValue, exists := actualRow[key]
		if !exists {
			return &CheckError{
				Type:     CheckFinalState,
				Query:    query,
				Expected: fmt.Sprintf("field %q to exist", key),
				Actual:   fmt.Sprintf("field %q not present in columns: %v", key, columns),
			}
		}

		if !stateValuesEqual(expectedValue, actualValue) {
			return &CheckError{
				Type:     CheckFinalState,
				Query:    query,
				Expected: fmt.Sprintf("field %q = %v (type %T)", key, expectedValue, expectedValue),
				Actual:   fmt.Sprintf("field %q = %v (type %T)", key, actualValue, actualValue),
			}
		}
	}

	return nil
}

// buildWhereClause constructs a parameterized WHERE clause from the
// check's where map. Keys are sorted for deterministic query generation.
//
// Security: column names are validated against a whitelist pattern to
// prevent SQL injection via identifier interpolation.
func buildWhereClause(where map[string]interface{}) (string, []interface{}, error) {
	if len(where) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for _, key := range keys {
		if !validIdentifier.MatchString(key) {
			return "", nil, fmt.Errorf("invalid column name %q in where clause: must match pattern %s", key, validIdentifier.String())
		}
		clauses = append(clauses, fmt.Sprintf("%s = ?", key))
		args = append(args, where[key])
	}

	return strings.Join(clauses, " AND "), args, nil
}

// formatWhereClause creates a human-readable description of WHERE conditions.
func formatWhereClause(where map[string]interface{}) string {
	if len(where) == 0 {
		return "(no conditions)"
	}

	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, where[k]))
	}
	return strings.Join(parts, " AND ")
}

// stateValuesEqual compares expected and actual values from state tables.
// Applies SQLite-style numeric affinity: integers scan as int64, REAL as
// float64, and an integer expectation matches a REAL column holding the
// same number.
func stateValuesEqual(expected, actual interface{}) bool {
	if expected == nil && actual == nil {
		return true
	}
	if expected == nil || actual == nil {
		return false
	}

	switch exp := expected.(type) {
	case string:
		actualStr, ok := actual.(string)
		return ok && exp == actualStr
	case int:
		return numbersEqual(float64(exp), actual)
	case int64:
		return numbersEqual(float64(exp), actual)
	case float64:
		return numbersEqual(exp, actual)
	case bool:
		if actualBool, ok := actual.(bool); ok {
			return exp == actualBool
		}
		// SQLite stores booleans as integers (0/1)
		if actualInt, ok := actual.(int64); ok {
			return exp == (actualInt != 0)
		}
		return false
	}

	// Fallback for complex types
	return reflect.DeepEqual(expected, actual)
}

// numbersEqual compares a numeric expectation against a scanned value.
func numbersEqual(expected float64, actual interface{}) bool {
	switch act := actual.(type) {
	case int64:
		return expected == float64(act)
	case int:
		return expected == float64(act)
	case float64:
		return expected == act
	default:
		return false
	}
}

// columnIndex resolves the check's column or reports which columns exist.
func columnIndex(rs *report.ResultSet, check Check) (int, error) {
	idx := rs.Column(check.Column)
	if idx < 0 {
		return -1, &CheckError{
			Type:     check.Type,
			Query:    rs.Name,
			Expected: fmt.Sprintf("column %q in result", check.Column),
			Actual:   fmt.Sprintf("columns are %v", rs.Columns),
		}
	}
	return idx, nil
}

// cellEquals compares a result cell against a YAML-sourced value.
// Numeric comparisons go through decimal, so 450 matches 450.00.
func cellEquals(cell report.Value, expected interface{}) bool {
	switch c := cell.(type) {
	case report.Null:
		return expected == nil
	case report.Text:
		s, ok := expected.(string)
		return ok && string(c) == s
	case report.Int, report.Money:
		want, err := decimalValue(expected)
		if err != nil {
			return false
		}
		d, err := cellDecimal(cell)
		if err != nil {
			return false
		}
		return d.Equal(want)
	default:
		return false
	}
}

// cellDecimal converts a numeric cell to decimal for comparison.
func cellDecimal(cell report.Value) (decimal.Decimal, error) {
	switch c := cell.(type) {
	case report.Int:
		return decimal.NewFromInt(int64(c)), nil
	case report.Money:
		return c.Decimal(), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("cell %s is not numeric", cell.Display())
	}
}

// decimalValue converts a YAML-sourced number to decimal.
func decimalValue(v interface{}) (decimal.Decimal, error) {
	switch n := v.(type) {
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("value %v (type %T) is not numeric", v, v)
	}
}

// compareCells orders two cells of the same column. Numeric cells
// compare by value, text cells bytewise (SQLite's BINARY collation).
// Returns >0 when a sorts after b.
func compareCells(a, b report.Value) (int, error) {
	if ta, ok := a.(report.Text); ok {
		tb, ok := b.(report.Text)
		if !ok {
			return 0, fmt.Errorf("cannot compare text with %T", b)
		}
		return strings.Compare(string(ta), string(tb)), nil
	}

	da, err := cellDecimal(a)
	if err != nil {
		return 0, err
	}
	db, err := cellDecimal(b)
	if err != nil {
		return 0, err
	}
	return da.Cmp(db), nil
}
