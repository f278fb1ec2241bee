package catalog

import (
	"context"
	"fmt"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/store"
)

const customerSegmentsSQL = `-- CASE returns the first branch that matches, so the thresholds are
-- written highest first: a 1929.98 spender is VIP, not Regular.
-- Customers with no orders fall through COALESCE to 0 and land in New.
SELECT
    c.id AS customer_id,
    c.first_name || ' ' || c.last_name AS customer_name,
    COALESCE(SUM(o.total_amount), 0) AS total_spent,
    CASE
        WHEN COALESCE(SUM(o.total_amount), 0) >= 1500 THEN 'VIP'
        WHEN COALESCE(SUM(o.total_amount), 0) >= 500 THEN 'Regular'
        ELSE 'New'
    END AS segment
FROM customers c
LEFT JOIN orders o ON o.customer_id = c.id
GROUP BY c.id
ORDER BY total_spent DESC, c.id ASC;`

// CustomerSegmentsRow is one customer with their spend-derived segment.
type CustomerSegmentsRow struct {
	CustomerID   int64
	CustomerName string
	TotalSpent   float64
	Segment      string
}

// CustomerSegments returns every customer labeled VIP, Regular, or New
// by lifetime spend.
func CustomerSegments(ctx context.Context, st *store.Store) ([]CustomerSegmentsRow, error) {
	rows, err := st.Query(ctx, customerSegmentsSQL)
	if err != nil {
		return nil, fmt.Errorf("query customer segments: %w", err)
	}
	defer rows.Close()

	var out []CustomerSegmentsRow
	for rows.Next() {
		var r CustomerSegmentsRow
		if err := rows.Scan(&r.CustomerID, &r.CustomerName, &r.TotalSpent, &r.Segment); err != nil {
			return nil, fmt.Errorf("scan customer segments: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer segments: %w", err)
	}

	if out == nil {
		out = []CustomerSegmentsRow{}
	}
	return out, nil
}

func runCustomerSegments(ctx context.Context, st *store.Store) (*report.ResultSet, error) {
	items, err := CustomerSegments(ctx, st)
	if err != nil {
		return nil, err
	}

	rs := report.NewResultSet("customer-segments",
		"customer_id", "customer_name", "total_spent", "segment")
	for _, r := range items {
		err := rs.AddRow(
			report.Int(r.CustomerID),
			report.Text(r.CustomerName),
			report.MoneyFromFloat(r.TotalSpent),
			report.Text(r.Segment),
		)
		if err != nil {
			return nil, err
		}
	}
	return rs, nil
}
