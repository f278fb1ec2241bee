package catalog

import (
	"context"
	"fmt"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/store"
)

const monthlySalesSQL = `-- A CTE derives the month key once; the outer query groups on it.
-- The CASE inside SUM counts the completed subset without a second
-- pass over the table. Dates are ISO-8601 text, so strftime can slice
-- them directly.
WITH dated_orders AS (
    SELECT
        strftime('%Y-%m', order_date) AS month,
        total_amount,
        status
    FROM orders
)
SELECT
    month,
    COUNT(*) AS total_orders,
    SUM(total_amount) AS revenue,
    ROUND(AVG(total_amount), 2) AS avg_order,
    SUM(CASE WHEN status = 'Completed' THEN 1 ELSE 0 END) AS completed_orders
FROM dated_orders
GROUP BY month
ORDER BY month ASC;`

// MonthlySalesRow is one calendar month's order aggregates.
type MonthlySalesRow struct {
	Month           string
	TotalOrders     int64
	Revenue         float64
	AvgOrder        float64
	CompletedOrders int64
}

// MonthlySales returns per-month order volume, revenue, and the count
// of completed orders.
func MonthlySales(ctx context.Context, st *store.Store) ([]MonthlySalesRow, error) {
	rows, err := st.Query(ctx, monthlySalesSQL)
	if err != nil {
		return nil, fmt.Errorf("query monthly sales: %w", err)
	}
	defer rows.Close()

	var out []MonthlySalesRow
	for rows.Next() {
		var r MonthlySalesRow
		if err := rows.Scan(&r.Month, &r.TotalOrders, &r.Revenue, &r.AvgOrder, &r.CompletedOrders); err != nil {
			return nil, fmt.Errorf("scan monthly sales: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly sales: %w", err)
	}

	if out == nil {
		out = []MonthlySalesRow{}
	}
	return out, nil
}

func runMonthlySales(ctx context.Context, st *store.Store) (*report.ResultSet, error) {
	items, err := MonthlySales(ctx, st)
	if err != nil {
		return nil, err
	}

	rs := report.NewResultSet("monthly-sales",
		"month", "total_orders", "revenue", "avg_order", "completed_orders")
	for _, r := range items {
		err := rs.AddRow(
			report.Text(r.Month),
			report.Int(r.TotalOrders),
			report.MoneyFromFloat(r.Revenue),
			report.MoneyFromFloat(r.AvgOrder),
			report.Int(r.CompletedOrders),
		)
		if err != nil {
			return nil, err
		}
	}
	return rs, nil
}
