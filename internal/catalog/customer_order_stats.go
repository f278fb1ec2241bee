package catalog

import (
	"context"
	"fmt"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/store"
)

const customerOrderStatsSQL = `-- Aggregation with a group filter.
-- WHERE filters rows before grouping; HAVING filters the groups after
-- the aggregates exist, so it can reference SUM. AVG is rounded in SQL
-- so the displayed average is the documented one.
SELECT
    customer_id,
    COUNT(*)                    AS order_count,
    SUM(total_amount)           AS total_spent,
    ROUND(AVG(total_amount), 2) AS avg_order,
    MAX(total_amount)           AS largest_order
FROM orders
GROUP BY customer_id
HAVING SUM(total_amount) > 500
ORDER BY total_spent DESC, customer_id ASC;`

// CustomerOrderStatsRow is one customer's aggregate order profile.
type CustomerOrderStatsRow struct {
	CustomerID   int64
	OrderCount   int64
	TotalSpent   float64
	AvgOrder     float64
	LargestOrder float64
}

// CustomerOrderStats returns per-customer aggregates for customers who
// spent more than 500 across all their orders.
func CustomerOrderStats(ctx context.Context, st *store.Store) ([]CustomerOrderStatsRow, error) {
	rows, err := st.Query(ctx, customerOrderStatsSQL)
	if err != nil {
		return nil, fmt.Errorf("query customer order stats: %w", err)
	}
	defer rows.Close()

	var out []CustomerOrderStatsRow
	for rows.Next() {
		var r CustomerOrderStatsRow
		if err := rows.Scan(&r.CustomerID, &r.OrderCount, &r.TotalSpent, &r.AvgOrder, &r.LargestOrder); err != nil {
			return nil, fmt.Errorf("scan customer order stats: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer order stats: %w", err)
	}

	if out == nil {
		out = []CustomerOrderStatsRow{}
	}
	return out, nil
}

func runCustomerOrderStats(ctx context.Context, st *store.Store) (*report.ResultSet, error) {
	items, err := CustomerOrderStats(ctx, st)
	if err != nil {
		return nil, err
	}

	rs := report.NewResultSet("customer-order-stats",
		"customer_id", "order_count", "total_spent", "avg_order", "largest_order")
	for _, r := range items {
		err := rs.AddRow(
			report.Int(r.CustomerID),
			report.Int(r.OrderCount),
			report.MoneyFromFloat(r.TotalSpent),
			report.MoneyFromFloat(r.AvgOrder),
			report.MoneyFromFloat(r.LargestOrder),
		)
		if err != nil {
			return nil, err
		}
	}
	return rs, nil
}
