package catalog

import (
	"context"
	"fmt"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/store"
)

const customerOrderCountsSQL = `-- LEFT JOIN keeps every customer, matched or not.
-- COUNT(o.id) counts only matched order rows, where COUNT(*) would
-- count the customer itself; COALESCE turns the no-orders NULL sum
-- into a displayable 0.
SELECT
    c.id AS customer_id,
    c.first_name || ' ' || c.last_name AS customer_name,
    COUNT(o.id) AS order_count,
    COALESCE(SUM(o.total_amount), 0) AS total_spent
FROM customers c
LEFT JOIN orders o ON o.customer_id = c.id
GROUP BY c.id
ORDER BY order_count DESC, total_spent DESC, c.id ASC;`

// CustomerOrderCountsRow is one customer's order count and lifetime
// spend, zero-valued for customers who never ordered.
type CustomerOrderCountsRow struct {
	CustomerID   int64
	CustomerName string
	OrderCount   int64
	TotalSpent   float64
}

// CustomerOrderCounts returns order count and spend for all eight
// customers, including the two with no orders.
func CustomerOrderCounts(ctx context.Context, st *store.Store) ([]CustomerOrderCountsRow, error) {
	rows, err := st.Query(ctx, customerOrderCountsSQL)
	if err != nil {
		return nil, fmt.Errorf("query customer order counts: %w", err)
	}
	defer rows.Close()

	var out []CustomerOrderCountsRow
	for rows.Next() {
		var r CustomerOrderCountsRow
		if err := rows.Scan(&r.CustomerID, &r.CustomerName, &r.OrderCount, &r.TotalSpent); err != nil {
			return nil, fmt.Errorf("scan customer order counts: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer order counts: %w", err)
	}

	if out == nil {
		out = []CustomerOrderCountsRow{}
	}
	return out, nil
}

func runCustomerOrderCounts(ctx context.Context, st *store.Store) (*report.ResultSet, error) {
	items, err := CustomerOrderCounts(ctx, st)
	if err != nil {
		return nil, err
	}

	rs := report.NewResultSet("customer-order-counts",
		"customer_id", "customer_name", "order_count", "total_spent")
	for _, r := range items {
		err := rs.AddRow(
			report.Int(r.CustomerID),
			report.Text(r.CustomerName),
			report.Int(r.OrderCount),
			report.MoneyFromFloat(r.TotalSpent),
		)
		if err != nil {
			return nil, err
		}
	}
	return rs, nil
}
