package catalog

import (
	"context"
	"fmt"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/store"
)

const ordersWithCustomersSQL = `-- INNER JOIN keeps only rows with a match on both sides: the two
-- customers who never ordered contribute nothing here. The derived
-- customer_name column exists only in the result, not in any table.
SELECT
    o.id AS order_id,
    c.id AS customer_id,
    c.first_name || ' ' || c.last_name AS customer_name,
    o.order_date,
    o.status,
    o.total_amount
FROM orders o
JOIN customers c ON c.id = o.customer_id
ORDER BY c.id ASC, o.order_date ASC, o.id ASC;`

// OrdersWithCustomersRow is one order with its customer's display name.
type OrdersWithCustomersRow struct {
	OrderID      int64
	CustomerID   int64
	CustomerName string
	OrderDate    string
	Status       string
	TotalAmount  float64
}

// OrdersWithCustomers returns every order joined to the customer who
// placed it, grouped by customer and then by date.
func OrdersWithCustomers(ctx context.Context, st *store.Store) ([]OrdersWithCustomersRow, error) {
	rows, err := st.Query(ctx, ordersWithCustomersSQL)
	if err != nil {
		return nil, fmt.Errorf("query orders with customers: %w", err)
	}
	defer rows.Close()

	var out []OrdersWithCustomersRow
	for rows.Next() {
		var r OrdersWithCustomersRow
		if err := rows.Scan(&r.OrderID, &r.CustomerID, &r.CustomerName, &r.OrderDate, &r.Status, &r.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan orders with customers: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders with customers: %w", err)
	}

	if out == nil {
		out = []OrdersWithCustomersRow{}
	}
	return out, nil
}

func runOrdersWithCustomers(ctx context.Context, st *store.Store) (*report.ResultSet, error) {
	items, err := OrdersWithCustomers(ctx, st)
	if err != nil {
		return nil, err
	}

	rs := report.NewResultSet("orders-with-customers",
		"order_id", "customer_id", "customer_name", "order_date", "status", "total_amount")
	for _, r := range items {
		err := rs.AddRow(
			report.Int(r.OrderID),
			report.Int(r.CustomerID),
			report.Text(r.CustomerName),
			report.Text(r.OrderDate),
			report.Text(r.Status),
			report.MoneyFromFloat(r.TotalAmount),
		)
		if err != nil {
			return nil, err
		}
	}
	return rs, nil
}
