package catalog

import (
	"context"
	"fmt"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/store"
)

const orderLineDetailsSQL = `-- One JOIN per hop: orders to customers, orders to their line items,
-- line items to products. line_total is computed per row. unit_price is
-- the price paid at the time of sale, which is why order 3 shows the
-- headphones at 239.99 against a 249.99 list price.
-- Newest orders first; the ascending id tiebreaks keep same-day orders
-- and the lines within an order stable.
SELECT
    o.id AS order_id,
    o.order_date,
    c.first_name || ' ' || c.last_name AS customer_name,
    p.name AS product_name,
    oi.quantity,
    oi.unit_price,
    oi.quantity * oi.unit_price AS line_total
FROM orders o
JOIN customers c ON c.id = o.customer_id
JOIN order_items oi ON oi.order_id = o.id
JOIN products p ON p.id = oi.product_id
ORDER BY o.order_date DESC, o.id ASC, oi.id ASC;`

// OrderLineDetailsRow is one order line with its computed extended price.
type OrderLineDetailsRow struct {
	OrderID      int64
	OrderDate    string
	CustomerName string
	ProductName  string
	Quantity     int64
	UnitPrice    float64
	LineTotal    float64
}

// OrderLineDetails returns every line item joined across all four
// tables, newest orders first.
func OrderLineDetails(ctx context.Context, st *store.Store) ([]OrderLineDetailsRow, error) {
	rows, err := st.Query(ctx, orderLineDetailsSQL)
	if err != nil {
		return nil, fmt.Errorf("query order line details: %w", err)
	}
	defer rows.Close()

	var out []OrderLineDetailsRow
	for rows.Next() {
		var r OrderLineDetailsRow
		err := rows.Scan(&r.OrderID, &r.OrderDate, &r.CustomerName, &r.ProductName,
			&r.Quantity, &r.UnitPrice, &r.LineTotal)
		if err != nil {
			return nil, fmt.Errorf("scan order line details: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order line details: %w", err)
	}

	if out == nil {
		out = []OrderLineDetailsRow{}
	}
	return out, nil
}

func runOrderLineDetails(ctx context.Context, st *store.Store) (*report.ResultSet, error) {
	items, err := OrderLineDetails(ctx, st)
	if err != nil {
		return nil, err
	}

	rs := report.NewResultSet("order-line-details",
		"order_id", "order_date", "customer_name", "product_name", "quantity", "unit_price", "line_total")
	for _, r := range items {
		err := rs.AddRow(
			report.Int(r.OrderID),
			report.Text(r.OrderDate),
			report.Text(r.CustomerName),
			report.Text(r.ProductName),
			report.Int(r.Quantity),
			report.MoneyFromFloat(r.UnitPrice),
			report.MoneyFromFloat(r.LineTotal),
		)
		if err != nil {
			return nil, err
		}
	}
	return rs, nil
}
