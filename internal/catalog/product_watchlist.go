package catalog

import (
	"context"
	"fmt"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/store"
)

const productWatchlistSQL = `-- UNION removes duplicate rows, but the label column keeps the two
-- branches distinct: the laptop is both low on stock and expensive, so
-- it appears twice under different labels. metric means units in stock
-- for Low Stock rows and a price for High Value rows.
SELECT name, 'High Value' AS label, price AS metric
FROM products
WHERE price > 200
UNION
SELECT name, 'Low Stock' AS label, stock_quantity AS metric
FROM products
WHERE stock_quantity < 100
ORDER BY label ASC, metric DESC, name ASC;`

// ProductWatchlistRow is one watchlist entry. Metric holds units in
// stock for Low Stock rows and a price for High Value rows.
type ProductWatchlistRow struct {
	Name   string
	Label  string
	Metric float64
}

// ProductWatchlist returns products needing attention: low on stock,
// high in value, or both.
func ProductWatchlist(ctx context.Context, st *store.Store) ([]ProductWatchlistRow, error) {
	rows, err := st.Query(ctx, productWatchlistSQL)
	if err != nil {
		return nil, fmt.Errorf("query product watchlist: %w", err)
	}
	defer rows.Close()

	var out []ProductWatchlistRow
	for rows.Next() {
		var r ProductWatchlistRow
		if err := rows.Scan(&r.Name, &r.Label, &r.Metric); err != nil {
			return nil, fmt.Errorf("scan product watchlist: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product watchlist: %w", err)
	}

	if out == nil {
		out = []ProductWatchlistRow{}
	}
	return out, nil
}

func runProductWatchlist(ctx context.Context, st *store.Store) (*report.ResultSet, error) {
	items, err := ProductWatchlist(ctx, st)
	if err != nil {
		return nil, err
	}

	rs := report.NewResultSet("product-watchlist", "name", "label", "metric")
	for _, r := range items {
		// The metric column is heterogeneous: unit counts stay integral,
		// prices render as money.
		var metric report.Value
		if r.Label == "Low Stock" {
			metric = report.Int(int64(r.Metric))
		} else {
			metric = report.MoneyFromFloat(r.Metric)
		}
		if err := rs.AddRow(report.Text(r.Name), report.Text(r.Label), metric); err != nil {
			return nil, err
		}
	}
	return rs, nil
}
