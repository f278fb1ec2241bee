package catalog

import (
	"context"
	"fmt"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/store"
)

const topElectronicsSQL = `-- Filtering and limiting.
-- LIMIT applies after ORDER BY, so this reads "the five most expensive",
-- not "five arbitrary rows". Two products tie at 89.99; the id tiebreak
-- fixes their relative order and keeps the cutoff deterministic.
SELECT id, name, category, price
FROM products
WHERE category = 'Electronics'
ORDER BY price DESC, id ASC
LIMIT 5;`

// TopElectronicsRow is one product in the price-ordered listing.
type TopElectronicsRow struct {
	ID       int64
	Name     string
	Category string
	Price    float64
}

// TopElectronics returns the five most expensive Electronics products.
func TopElectronics(ctx context.Context, st *store.Store) ([]TopElectronicsRow, error) {
	rows, err := st.Query(ctx, topElectronicsSQL)
	if err != nil {
		return nil, fmt.Errorf("query top electronics: %w", err)
	}
	defer rows.Close()

	var out []TopElectronicsRow
	for rows.Next() {
		var r TopElectronicsRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.Price); err != nil {
			return nil, fmt.Errorf("scan top electronics: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top electronics: %w", err)
	}

	// Return empty slice instead of nil
	if out == nil {
		out = []TopElectronicsRow{}
	}
	return out, nil
}

func runTopElectronics(ctx context.Context, st *store.Store) (*report.ResultSet, error) {
	items, err := TopElectronics(ctx, st)
	if err != nil {
		return nil, err
	}

	rs := report.NewResultSet("top-electronics", "id", "name", "category", "price")
	for _, r := range items {
		err := rs.AddRow(
			report.Int(r.ID),
			report.Text(r.Name),
			report.Text(r.Category),
			report.MoneyFromFloat(r.Price),
		)
		if err != nil {
			return nil, err
		}
	}
	return rs, nil
}
