package catalog

import (
	"context"
	"fmt"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/store"
)

const priceRanksSQL = `-- Two window functions over the same partition. RANK gives tied prices
-- the same number and leaves a gap after them (4, 4, then 6);
-- ROW_NUMBER never repeats, so its ORDER BY carries an explicit id
-- tiebreak to pin which 89.99 product is row 4 and which is row 5.
SELECT
    id,
    name,
    category,
    price,
    RANK() OVER (PARTITION BY category ORDER BY price DESC) AS price_rank,
    ROW_NUMBER() OVER (PARTITION BY category ORDER BY price DESC, id ASC) AS row_in_category
FROM products
ORDER BY category ASC, price_rank ASC, id ASC;`

// PriceRanksRow is one product with its two in-category numberings.
type PriceRanksRow struct {
	ID            int64
	Name          string
	Category      string
	Price         float64
	PriceRank     int64
	RowInCategory int64
}

// PriceRanks returns every product ranked by price within its category.
func PriceRanks(ctx context.Context, st *store.Store) ([]PriceRanksRow, error) {
	rows, err := st.Query(ctx, priceRanksSQL)
	if err != nil {
		return nil, fmt.Errorf("query price ranks: %w", err)
	}
	defer rows.Close()

	var out []PriceRanksRow
	for rows.Next() {
		var r PriceRanksRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.Price, &r.PriceRank, &r.RowInCategory); err != nil {
			return nil, fmt.Errorf("scan price ranks: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price ranks: %w", err)
	}

	if out == nil {
		out = []PriceRanksRow{}
	}
	return out, nil
}

func runPriceRanks(ctx context.Context, st *store.Store) (*report.ResultSet, error) {
	items, err := PriceRanks(ctx, st)
	if err != nil {
		return nil, err
	}

	rs := report.NewResultSet("price-ranks",
		"id", "name", "category", "price", "price_rank", "row_in_category")
	for _, r := range items {
		err := rs.AddRow(
			report.Int(r.ID),
			report.Text(r.Name),
			report.Text(r.Category),
			report.MoneyFromFloat(r.Price),
			report.Int(r.PriceRank),
			report.Int(r.RowInCategory),
		)
		if err != nil {
			return nil, err
		}
	}
	return rs, nil
}
