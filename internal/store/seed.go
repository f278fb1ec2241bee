package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
)

//go:embed seed.sql
var seedSQL string

// fixtureCounts is the expected shape of a freshly seeded database.
var fixtureCounts = []struct {
	table string
	rows  int
}{
	{"customers", 8},
	{"products", 10},
	{"orders", 10},
	{"order_items", 14},
}

// FixtureError reports a seeded database that does not match the
// dataset the catalog queries are written against.
type FixtureError struct {
	Table  string // table that failed verification
	Detail string // what was expected vs. found
}

func (e *FixtureError) Error() string {
	return fmt.Sprintf("fixture verification failed: %s: %s", e.Table, e.Detail)
}

// Seed loads the fixture dataset into an initialized store and verifies
// it landed intact. All inserts run in one transaction, so a partially
// seeded database is never visible.
//
// Seeding an already seeded store fails on the first duplicate primary
// key. Callers that want a fresh dataset start from a fresh database.
func (s *Store) Seed(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, seedSQL); err != nil {
		return fmt.Errorf("insert fixtures: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return s.verifyFixtures(ctx)
}

// verifyFixtures checks table row counts, then recomputes every order's
// total from its line items. The comparison uses decimal arithmetic so a
// drifted REAL column is caught rather than absorbed by float rounding.
func (s *Store) verifyFixtures(ctx context.Context) error {
	for _, fc := range fixtureCounts {
		var n int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", fc.table)
		if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
			return fmt.Errorf("count %s: %w", fc.table, err)
		}
		if n != fc.rows {
			return &FixtureError{
				Table:  fc.table,
				Detail: fmt.Sprintf("expected %d rows, found %d", fc.rows, n),
			}
		}
	}

	// Stored totals, keyed by order id.
	stored := make(map[int64]decimal.Decimal)
	var orderIDs []int64

	rows, err := s.db.QueryContext(ctx, "SELECT id, total_amount FROM orders ORDER BY id ASC")
	if err != nil {
		return fmt.Errorf("query order totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var total float64
		if err := rows.Scan(&id, &total); err != nil {
			return fmt.Errorf("scan order total: %w", err)
		}
		stored[id] = decimal.NewFromFloat(total).Round(2)
		orderIDs = append(orderIDs, id)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate order totals: %w", err)
	}

	// Totals recomputed from line items. The rows above are fully
	// consumed before this query runs; the pool has one connection.
	recomputed := make(map[int64]decimal.Decimal)

	items, err := s.db.QueryContext(ctx,
		"SELECT order_id, quantity, unit_price FROM order_items ORDER BY id ASC")
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer items.Close()

	for items.Next() {
		var orderID, qty int64
		var unit float64
		if err := items.Scan(&orderID, &qty, &unit); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		line := decimal.NewFromFloat(unit).Round(2).Mul(decimal.NewFromInt(qty))
		recomputed[orderID] = recomputed[orderID].Add(line)
	}
	if err := items.Err(); err != nil {
		return fmt.Errorf("iterate order items: %w", err)
	}

	for _, id := range orderIDs {
		if !stored[id].Equal(recomputed[id]) {
			return &FixtureError{
				Table: "orders",
				Detail: fmt.Sprintf("order %d total_amount %s does not match line items (%s)",
					id, stored[id], recomputed[id]),
			}
		}
	}

	return nil
}
