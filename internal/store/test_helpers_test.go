package store

import (
	"context"
	"path/filepath"
	"testing"
)

// newTestStore opens a store on a fresh temp-dir database.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// newInitializedStore opens a store and creates the schema.
func newInitializedStore(t *testing.T) *Store {
	t.Helper()
	s := newTestStore(t)
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return s
}

// newSeededStore opens a store with the schema and fixture data loaded.
func newSeededStore(t *testing.T) *Store {
	t.Helper()
	s := newInitializedStore(t)
	if err := s.Seed(context.Background()); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	return s
}

// insertConstraintFixtures inserts a minimal customer/product/order chain
// so line-item constraint tests fail only on the constraint under test.
func insertConstraintFixtures(t *testing.T, s *Store) {
	t.Helper()

	stmts := []string{
		`INSERT INTO customers (id, first_name, last_name, email, city, state, signup_date)
		 VALUES (1, 'Test', 'User', 'test.user@example.com', 'Austin', 'TX', '2024-01-01')`,
		`INSERT INTO products (id, name, category, price, stock_quantity)
		 VALUES (1, 'Widget', 'Electronics', 10.00, 5)`,
		`INSERT INTO orders (id, customer_id, order_date, total_amount, status)
		 VALUES (1, 1, '2024-06-01', 10.00, 'Completed')`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			t.Fatalf("failed to insert fixture row: %v", err)
		}
	}
}
