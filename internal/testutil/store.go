// Package testutil provides shared helpers for tests that need a seeded
// storefront database.
package testutil

import (
	"context"
	"testing"

	"github.com/sqlbook/sqlbook/internal/store"
)

// NewStore opens an in-memory store with the schema created and the
// fixture dataset loaded, closing it when the test finishes.
//
// Every caller gets its own database, so tests that mutate stock never
// leak state into each other.
func NewStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	if err := st.Init(ctx); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	if err := st.Seed(ctx); err != nil {
		t.Fatalf("seed fixtures: %v", err)
	}
	return st
}
