// Package store provides SQLite-backed storage for the demo storefront.
//
// The store holds a small, fixed e-commerce dataset across four tables:
//   - Customers: account records, two of which never place an order
//   - Products: catalog entries with list price and stock level
//   - Orders: order headers with status and a stored total
//   - Order Items: line items with the unit price paid at purchase time
//
// # Fixture Dataset
//
// The dataset is deliberately fixed. Every catalog query's documented
// result is computed against exactly these rows, so Seed verifies the
// data after loading:
//   - Row counts: 8 customers, 10 products, 10 orders, 14 line items
//   - Every orders.total_amount equals the decimal sum of its line items
//
// A database that fails verification is unusable for the catalog;
// callers treat FixtureError as fatal.
//
// # Determinism
//
// Result ordering is never left to the engine. Catalog queries carry
// explicit ORDER BY clauses with an id tiebreak wherever the primary
// sort key can collide (shared order dates, tied prices).
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The connection pool is capped at one connection. SQLite permits a
// single writer, and a lone connection keeps ":memory:" databases alive
// for the store's lifetime.
package store
