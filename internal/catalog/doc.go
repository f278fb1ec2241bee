// Package catalog holds the eleven annotated queries of the SQL guidebook
// and their typed runners.
//
// Each entry pairs three things:
//   - the annotated SQL statement, printed verbatim by `sqlbook show`
//   - a typed runner returning one struct per result row
//   - an adapter from those rows to a report.ResultSet
//
// # Determinism
//
// Every statement's ORDER BY ends in a primary-key tiebreak, and the one
// ROW_NUMBER window orders by price DESC, id ASC explicitly. Row order is
// therefore a total order: the same database produces byte-identical
// result sets on every engine and every run.
//
// # Mutation
//
// record-sale is the only entry that writes. Its UPDATE carries no stock
// guard and is not idempotent: each run decrements stock by five, and
// nothing stops stock going negative. The harness runs every suite
// against a fresh seeded store for exactly this reason.
package catalog
