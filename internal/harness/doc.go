// Package harness provides conformance testing for the query catalog.
//
// The harness seeds a fresh fixture database, executes catalog queries,
// and validates their documented outputs as executable checks.
//
// # Suite Format
//
// Suites are defined in YAML files with the following structure:
//
//	name: suite_name
//	description: "What this suite validates"
//	queries:
//	  - query: top-electronics
//	    checks:
//	      - type: row_count
//	        max: 5
//	      - type: all_equal
//	        column: category
//	        value: Electronics
//	      - type: non_increasing
//	        column: price
//	  - query: record-sale
//	    checks:
//	      - type: final_state
//	        table: products
//	        where: { id: 2 }
//	        expect: { stock_quantity: 115 }
//
// # Check Types
//
// The following check types are supported:
//
//   - row_count: Verifies the result size (exact count, or min/max bounds)
//   - all_equal: Verifies every cell in a column equals a value
//   - non_increasing: Verifies a column never increases down the rows
//   - non_decreasing: Verifies a column never decreases down the rows
//   - greater_than: Verifies every cell in a column exceeds a value
//   - sum: Verifies a numeric column sums exactly to a value
//   - no_duplicate_rows: Verifies no two rows are identical
//   - final_state: Queries a table after the run and verifies expected values
//
// # Deterministic Execution
//
// Every run executes against a fresh in-memory database seeded from the
// fixture set, so the one mutating catalog entry (record-sale) cannot leak
// state between runs. Within a run, queries execute sequentially in suite
// order; checks attached to entries listed after record-sale see the
// post-sale database. Each run carries a UUIDv7 run ID.
//
// # Usage
//
// Load a suite:
//
//	suite, err := harness.LoadSuite("testdata/suites/smoke.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or use the embedded default, which covers the documented properties of
// every catalog entry:
//
//	suite, err := harness.DefaultSuite()
//
// Execute it:
//
//	result, err := harness.Run(ctx, suite)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
