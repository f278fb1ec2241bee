package harness

import (
	"context"
	"fmt"

	"github.com/sqlbook/sqlbook/internal/catalog"
	"github.com/sqlbook/sqlbook/internal/store"
)

// Run executes a conformance suite and returns the result.
//
// Each run gets a fresh in-memory database so the mutating catalog entry
// cannot leak state between runs. Queries execute sequentially in suite
// order; checks on entries listed after record-sale see the post-sale
// database.
//
// Check failures accumulate in the result. An error return means the run
// itself could not proceed (store setup, unknown query, query execution),
// not that a check failed.
func Run(ctx context.Context, suite *Suite) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	if err := st.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := st.Seed(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed fixtures: %w", err)
	}

	result := NewResult(suite.Name)
	for i, qc := range suite.Queries {
		entry, ok := catalog.BySlug(qc.Query)
		if !ok {
			return nil, fmt.Errorf("queries[%d]: unknown catalog query %q", i, qc.Query)
		}

		rs, err := entry.Run(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("queries[%d]: failed to run %s: %w", i, qc.Query, err)
		}

		outcome := QueryOutcome{Query: entry.Slug, Rows: rs.RowCount(), Checks: len(qc.Checks)}
		for _, check := range qc.Checks {
			if err := evaluateCheck(ctx, st, rs, check); err != nil {
				result.AddError(err.Error())
				outcome.Failures++
			}
		}
		result.AddOutcome(outcome)
	}

	return result, nil
}
