package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlbook/sqlbook/internal/testutil"
)

func TestCustomerSegments_ExactLabels(t *testing.T) {
	st := testutil.NewStore(t)

	rows, err := CustomerSegments(context.Background(), st)
	require.NoError(t, err)

	want := []struct {
		customerID int64
		segment    string
	}{
		{5, "VIP"},
		{1, "VIP"},
		{3, "Regular"},
		{2, "Regular"},
		{6, "New"},
		{4, "New"},
		{7, "New"},
		{8, "New"},
	}

	require.Len(t, rows, len(want))
	for i, w := range want {
		assert.Equal(t, w.customerID, rows[i].CustomerID, "row %d", i)
		assert.Equal(t, w.segment, rows[i].Segment, "row %d", i)
	}
}

func TestCustomerSegments_ThresholdChain(t *testing.T) {
	st := testutil.NewStore(t)

	rows, err := CustomerSegments(context.Background(), st)
	require.NoError(t, err)
	require.Len(t, rows, 8)

	// Re-derive each label with the same ordered guard chain the CASE
	// uses: highest threshold checked first.
	for _, r := range rows {
		want := "New"
		switch {
		case r.TotalSpent >= 1500:
			want = "VIP"
		case r.TotalSpent >= 500:
			want = "Regular"
		}
		assert.Equal(t, want, r.Segment, "customer %d spent %v", r.CustomerID, r.TotalSpent)
	}
}

func TestCustomerSegments_Distribution(t *testing.T) {
	st := testutil.NewStore(t)

	rows, err := CustomerSegments(context.Background(), st)
	require.NoError(t, err)

	dist := make(map[string]int)
	for _, r := range rows {
		dist[r.Segment]++
	}
	assert.Equal(t, map[string]int{"VIP": 2, "Regular": 2, "New": 4}, dist)
}
