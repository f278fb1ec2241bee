package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/testutil"
)

func TestCustomerOrderCounts_AllEightCustomers(t *testing.T) {
	st := testutil.NewStore(t)

	rows, err := CustomerOrderCounts(context.Background(), st)
	require.NoError(t, err)

	want := []struct {
		customerID int64
		name       string
		orderCount int64
		totalSpent string
	}{
		{5, "Emma Wilson", 2, "1929.98"},
		{1, "Alice Johnson", 2, "1739.98"},
		{3, "Carla Gomez", 2, "609.96"},
		{2, "Brian Smith", 2, "574.98"},
		{6, "Felix Nguyen", 1, "179.98"},
		{4, "David Lee", 1, "69.98"},
		{7, "Grace Kim", 0, "0.00"},
		{8, "Henry Adams", 0, "0.00"},
	}

	require.Len(t, rows, len(want))
	for i, w := range want {
		r := rows[i]
		assert.Equal(t, w.customerID, r.CustomerID, "row %d", i)
		assert.Equal(t, w.name, r.CustomerName, "row %d", i)
		assert.Equal(t, w.orderCount, r.OrderCount, "row %d", i)
		assert.Equal(t, w.totalSpent, report.MoneyFromFloat(r.TotalSpent).Display(), "row %d", i)
	}
}

func TestCustomerOrderCounts_CoversInnerJoin(t *testing.T) {
	st := testutil.NewStore(t)
	ctx := context.Background()

	inner, err := OrdersWithCustomers(ctx, st)
	require.NoError(t, err)
	outer, err := CustomerOrderCounts(ctx, st)
	require.NoError(t, err)

	counts := make(map[int64]int64)
	for _, r := range outer {
		counts[r.CustomerID] = r.OrderCount
	}

	// Every customer visible through the inner join appears here with a
	// positive count; the complement is exactly the zero-count pair.
	for _, r := range inner {
		assert.Greater(t, counts[r.CustomerID], int64(0), "customer %d", r.CustomerID)
	}

	var zeros []int64
	for _, r := range outer {
		if r.OrderCount == 0 {
			zeros = append(zeros, r.CustomerID)
		}
	}
	assert.Equal(t, []int64{7, 8}, zeros)
}
