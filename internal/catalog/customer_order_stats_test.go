package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/testutil"
)

func TestCustomerOrderStats_ExactGroups(t *testing.T) {
	st := testutil.NewStore(t)

	rows, err := CustomerOrderStats(context.Background(), st)
	require.NoError(t, err)

	// Four of the six ordering customers clear the 500 floor. Money
	// columns are compared through the same cent rounding the report
	// layer applies, so float SUM noise cannot fail the test.
	want := []struct {
		customerID int64
		orderCount int64
		totalSpent string
		avgOrder   string
		largest    string
	}{
		{5, 2, "1929.98", "964.99", "1349.98"},
		{1, 2, "1739.98", "869.99", "1389.98"},
		{3, 2, "609.96", "304.98", "479.98"},
		{2, 2, "574.98", "287.49", "450.00"},
	}

	require.Len(t, rows, len(want))
	for i, w := range want {
		r := rows[i]
		assert.Equal(t, w.customerID, r.CustomerID, "row %d customer", i)
		assert.Equal(t, w.orderCount, r.OrderCount, "row %d count", i)
		assert.Equal(t, w.totalSpent, report.MoneyFromFloat(r.TotalSpent).Display(), "row %d spent", i)
		assert.Equal(t, w.avgOrder, report.MoneyFromFloat(r.AvgOrder).Display(), "row %d avg", i)
		assert.Equal(t, w.largest, report.MoneyFromFloat(r.LargestOrder).Display(), "row %d largest", i)
	}
}

func TestCustomerOrderStats_HavingFloor(t *testing.T) {
	st := testutil.NewStore(t)

	rows, err := CustomerOrderStats(context.Background(), st)
	require.NoError(t, err)

	for i, r := range rows {
		assert.Greater(t, r.TotalSpent, 500.0, "customer %d", r.CustomerID)
		if i > 0 {
			assert.LessOrEqual(t, r.TotalSpent, rows[i-1].TotalSpent, "total_spent increased at row %d", i)
		}
	}
}
