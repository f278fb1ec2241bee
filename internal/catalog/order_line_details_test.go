package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/testutil"
)

func TestOrderLineDetails_FourteenLines(t *testing.T) {
	st := testutil.NewStore(t)

	rows, err := OrderLineDetails(context.Background(), st)
	require.NoError(t, err)
	require.Len(t, rows, 14)

	// Newest date first; same-day orders 3 and 4 fall back to id order,
	// and multi-line orders keep their line order.
	wantOrderIDs := []int64{10, 9, 9, 8, 8, 7, 7, 6, 5, 3, 4, 2, 1, 1}
	gotOrderIDs := make([]int64, len(rows))
	for i, r := range rows {
		gotOrderIDs[i] = r.OrderID
	}
	assert.Equal(t, wantOrderIDs, gotOrderIDs)
}

func TestOrderLineDetails_LineTotalExact(t *testing.T) {
	st := testutil.NewStore(t)

	rows, err := OrderLineDetails(context.Background(), st)
	require.NoError(t, err)

	for _, r := range rows {
		want := decimal.NewFromFloat(r.UnitPrice).Round(2).Mul(decimal.NewFromInt(r.Quantity))
		got := decimal.NewFromFloat(r.LineTotal).Round(2)
		assert.True(t, want.Equal(got),
			"order %d %s: line_total %s, want %s", r.OrderID, r.ProductName, got, want)
	}
}

func TestOrderLineDetails_PromotionalPrice(t *testing.T) {
	st := testutil.NewStore(t)

	rows, err := OrderLineDetails(context.Background(), st)
	require.NoError(t, err)

	var promo *OrderLineDetailsRow
	for i := range rows {
		if rows[i].OrderID == 3 {
			promo = &rows[i]
			break
		}
	}
	require.NotNil(t, promo, "order 3 line missing")

	assert.Equal(t, "Noise-Canceling Headphones", promo.ProductName)
	assert.Equal(t, int64(2), promo.Quantity)
	assert.Equal(t, "239.99", report.MoneyFromFloat(promo.UnitPrice).Display())
	assert.Equal(t, "479.98", report.MoneyFromFloat(promo.LineTotal).Display())
}
