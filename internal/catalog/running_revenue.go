package catalog

import (
	"context"
	"fmt"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/store"
)

const runningRevenueSQL = `-- Window frames. The running total accumulates every order so far; the
-- moving average sees at most the two prior orders plus the current
-- one, so the first two rows average over fewer than three. Both
-- windows order by date with an id tiebreak for the shared 2024-03-21.
SELECT
    id AS order_id,
    order_date,
    total_amount,
    SUM(total_amount) OVER (
        ORDER BY order_date ASC, id ASC
        ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW
    ) AS running_total,
    ROUND(AVG(total_amount) OVER (
        ORDER BY order_date ASC, id ASC
        ROWS BETWEEN 2 PRECEDING AND CURRENT ROW
    ), 2) AS moving_avg_3
FROM orders
ORDER BY order_date ASC, id ASC;`

// RunningRevenueRow is one order with revenue accumulated through it.
type RunningRevenueRow struct {
	OrderID      int64
	OrderDate    string
	TotalAmount  float64
	RunningTotal float64
	MovingAvg3   float64
}

// RunningRevenue returns every order in date order with a running
// revenue total and a three-order moving average.
func RunningRevenue(ctx context.Context, st *store.Store) ([]RunningRevenueRow, error) {
	rows, err := st.Query(ctx, runningRevenueSQL)
	if err != nil {
		return nil, fmt.Errorf("query running revenue: %w", err)
	}
	defer rows.Close()

	var out []RunningRevenueRow
	for rows.Next() {
		var r RunningRevenueRow
		if err := rows.Scan(&r.OrderID, &r.OrderDate, &r.TotalAmount, &r.RunningTotal, &r.MovingAvg3); err != nil {
			return nil, fmt.Errorf("scan running revenue: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate running revenue: %w", err)
	}

	if out == nil {
		out = []RunningRevenueRow{}
	}
	return out, nil
}

func runRunningRevenue(ctx context.Context, st *store.Store) (*report.ResultSet, error) {
	items, err := RunningRevenue(ctx, st)
	if err != nil {
		return nil, err
	}

	rs := report.NewResultSet("running-revenue",
		"order_id", "order_date", "total_amount", "running_total", "moving_avg_3")
	for _, r := range items {
		err := rs.AddRow(
			report.Int(r.OrderID),
			report.Text(r.OrderDate),
			report.MoneyFromFloat(r.TotalAmount),
			report.MoneyFromFloat(r.RunningTotal),
			report.MoneyFromFloat(r.MovingAvg3),
		)
		if err != nil {
			return nil, err
		}
	}
	return rs, nil
}
