package catalog

import (
	"context"
	"fmt"

	"github.com/sqlbook/sqlbook/internal/report"
	"github.com/sqlbook/sqlbook/internal/store"
)

const recordSaleSQL = `-- The only statement in the book that writes. Five units of the
-- wireless mouse leave stock. There is no guard clause: recording more
-- sales than stock covers drives stock_quantity negative, and running
-- it twice records two sales. The harness reseeds between runs instead
-- of guarding here.
UPDATE products
SET stock_quantity = stock_quantity - 5
WHERE id = 2;`

// saleProductID matches the id hardcoded in recordSaleSQL.
const saleProductID = 2

// RecordSaleRow reports the stock movement caused by one recorded sale.
type RecordSaleRow struct {
	ProductID   int64
	Name        string
	StockBefore int64
	StockAfter  int64
}

// RecordSale applies the five-unit sale and reports stock before and
// after. Exactly one row must be affected.
func RecordSale(ctx context.Context, st *store.Store) (RecordSaleRow, error) {
	r := RecordSaleRow{ProductID: saleProductID}

	err := st.QueryRow(ctx,
		"SELECT name, stock_quantity FROM products WHERE id = ?", saleProductID).
		Scan(&r.Name, &r.StockBefore)
	if err != nil {
		return RecordSaleRow{}, fmt.Errorf("read stock before sale: %w", err)
	}

	res, err := st.Exec(ctx, recordSaleSQL)
	if err != nil {
		return RecordSaleRow{}, fmt.Errorf("record sale: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return RecordSaleRow{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected != 1 {
		return RecordSaleRow{}, fmt.Errorf("record sale affected %d rows, expected 1", affected)
	}

	err = st.QueryRow(ctx,
		"SELECT stock_quantity FROM products WHERE id = ?", saleProductID).
		Scan(&r.StockAfter)
	if err != nil {
		return RecordSaleRow{}, fmt.Errorf("read stock after sale: %w", err)
	}

	return r, nil
}

func runRecordSale(ctx context.Context, st *store.Store) (*report.ResultSet, error) {
	r, err := RecordSale(ctx, st)
	if err != nil {
		return nil, err
	}

	rs := report.NewResultSet("record-sale",
		"product_id", "name", "stock_before", "stock_after")
	err = rs.AddRow(
		report.Int(r.ProductID),
		report.Text(r.Name),
		report.Int(r.StockBefore),
		report.Int(r.StockAfter),
	)
	if err != nil {
		return nil, err
	}
	return rs, nil
}
