package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlbook/sqlbook/internal/store"
	"github.com/sqlbook/sqlbook/internal/testutil"
)

func TestTopElectronics_ExactRows(t *testing.T) {
	st := testutil.NewStore(t)

	rows, err := TopElectronics(context.Background(), st)
	require.NoError(t, err)

	// The two 89.99 products fill ranks four and five in id order; the
	// 49.99 hub misses the cut.
	want := []TopElectronicsRow{
		{ID: 1, Name: "Laptop Pro 15", Category: "Electronics", Price: 1299.99},
		{ID: 4, Name: "4K Monitor", Category: "Electronics", Price: 350.00},
		{ID: 6, Name: "Noise-Canceling Headphones", Category: "Electronics", Price: 249.99},
		{ID: 2, Name: "Wireless Mouse", Category: "Electronics", Price: 89.99},
		{ID: 3, Name: "Mechanical Keyboard", Category: "Electronics", Price: 89.99},
	}
	assert.Equal(t, want, rows)
}

func TestTopElectronics_Properties(t *testing.T) {
	st := testutil.NewStore(t)

	rows, err := TopElectronics(context.Background(), st)
	require.NoError(t, err)
	require.LessOrEqual(t, len(rows), 5)

	for i, r := range rows {
		assert.Equal(t, "Electronics", r.Category)
		if i > 0 {
			assert.LessOrEqual(t, r.Price, rows[i-1].Price, "price increased at row %d", i)
		}
	}
}

func TestTopElectronics_EmptyStore(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Init(context.Background()))

	rows, err := TopElectronics(context.Background(), st)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
