package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRow_ArityMismatch(t *testing.T) {
	rs := NewResultSet("top-electronics", "id", "name", "price")

	err := rs.AddRow(Int(1), Text("Laptop Pro 15"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 cells")
	assert.Equal(t, 0, rs.RowCount())
}

func TestAddRow_PreservesOrder(t *testing.T) {
	rs := NewResultSet("q", "id")
	require.NoError(t, rs.AddRow(Int(3)))
	require.NoError(t, rs.AddRow(Int(1)))
	require.NoError(t, rs.AddRow(Int(2)))

	assert.Equal(t, 3, rs.RowCount())
	assert.Equal(t, Int(3), rs.Rows[0][0])
	assert.Equal(t, Int(1), rs.Rows[1][0])
	assert.Equal(t, Int(2), rs.Rows[2][0])
}

func TestColumn_Lookup(t *testing.T) {
	rs := NewResultSet("q", "id", "name", "price")

	assert.Equal(t, 0, rs.Column("id"))
	assert.Equal(t, 2, rs.Column("price"))
	assert.Equal(t, -1, rs.Column("missing"))
}

func TestRenderText_AlignsColumns(t *testing.T) {
	rs := NewResultSet("top-electronics", "id", "name", "price")
	require.NoError(t, rs.AddRow(Int(1), Text("Laptop Pro 15"), MoneyFromFloat(1299.99)))
	require.NoError(t, rs.AddRow(Int(4), Text("4K Monitor"), MoneyFromFloat(350)))

	var buf strings.Builder
	require.NoError(t, rs.RenderText(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, " id | name          | price  ", lines[0])
	assert.Equal(t, "----+---------------+---------", lines[1])
	assert.Equal(t, "  1 | Laptop Pro 15 | 1299.99", lines[2])
	assert.Equal(t, "  4 | 4K Monitor    |  350.00", lines[3])
	assert.Equal(t, "(2 rows)", lines[4])
}

func TestRenderText_RuneAwareWidths(t *testing.T) {
	// "Café" is 4 runes but 5 bytes; byte-based padding would misalign.
	rs := NewResultSet("q", "name", "stock")
	require.NoError(t, rs.AddRow(Text("Café Press Coffee Maker"), Int(55)))
	require.NoError(t, rs.AddRow(Text("Desk Lamp"), Int(90)))

	var buf strings.Builder
	require.NoError(t, rs.RenderText(&buf))

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 4)

	// Every data line has its separator in the same rune position.
	first := strings.IndexRune(lines[2], '|')
	second := strings.IndexRune(lines[3], '|')
	assert.Equal(t, len([]rune(lines[2][:first])), len([]rune(lines[3][:second])))
}

func TestRenderText_EmptyResult(t *testing.T) {
	rs := NewResultSet("q", "id", "name")

	var buf strings.Builder
	require.NoError(t, rs.RenderText(&buf))

	assert.Contains(t, buf.String(), "(0 rows)")
}

func TestRenderText_SingularRowCount(t *testing.T) {
	rs := NewResultSet("record-sale", "product_id", "stock_after")
	require.NoError(t, rs.AddRow(Int(2), Int(115)))

	var buf strings.Builder
	require.NoError(t, rs.RenderText(&buf))

	assert.Contains(t, buf.String(), "(1 row)")
	assert.NotContains(t, buf.String(), "(1 rows)")
}
