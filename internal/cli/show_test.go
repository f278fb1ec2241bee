package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCommandBySlug(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"price-ranks"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "-- 7. price-ranks")
	assert.Contains(t, output, "-- Concepts: RANK, ROW_NUMBER, PARTITION BY")
	assert.Contains(t, output, "PARTITION BY category")
}

func TestShowCommandByID(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"1"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "top-electronics")
	assert.Contains(t, output, "WHERE category = 'Electronics'")
}

func TestShowCommandMutationNotice(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"record-sale"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Mutates the database")
}

func TestShowCommandUnknownQuery(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"warehouse-report"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown query")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestShowCommandUnknownQueryJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"warehouse-report"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_UNKNOWN_QUERY", resp.Error.Code)
}

func TestShowCommandJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"monthly-sales"})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   ShowOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 8, resp.Data.ID)
	assert.Equal(t, "monthly-sales", resp.Data.Slug)
	assert.Contains(t, resp.Data.Statement, "WITH dated_orders AS")
}

func TestLookupQuery(t *testing.T) {
	q, ok := lookupQuery("running-revenue")
	require.True(t, ok)
	assert.Equal(t, 9, q.ID)

	q, ok = lookupQuery("11")
	require.True(t, ok)
	assert.Equal(t, "product-watchlist", q.Slug)

	_, ok = lookupQuery("0")
	assert.False(t, ok)

	_, ok = lookupQuery("nonsense")
	assert.False(t, ok)
}
