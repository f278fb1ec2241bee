package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlbook/sqlbook/internal/store"
)

func TestSeedCommandCreatesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "storefront.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewSeedCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ Seeded")
	assert.Contains(t, buf.String(), "42 rows across 4 tables")

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file should exist")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	var products int
	require.NoError(t, st.QueryRow(context.Background(), "SELECT COUNT(*) FROM products").Scan(&products))
	assert.Equal(t, 10, products)
}

func TestSeedCommandJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "storefront.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewSeedCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   SeedOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, dbPath, resp.Data.Database)
	assert.Equal(t, 4, resp.Data.Tables)
	assert.Equal(t, 42, resp.Data.Rows)
}

func TestSeedCommandRequiresDB(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewSeedCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}

func TestSeedCommandRejectsInMemory(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewSeedCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", ":memory:"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in-memory")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSeedCommandExistingSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "storefront.db")

	for i := 0; i < 2; i++ {
		buf := &bytes.Buffer{}
		rootOpts := &RootOptions{Format: "text"}
		cmd := NewSeedCommand(rootOpts)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{"--db", dbPath})

		err := cmd.Execute()
		if i == 0 {
			require.NoError(t, err)
			continue
		}

		// Second seed hits the existing tables
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize database")
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	}
}
