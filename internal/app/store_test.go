package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_SQLite(t *testing.T) {
	ctx := context.Background()
	store, err := OpenStore(ctx, StoreConfig{Driver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "data", "ledger.db")})
	require.NoError(t, err)
	defer store.Close(ctx)

	ledger := store.Ledger(nil)
	_, err = ledger.AddBook(ctx, "Dune", "Frank Herbert", "1965", "")
	require.NoError(t, err)
	_, err = ledger.BorrowBook(ctx, "dune", "alice")
	require.NoError(t, err)

	titles, err := ledger.ActiveLoanTitles(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune"}, titles)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), StoreConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unknown store driver")
}
