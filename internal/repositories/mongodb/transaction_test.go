package mongodb

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
)

// setupReplicaSet starts a single-node replica set, which transactions require.
func setupReplicaSet(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		Cmd:          []string{"--replSet", "rs0", "--bind_ip_all"},
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) })

	code, _, err := container.Exec(ctx, []string{"mongosh", "--quiet", "--eval",
		"rs.initiate({_id: 'rs0', members: [{_id: 0, host: 'localhost:27017'}]})"})
	require.NoError(t, err)
	require.Equal(t, 0, code)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	uri := fmt.Sprintf("mongodb://%s:%s/?directConnection=true", host, port.Port())
	store, err := Connect(ctx, uri, "ledger_test")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(ctx) })

	require.Eventually(t, func() bool {
		var res struct {
			IsWritablePrimary bool `bson:"isWritablePrimary"`
		}
		err := store.client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&res)
		return err == nil && res.IsWritablePrimary
	}, 30*time.Second, 500*time.Millisecond)

	require.NoError(t, store.EnsureIndexes(ctx))
	return store
}

func TestTxManager_ReplicaSet(t *testing.T) {
	store := setupReplicaSet(t)
	ctx := context.Background()
	tm := store.TxManager()
	books := store.Books()
	loans := store.Loans()

	// collections must exist before they are written inside a transaction on older servers
	require.NoError(t, books.Create(ctx, models.Book{ID: uuid.Must(uuid.NewV7()), Title: "Dune", Author: "Herbert", Available: true}))

	t.Run("rollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := tm.Do(ctx, func(ctx context.Context) error {
			book, err := books.ClaimAvailableByTitle(ctx, "DUNE")
			require.NoError(t, err)
			require.NotNil(t, book)
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var available int
		for b, err := range books.List(ctx, models.BookFilter{AvailableOnly: true}) {
			require.NoError(t, err)
			assert.Equal(t, "Dune", b.Title)
			available++
		}
		assert.Equal(t, 1, available)
	})

	t.Run("commit", func(t *testing.T) {
		err := tm.Do(ctx, func(ctx context.Context) error {
			book, err := books.ClaimAvailableByTitle(ctx, "dune")
			if err != nil || book == nil {
				return fmt.Errorf("claim: %v", err)
			}
			return loans.Create(ctx, models.Loan{
				ID:         uuid.Must(uuid.NewV7()),
				Username:   "alice",
				BookID:     book.ID,
				BookTitle:  book.Title,
				BorrowedOn: time.Now().UTC(),
			})
		})
		require.NoError(t, err)

		titles, err := loans.ListByUsername(ctx, "Alice")
		require.NoError(t, err)
		assert.Len(t, titles, 1)

		book, err := books.ClaimAvailableByTitle(ctx, "Dune")
		assert.NoError(t, err)
		assert.Nil(t, book)
	})
}
