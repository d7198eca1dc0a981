package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-library-ledger/internal/logger"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// --- Setup Postgres ---
func setupPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	logger.Initialize("debug", "json")
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "secret", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:secret@%s:%s/testdb?sslmode=disable", host, port.Port())
	db, err := OpenPostgres(ctx, dsn, 20, 10)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestPostgres_BorrowReturnCycle(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	tm := NewTxManager(db)
	books := NewBookRepository(db, TxFromContext)
	loans := NewLoanRepository(db, TxFromContext)
	history := NewHistoryRepository(db, TxFromContext)

	book := newBook("1984", true)
	require.NoError(t, books.Create(ctx, book))

	var loan models.Loan
	err := tm.Do(ctx, func(ctx context.Context) error {
		claimed, err := books.ClaimAvailableByTitle(ctx, "1984")
		if err != nil {
			return err
		}
		require.NotNil(t, claimed)
		loan = models.Loan{
			ID:         uuid.Must(uuid.NewV7()),
			Username:   "alice",
			BookID:     claimed.ID,
			BookTitle:  claimed.Title,
			BorrowedOn: time.Now().UTC().Truncate(time.Microsecond),
		}
		if err := loans.Create(ctx, loan); err != nil {
			return err
		}
		return history.Append(ctx, models.NewBorrowedEntry(uuid.Must(uuid.NewV7()), loan))
	})
	require.NoError(t, err)

	claimed, err := books.ClaimAvailableByTitle(ctx, "1984")
	require.NoError(t, err)
	assert.Nil(t, claimed, "the only copy is out")

	err = tm.Do(ctx, func(ctx context.Context) error {
		returned, err := loans.ClaimByUsernameAndTitle(ctx, "ALICE", "1984")
		if err != nil {
			return err
		}
		require.NotNil(t, returned)
		assert.WithinDuration(t, loan.BorrowedOn, returned.BorrowedOn, time.Millisecond)
		ok, err := books.Release(ctx, returned.BookID)
		if err != nil {
			return err
		}
		assert.True(t, ok)
		return history.Append(ctx, models.NewReturnedEntry(uuid.Must(uuid.NewV7()), *returned, time.Now().UTC()))
	})
	require.NoError(t, err)

	all := collectBooks(t, books, models.BookFilter{AvailableOnly: true})
	assert.Len(t, all, 1)

	var actions []models.Action
	for e, err := range history.List(ctx, models.HistoryFilter{Username: "alice"}) {
		require.NoError(t, err)
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []models.Action{models.ActionBorrowed, models.ActionReturned}, actions)
}

// --- Concurrency Tests ---
func TestPostgres_ConcurrentClaimsOfLastCopy(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	tm := NewTxManager(db)
	books := NewBookRepository(db, TxFromContext)
	loans := NewLoanRepository(db, TxFromContext)

	const copies = 3
	for i := 0; i < copies; i++ {
		require.NoError(t, books.Create(ctx, newBook("Dune", true)))
	}

	const borrowers = 12
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		claimed = map[uuid.UUID]int{}
		misses  int
	)
	for i := 0; i < borrowers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := tm.Do(ctx, func(ctx context.Context) error {
				book, err := books.ClaimAvailableByTitle(ctx, "dune")
				if err != nil || book == nil {
					mu.Lock()
					misses++
					mu.Unlock()
					return err
				}
				mu.Lock()
				claimed[book.ID]++
				mu.Unlock()
				return loans.Create(ctx, models.Loan{
					ID:         uuid.Must(uuid.NewV7()),
					Username:   fmt.Sprintf("reader-%d", i),
					BookID:     book.ID,
					BookTitle:  book.Title,
					BorrowedOn: time.Now().UTC(),
				})
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, claimed, copies)
	for id, n := range claimed {
		assert.Equal(t, 1, n, "book %s claimed more than once", id)
	}
	assert.Equal(t, borrowers-copies, misses)

	var loanCount int
	require.NoError(t, db.Get(&loanCount, `SELECT COUNT(*) FROM active_loans`))
	assert.Equal(t, copies, loanCount)
}

func TestPostgres_AccountUniqueUsername(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	repo := NewAccountRepository(db)

	account := models.Account{Username: "alice", PasswordHash: "x", Role: models.RoleUser, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, account))
	assert.ErrorIs(t, repo.Create(ctx, account), models.ErrAlreadyExists)
}
