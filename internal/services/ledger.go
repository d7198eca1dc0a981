package services

//go:generate mockgen -source=ledger.go -destination=mock_ledger.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
)

// Error variables
var (
	ErrValidation        = errors.New("invalid input")
	ErrBookNotAvailable  = errors.New("book not available")
	ErrNoActiveLoan      = errors.New("no active loan for this user and title")
	ErrInconsistentState = errors.New("ledger state is inconsistent")
	ErrStoreUnavailable  = models.ErrStoreUnavailable
)

// BookRepository stores the catalog.
type BookRepository interface {
	Create(ctx context.Context, book models.Book) error
	ClaimAvailableByTitle(ctx context.Context, title string) (*models.Book, error)
	Release(ctx context.Context, bookID uuid.UUID) (bool, error)
	List(ctx context.Context, filter models.BookFilter) iter.Seq2[models.Book, error]
}

// LoanRepository stores active loans.
type LoanRepository interface {
	Create(ctx context.Context, loan models.Loan) error
	ClaimByUsernameAndTitle(ctx context.Context, username, title string) (*models.Loan, error)
	ListByUsername(ctx context.Context, username string) ([]models.Loan, error)
}

// HistoryRepository stores the append-only log.
type HistoryRepository interface {
	Append(ctx context.Context, entry models.HistoryEntry) error
	List(ctx context.Context, filter models.HistoryFilter) iter.Seq2[models.HistoryEntry, error]
}

// Transactor runs fn as one atomic unit of work.
type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher receives committed borrow and return events.
type EventPublisher interface {
	Publish(ctx context.Context, event models.LedgerEvent)
}

// LedgerService keeps books, active loans and history consistent with each other.
// Borrow and return run inside one transaction each, so a failure leaves no
// partial effects behind.
type LedgerService struct {
	books   BookRepository
	loans   LoanRepository
	history HistoryRepository
	tx      Transactor
	events  EventPublisher

	now   func() time.Time
	newID func() uuid.UUID
}

// NewLedgerService creates a LedgerService. events may be nil.
func NewLedgerService(
	books BookRepository,
	loans LoanRepository,
	history HistoryRepository,
	tx Transactor,
	events EventPublisher,
) *LedgerService {
	return &LedgerService{
		books:   books,
		loans:   loans,
		history: history,
		tx:      tx,
		events:  events,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
		newID: func() uuid.UUID {
			return uuid.Must(uuid.NewV7())
		},
	}
}

// AddBook adds an available copy to the catalog. Titles need not be unique.
func (s *LedgerService) AddBook(ctx context.Context, title, author, year, genre string) (uuid.UUID, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" || author == "" {
		return uuid.Nil, fmt.Errorf("%w: title and author are required", ErrValidation)
	}

	book := models.Book{
		ID:        s.newID(),
		Title:     title,
		Author:    author,
		Year:      strings.TrimSpace(year),
		Genre:     strings.TrimSpace(genre),
		Available: true,
	}
	if err := s.books.Create(ctx, book); err != nil {
		return uuid.Nil, err
	}
	return book.ID, nil
}

// BorrowBook lends the oldest available copy whose title matches case-insensitively.
func (s *LedgerService) BorrowBook(ctx context.Context, title, username string) (uuid.UUID, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(username) == "" {
		return uuid.Nil, fmt.Errorf("%w: title and username are required", ErrValidation)
	}

	var loan models.Loan
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		book, err := s.books.ClaimAvailableByTitle(ctx, title)
		if err != nil {
			return err
		}
		if book == nil {
			return ErrBookNotAvailable
		}

		loan = models.Loan{
			ID:         s.newID(),
			Username:   username,
			BookID:     book.ID,
			BookTitle:  book.Title,
			BorrowedOn: s.now(),
		}
		if err := s.loans.Create(ctx, loan); err != nil {
			if errors.Is(err, models.ErrAlreadyExists) {
				return fmt.Errorf("%w: book %s already on loan", ErrInconsistentState, book.ID)
			}
			return err
		}
		return s.history.Append(ctx, models.NewBorrowedEntry(s.newID(), loan))
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.publish(ctx, models.ActionBorrowed, loan, loan.BorrowedOn)
	return loan.ID, nil
}

// ReturnBook closes the user's oldest loan of the title.
func (s *LedgerService) ReturnBook(ctx context.Context, title, username string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: title and username are required", ErrValidation)
	}

	var (
		loan       models.Loan
		returnedOn time.Time
	)
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		claimed, err := s.loans.ClaimByUsernameAndTitle(ctx, username, title)
		if err != nil {
			return err
		}
		if claimed == nil {
			return ErrNoActiveLoan
		}
		loan = *claimed

		released, err := s.books.Release(ctx, loan.BookID)
		if err != nil {
			return err
		}
		if !released {
			return fmt.Errorf("%w: book %s was not on loan", ErrInconsistentState, loan.BookID)
		}

		returnedOn = s.now()
		return s.history.Append(ctx, models.NewReturnedEntry(s.newID(), loan, returnedOn))
	})
	if err != nil {
		return err
	}

	s.publish(ctx, models.ActionReturned, loan, returnedOn)
	return nil
}

// ActiveLoanTitles lists the titles the user currently holds, oldest loan first.
func (s *LedgerService) ActiveLoanTitles(ctx context.Context, username string) ([]string, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}

	loans, err := s.loans.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(loans))
	for _, l := range loans {
		titles = append(titles, l.BookTitle)
	}
	return titles, nil
}

// ListBooks streams the catalog in creation order. Ranging again re-reads the store.
func (s *LedgerService) ListBooks(ctx context.Context, filter models.BookFilter) iter.Seq2[models.Book, error] {
	return s.books.List(ctx, filter)
}

// ListHistory streams history entries in insertion order.
func (s *LedgerService) ListHistory(ctx context.Context, filter models.HistoryFilter) iter.Seq2[models.HistoryEntry, error] {
	return s.history.List(ctx, filter)
}

func (s *LedgerService) publish(ctx context.Context, action models.Action, loan models.Loan, at time.Time) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, models.LedgerEvent{
		EventID:    s.newID().String(),
		Action:     action,
		Username:   loan.Username,
		BookID:     loan.BookID.String(),
		BookTitle:  loan.BookTitle,
		OccurredAt: at,
	})
}
