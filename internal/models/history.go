package models

import (
	"time"

	"github.com/google/uuid"
)

// Action tags a history entry.
type Action string

const (
	ActionBorrowed Action = "borrowed"
	ActionReturned Action = "returned"
)

// HistoryDateLayout is the layout used to display history timestamps.
const HistoryDateLayout = "2006-01-02 15:04"

// HistoryEntry is one append-only audit record of a borrow or a return.
// Exactly one of BorrowedOn and ReturnedOn is set for entries written by the ledger;
// legacy entries may carry neither.
type HistoryEntry struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Username   string     `json:"username" db:"username"`
	BookID     uuid.UUID  `json:"book_id" db:"book_id"`
	BookTitle  string     `json:"book_title" db:"book_title"`
	Action     Action     `json:"action" db:"action"`
	BorrowedOn *time.Time `json:"borrowed_on,omitempty" db:"borrowed_on"`
	ReturnedOn *time.Time `json:"returned_on,omitempty" db:"returned_on"`
}

// HistoryFilter narrows a history listing. The zero value lists every entry.
type HistoryFilter struct {
	Username string // Case-insensitive exact username
}

// NewBorrowedEntry builds the history entry recorded when loan starts.
func NewBorrowedEntry(id uuid.UUID, loan Loan) HistoryEntry {
	borrowedOn := loan.BorrowedOn
	return HistoryEntry{
		ID:         id,
		Username:   loan.Username,
		BookID:     loan.BookID,
		BookTitle:  loan.BookTitle,
		Action:     ActionBorrowed,
		BorrowedOn: &borrowedOn,
	}
}

// NewReturnedEntry builds the history entry recorded when loan ends at returnedOn.
func NewReturnedEntry(id uuid.UUID, loan Loan, returnedOn time.Time) HistoryEntry {
	return HistoryEntry{
		ID:         id,
		Username:   loan.Username,
		BookID:     loan.BookID,
		BookTitle:  loan.BookTitle,
		Action:     ActionReturned,
		ReturnedOn: &returnedOn,
	}
}

// Timestamp returns the populated timestamp, preferring BorrowedOn.
func (e HistoryEntry) Timestamp() (time.Time, bool) {
	switch {
	case e.BorrowedOn != nil:
		return *e.BorrowedOn, true
	case e.ReturnedOn != nil:
		return *e.ReturnedOn, true
	default:
		return time.Time{}, false
	}
}

// DisplayDate formats the entry timestamp for listings, or "-" when it is unknown.
func (e HistoryEntry) DisplayDate() string {
	ts, ok := e.Timestamp()
	if !ok {
		return "-"
	}
	return ts.Format(HistoryDateLayout)
}
