package models

import (
	"time"

	"github.com/google/uuid"
)

// Loan is an active loan: a book currently checked out by a user.
// The record is deleted when the book is returned.
type Loan struct {
	ID         uuid.UUID `json:"id" db:"id"`                   // Primary key
	Username   string    `json:"username" db:"username"`       // Borrower
	BookID     uuid.UUID `json:"book_id" db:"book_id"`         // Borrowed book
	BookTitle  string    `json:"book_title" db:"book_title"`   // Title snapshot taken at borrow time
	BorrowedOn time.Time `json:"borrowed_on" db:"borrowed_on"` // When the loan started
}
