package models

import "time"

// LedgerEvent is published after a borrow or return has been committed.
type LedgerEvent struct {
	EventID    string    `json:"event_id"`    // Unique event identifier
	Action     Action    `json:"action"`      // borrowed or returned
	Username   string    `json:"username"`    // Borrower
	BookID     string    `json:"book_id"`     // Book identifier
	BookTitle  string    `json:"book_title"`  // Title snapshot
	OccurredAt time.Time `json:"occurred_at"` // Time of the committed operation
}
