package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHistoryEntry_DisplayDate(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 59, 0, time.UTC)

	tests := []struct {
		name  string
		entry HistoryEntry
		want  string
	}{
		{
			name:  "borrowed",
			entry: HistoryEntry{Action: ActionBorrowed, BorrowedOn: &at},
			want:  "2024-03-09 14:05",
		},
		{
			name:  "returned",
			entry: HistoryEntry{Action: ActionReturned, ReturnedOn: &at},
			want:  "2024-03-09 14:05",
		},
		{
			name:  "legacy entry without timestamps",
			entry: HistoryEntry{Action: ActionReturned},
			want:  "-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.DisplayDate())
		})
	}
}

func TestNewEntries(t *testing.T) {
	borrowedOn := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	returnedOn := borrowedOn.Add(48 * time.Hour)
	loan := Loan{
		ID:         uuid.New(),
		Username:   "alice",
		BookID:     uuid.New(),
		BookTitle:  "1984",
		BorrowedOn: borrowedOn,
	}

	borrowed := NewBorrowedEntry(uuid.New(), loan)
	assert.Equal(t, ActionBorrowed, borrowed.Action)
	assert.Equal(t, loan.BookID, borrowed.BookID)
	assert.Equal(t, "1984", borrowed.BookTitle)
	if assert.NotNil(t, borrowed.BorrowedOn) {
		assert.Equal(t, borrowedOn, *borrowed.BorrowedOn)
	}
	assert.Nil(t, borrowed.ReturnedOn)

	returned := NewReturnedEntry(uuid.New(), loan, returnedOn)
	assert.Equal(t, ActionReturned, returned.Action)
	assert.Equal(t, "alice", returned.Username)
	assert.Nil(t, returned.BorrowedOn)
	if assert.NotNil(t, returned.ReturnedOn) {
		assert.Equal(t, returnedOn, *returned.ReturnedOn)
	}
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("")
	assert.True(t, ok)
	assert.Equal(t, RoleUser, role)

	role, ok = ParseRole("Admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("root")
	assert.False(t, ok)
}
