package models

import "github.com/google/uuid"

// Book represents a single physical copy in the catalog.
// Several books may share a title; each one is borrowed independently.
type Book struct {
	ID        uuid.UUID `json:"id" db:"id"`               // Primary key, UUIDv7 so ordering follows creation
	Title     string    `json:"title" db:"title"`         // Free text, not unique
	Author    string    `json:"author" db:"author"`       // Author name
	Year      string    `json:"year" db:"year"`           // Publication year as entered
	Genre     string    `json:"genre" db:"genre"`         // Optional genre, empty when unknown
	Available bool      `json:"available" db:"available"` // False while an active loan references the book
}

// BookFilter narrows a catalog listing. The zero value lists every book.
type BookFilter struct {
	AvailableOnly bool   // Only books that can be borrowed right now
	TitleContains string // Case-insensitive substring of the title
}
