package models

import (
	"time"

	"github.com/google/uuid"
)

// Genre is the category a book is filed under
type Genre string

const (
	GenreWar        Genre = "war"
	GenreTechnology Genre = "technology"
	GenreSport      Genre = "sport"
	GenreHistory    Genre = "history"
	GenrePolitics   Genre = "politics"
)

// BookStatus tells whether a book can currently be borrowed
type BookStatus string

const (
	StatusAvailable BookStatus = "Available"
	StatusBorrowed  BookStatus = "Borrowed"
)

// Book represents a book shared by its owner.
// Status is Borrowed exactly when BorrowedBy is set.
type Book struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Pages      int        `json:"pages" db:"pages"`
	Author     string     `json:"author" db:"author"`
	Genre      Genre      `json:"genre" db:"genre"`
	Status     BookStatus `json:"status" db:"status"`
	OwnerID    uuid.UUID  `json:"owner" db:"owner_id"`
	BorrowedBy *uuid.UUID `json:"borrowed_by" db:"borrowed_by"`
	Version    int64      `json:"-" db:"version"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// IsBorrowedBy reports whether userID currently holds the book
func (b *Book) IsBorrowedBy(userID uuid.UUID) bool {
	return b.BorrowedBy != nil && *b.BorrowedBy == userID
}
