package entities

import (
	"time"
)

// Book представляет книгу каталога.
type Book struct {
	ID          string
	Title       string
	AuthorID    string
	ISBN        string
	PriceCents  int64
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
