// Package entities содержит сущности каталога книжного магазина.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена каталога.
var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrBookNotFound   = errors.New("book not found")
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrEmptyTitle     = errors.New("title cannot be empty")
)

// Author представляет автора книг.
type Author struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
