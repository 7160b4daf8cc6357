// Package repositories определяет порты персистентности каталога.
package repositories

import (
	"context"

	"bookstore/internal/catalog/domain/entities"
)

// AuthorRepository определяет интерфейс для операций сохранения авторов.
type AuthorRepository interface {
	Create(ctx context.Context, author *entities.Author) (*entities.Author, error)

	FindByID(ctx context.Context, id string) (*entities.Author, error)

	FindAll(ctx context.Context) ([]entities.Author, error)

	Update(ctx context.Context, author *entities.Author) (*entities.Author, error)

	Delete(ctx context.Context, id string) error
}
