// Package api определяет интерфейсы прикладного уровня каталога.
package api

import (
	"context"

	"bookstore/internal/catalog/domain/entities"
)

// CatalogUseCase определяет операции каталога книжного магазина.
type CatalogUseCase interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	GetAuthor(ctx context.Context, id string) (*entities.Author, error)
	CreateAuthor(ctx context.Context, name string) (*entities.Author, error)
	UpdateAuthor(ctx context.Context, id, name string) (*entities.Author, error)
	DeleteAuthor(ctx context.Context, id string) error

	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBook(ctx context.Context, id string) (*entities.Book, error)
	CreateBook(ctx context.Context, book *entities.Book) (*entities.Book, error)
	UpdateBook(ctx context.Context, book *entities.Book) (*entities.Book, error)
	DeleteBook(ctx context.Context, id string) error
}
