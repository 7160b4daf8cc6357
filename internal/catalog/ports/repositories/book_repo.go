package repositories

import (
	"context"

	"bookstore/internal/catalog/domain/entities"
)

// BookRepository определяет интерфейс для операций сохранения книг.
type BookRepository interface {
	Create(ctx context.Context, book *entities.Book) (*entities.Book, error)

	FindByID(ctx context.Context, id string) (*entities.Book, error)

	FindAll(ctx context.Context) ([]entities.Book, error)

	Update(ctx context.Context, book *entities.Book) (*entities.Book, error)

	Delete(ctx context.Context, id string) error
}
