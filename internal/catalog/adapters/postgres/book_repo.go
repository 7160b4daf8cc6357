package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"bookstore/internal/catalog/domain/entities"
	"bookstore/internal/catalog/ports/repositories"
	"bookstore/pkg/logger"
)

// Код SQLSTATE нарушения внешнего ключа.
const foreignKeyViolationCode = "23503"

// BookRepository реализует интерфейс repositories.BookRepository для работы с Postgres.
type BookRepository struct {
	pool PgxPoolInterface
}

// NewBookRepository создает новый экземпляр репозитория книг.
func NewBookRepository(pool PgxPoolInterface) repositories.BookRepository {
	return &BookRepository{pool: pool}
}

const bookColumns = `id, title, author_id, isbn, price_cents, published_at, created_at, updated_at`

func scanBook(row pgx.Row) (*entities.Book, error) {
	var book entities.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.AuthorID,
		&book.ISBN,
		&book.PriceCents,
		&book.PublishedAt,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Create создает новую книгу.
func (r *BookRepository) Create(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Create"))

	query := `
        INSERT INTO books (title, author_id, isbn, price_cents, published_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + bookColumns

	created, err := scanBook(r.pool.QueryRow(ctx, query,
		book.Title,
		book.AuthorID,
		book.ISBN,
		book.PriceCents,
		book.PublishedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			log.Debug(ctx, "unknown author for book", zap.String("author_id", book.AuthorID))
			return nil, entities.ErrAuthorNotFound
		}
		log.Error(ctx, "error creating book", zap.Error(err))
		return nil, fmt.Errorf("error creating book: %w", err)
	}

	return created, nil
}

// FindByID находит книгу по ID.
func (r *BookRepository) FindByID(ctx context.Context, id string) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "FindByID"))

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "book not found", zap.String("id", id))
			return nil, entities.ErrBookNotFound
		}
		log.Error(ctx, "error finding book by id", zap.Error(err))
		return nil, fmt.Errorf("error querying book by id: %w", err)
	}

	return book, nil
}

// FindAll возвращает все книги, отсортированные по названию.
func (r *BookRepository) FindAll(ctx context.Context) ([]entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "FindAll"))

	query := `SELECT ` + bookColumns + ` FROM books ORDER BY title`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error listing books", zap.Error(err))
		return nil, fmt.Errorf("error listing books: %w", err)
	}
	defer rows.Close()

	books := make([]entities.Book, 0)
	for rows.Next() {
		var book entities.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.AuthorID,
			&book.ISBN,
			&book.PriceCents,
			&book.PublishedAt,
			&book.CreatedAt,
			&book.UpdatedAt,
		); err != nil {
			log.Error(ctx, "error scanning book", zap.Error(err))
			return nil, fmt.Errorf("error scanning book: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating books", zap.Error(err))
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

// Update обновляет данные книги.
func (r *BookRepository) Update(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Update"))

	query := `
        UPDATE books
        SET title = $2, author_id = $3, isbn = $4, price_cents = $5, published_at = $6, updated_at = $7
        WHERE id = $1
        RETURNING ` + bookColumns

	updated, err := scanBook(r.pool.QueryRow(ctx, query,
		book.ID,
		book.Title,
		book.AuthorID,
		book.ISBN,
		book.PriceCents,
		book.PublishedAt,
		time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "book not found for update", zap.String("id", book.ID))
			return nil, entities.ErrBookNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			log.Debug(ctx, "unknown author for book", zap.String("author_id", book.AuthorID))
			return nil, entities.ErrAuthorNotFound
		}
		log.Error(ctx, "error updating book", zap.Error(err))
		return nil, fmt.Errorf("error updating book: %w", err)
	}

	return updated, nil
}

// Delete удаляет книгу по ID.
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Delete"))

	query := `
        DELETE FROM books
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting book", zap.Error(err))
		return fmt.Errorf("error deleting book: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "book not found for deletion", zap.String("id", id))
		return entities.ErrBookNotFound
	}

	return nil
}
