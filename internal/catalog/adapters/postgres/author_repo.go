// Package postgres реализует порты персистентности каталога.
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

// PgxPoolInterface описывает используемое подмножество pgxpool.Pool.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// AuthorRepository реализует интерфейс repositories.AuthorRepository для работы с Postgres.
type AuthorRepository struct {
	pool PgxPoolInterface
}

// NewAuthorRepository создает новый экземпляр репозитория авторов.
func NewAuthorRepository(pool PgxPoolInterface) repositories.AuthorRepository {
	return &AuthorRepository{pool: pool}
}

// Create создает нового автора.
func (r *AuthorRepository) Create(ctx context.Context, author *entities.Author) (*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", "Create"))

	query := `
        INSERT INTO authors (name)
        VALUES ($1)
        RETURNING id, name, created_at, updated_at
    `

	var created entities.Author
	err := r.pool.QueryRow(ctx, query, author.Name).Scan(
		&created.ID,
		&created.Name,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		log.Error(ctx, "error creating author", zap.Error(err))
		return nil, fmt.Errorf("error creating author: %w", err)
	}

	return &created, nil
}

// FindByID находит автора по ID.
func (r *AuthorRepository) FindByID(ctx context.Context, id string) (*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", "FindByID"))

	query := `
        SELECT id, name, created_at, updated_at
        FROM authors
        WHERE id = $1
    `

	var author entities.Author
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&author.ID,
		&author.Name,
		&author.CreatedAt,
		&author.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "author not found", zap.String("id", id))
			return nil, entities.ErrAuthorNotFound
		}
		log.Error(ctx, "error finding author by id", zap.Error(err))
		return nil, fmt.Errorf("error querying author by id: %w", err)
	}

	return &author, nil
}

// FindAll возвращает всех авторов, отсортированных по имени.
func (r *AuthorRepository) FindAll(ctx context.Context) ([]entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", "FindAll"))

	query := `
        SELECT id, name, created_at, updated_at
        FROM authors
        ORDER BY name
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error listing authors", zap.Error(err))
		return nil, fmt.Errorf("error listing authors: %w", err)
	}
	defer rows.Close()

	authors := make([]entities.Author, 0)
	for rows.Next() {
		var author entities.Author
		if err := rows.Scan(&author.ID, &author.Name, &author.CreatedAt, &author.UpdatedAt); err != nil {
			log.Error(ctx, "error scanning author", zap.Error(err))
			return nil, fmt.Errorf("error scanning author: %w", err)
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating authors", zap.Error(err))
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

// Update обновляет данные автора.
func (r *AuthorRepository) Update(ctx context.Context, author *entities.Author) (*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", "Update"))

	query := `
        UPDATE authors
        SET name = $2, updated_at = $3
        WHERE id = $1
        RETURNING id, name, created_at, updated_at
    `

	var updated entities.Author
	err := r.pool.QueryRow(ctx, query, author.ID, author.Name, time.Now().UTC()).Scan(
		&updated.ID,
		&updated.Name,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "author not found for update", zap.String("id", author.ID))
			return nil, entities.ErrAuthorNotFound
		}
		log.Error(ctx, "error updating author", zap.Error(err))
		return nil, fmt.Errorf("error updating author: %w", err)
	}

	return &updated, nil
}

// Delete удаляет автора по ID.
func (r *AuthorRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", "Delete"))

	query := `
        DELETE FROM authors
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting author", zap.Error(err))
		return fmt.Errorf("error deleting author: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "author not found for deletion", zap.String("id", id))
		return entities.ErrAuthorNotFound
	}

	return nil
}
