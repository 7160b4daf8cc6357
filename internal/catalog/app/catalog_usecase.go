// Package app реализует прикладные операции каталога.
package app

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"bookstore/internal/catalog/domain/entities"
	"bookstore/internal/catalog/ports/api"
	"bookstore/internal/catalog/ports/cache"
	"bookstore/internal/catalog/ports/repositories"
	"bookstore/pkg/logger"
)

// Ключи кэша списков каталога.
const (
	cacheKeyAuthors = "catalog:authors"
	cacheKeyBooks   = "catalog:books"
)

const (
	msgCacheHit           = "catalog cache hit"
	msgCacheMiss          = "catalog cache miss"
	msgErrCacheRead       = "failed to read catalog cache"
	msgErrCacheWrite      = "failed to write catalog cache"
	msgErrCacheInvalidate = "failed to invalidate catalog cache"

	errCtxValidatingName  = "validating author name"
	errCtxValidatingTitle = "validating book title"
	errCtxListingAuthors  = "listing authors"
	errCtxListingBooks    = "listing books"
	errCtxFindingAuthor   = "finding author"
	errCtxFindingBook     = "finding book"
	errCtxCreatingAuthor  = "creating author"
	errCtxCreatingBook    = "creating book"
	errCtxUpdatingAuthor  = "updating author"
	errCtxUpdatingBook    = "updating book"
	errCtxDeletingAuthor  = "deleting author"
	errCtxDeletingBook    = "deleting book"
)

// CatalogUseCaseImpl реализует интерфейс CatalogUseCase.
// Списки читаются через кэш; любая запись сбрасывает оба списка.
type CatalogUseCaseImpl struct {
	authorRepo repositories.AuthorRepository
	bookRepo   repositories.BookRepository
	cache      cache.Cache
}

// NewCatalogUseCase создает новый экземпляр сервиса каталога.
func NewCatalogUseCase(
	authorRepo repositories.AuthorRepository,
	bookRepo repositories.BookRepository,
	catalogCache cache.Cache,
) api.CatalogUseCase {
	return &CatalogUseCaseImpl{
		authorRepo: authorRepo,
		bookRepo:   bookRepo,
		cache:      catalogCache,
	}
}

// ListAuthors возвращает всех авторов, используя кэш списков.
func (c *CatalogUseCaseImpl) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("method", "ListAuthors"))

	var authors []entities.Author
	if c.readCached(ctx, cacheKeyAuthors, &authors) {
		log.Debug(ctx, msgCacheHit, zap.String("key", cacheKeyAuthors))
		return authors, nil
	}
	log.Debug(ctx, msgCacheMiss, zap.String("key", cacheKeyAuthors))

	authors, err := c.authorRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingAuthors, err)
	}

	c.writeCached(ctx, cacheKeyAuthors, authors)
	return authors, nil
}

// GetAuthor возвращает автора по ID.
func (c *CatalogUseCaseImpl) GetAuthor(ctx context.Context, id string) (*entities.Author, error) {
	author, err := c.authorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingAuthor, err)
	}
	return author, nil
}

// CreateAuthor создает нового автора и сбрасывает кэш списков.
func (c *CatalogUseCaseImpl) CreateAuthor(ctx context.Context, name string) (*entities.Author, error) {
	if name == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingName, entities.ErrEmptyName)
	}

	author, err := c.authorRepo.Create(ctx, &entities.Author{Name: name})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingAuthor, err)
	}

	c.invalidate(ctx)
	return author, nil
}

// UpdateAuthor обновляет автора и сбрасывает кэш списков.
func (c *CatalogUseCaseImpl) UpdateAuthor(ctx context.Context, id, name string) (*entities.Author, error) {
	if name == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingName, entities.ErrEmptyName)
	}

	author, err := c.authorRepo.Update(ctx, &entities.Author{ID: id, Name: name})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingAuthor, err)
	}

	c.invalidate(ctx)
	return author, nil
}

// DeleteAuthor удаляет автора и сбрасывает кэш списков.
func (c *CatalogUseCaseImpl) DeleteAuthor(ctx context.Context, id string) error {
	if err := c.authorRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingAuthor, err)
	}

	c.invalidate(ctx)
	return nil
}

// ListBooks возвращает все книги, используя кэш списков.
func (c *CatalogUseCaseImpl) ListBooks(ctx context.Context) ([]entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("method", "ListBooks"))

	var books []entities.Book
	if c.readCached(ctx, cacheKeyBooks, &books) {
		log.Debug(ctx, msgCacheHit, zap.String("key", cacheKeyBooks))
		return books, nil
	}
	log.Debug(ctx, msgCacheMiss, zap.String("key", cacheKeyBooks))

	books, err := c.bookRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingBooks, err)
	}

	c.writeCached(ctx, cacheKeyBooks, books)
	return books, nil
}

// GetBook возвращает книгу по ID.
func (c *CatalogUseCaseImpl) GetBook(ctx context.Context, id string) (*entities.Book, error) {
	book, err := c.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingBook, err)
	}
	return book, nil
}

// CreateBook создает новую книгу и сбрасывает кэш списков.
func (c *CatalogUseCaseImpl) CreateBook(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	if book.Title == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingTitle, entities.ErrEmptyTitle)
	}

	created, err := c.bookRepo.Create(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingBook, err)
	}

	c.invalidate(ctx)
	return created, nil
}

// UpdateBook обновляет книгу и сбрасывает кэш списков.
func (c *CatalogUseCaseImpl) UpdateBook(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	if book.Title == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingTitle, entities.ErrEmptyTitle)
	}

	updated, err := c.bookRepo.Update(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingBook, err)
	}

	c.invalidate(ctx)
	return updated, nil
}

// DeleteBook удаляет книгу и сбрасывает кэш списков.
func (c *CatalogUseCaseImpl) DeleteBook(ctx context.Context, id string) error {
	if err := c.bookRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingBook, err)
	}

	c.invalidate(ctx)
	return nil
}

// readCached читает и декодирует кэшированный список. Ошибки кэша не
// прерывают запрос, список будет прочитан из базы.
func (c *CatalogUseCaseImpl) readCached(ctx context.Context, key string, dest interface{}) bool {
	cached, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheRead, zap.String("key", key), zap.Error(err))
		return false
	}
	if cached == "" {
		return false
	}
	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheRead, zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *CatalogUseCaseImpl) writeCached(ctx context.Context, key string, value interface{}) {
	encoded, err := json.Marshal(value)
	if err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheWrite, zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, string(encoded), 0); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheWrite, zap.String("key", key), zap.Error(err))
	}
}

func (c *CatalogUseCaseImpl) invalidate(ctx context.Context) {
	for _, key := range []string{cacheKeyAuthors, cacheKeyBooks} {
		if err := c.cache.Delete(ctx, key); err != nil {
			logger.Log(ctx).Warn(ctx, msgErrCacheInvalidate, zap.String("key", key), zap.Error(err))
		}
	}
}
