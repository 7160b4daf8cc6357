package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bookstore/internal/catalog/domain/entities"
	"bookstore/internal/catalog/ports/api"
	"bookstore/internal/httpapi/dto"
	"bookstore/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerListAuthors  = "catalog handler: list authors"
	LogHandlerGetAuthor    = "catalog handler: get author"
	LogHandlerCreateAuthor = "catalog handler: create author"
	LogHandlerUpdateAuthor = "catalog handler: update author"
	LogHandlerDeleteAuthor = "catalog handler: delete author"
	LogHandlerListBooks    = "catalog handler: list books"
	LogHandlerGetBook      = "catalog handler: get book"
	LogHandlerCreateBook   = "catalog handler: create book"
	LogHandlerUpdateBook   = "catalog handler: update book"
	LogHandlerDeleteBook   = "catalog handler: delete book"
)

// CatalogHandler содержит HTTP обработчики каталога.
type CatalogHandler struct {
	catalogService api.CatalogUseCase
}

// NewCatalogHandler создает новый экземпляр обработчика каталога.
func NewCatalogHandler(catalogService api.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListAuthors возвращает всех авторов каталога.
func (h *CatalogHandler) ListAuthors(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerListAuthors)

	authors, err := h.catalogService.ListAuthors(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.Status(http.StatusOK).JSON(dto.NewAuthorListResponse(authors))
}

// GetAuthor возвращает автора по его идентификатору.
func (h *CatalogHandler) GetAuthor(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerGetAuthor)

	author, err := h.catalogService.GetAuthor(requestCtx, ctx.Params("id"))
	if err != nil {
		if errors.Is(err, entities.ErrAuthorNotFound) {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": entities.ErrAuthorNotFound.Error(),
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.Status(http.StatusOK).JSON(dto.NewAuthorResponse(author))
}

// CreateAuthor создает нового автора.
func (h *CatalogHandler) CreateAuthor(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreateAuthor)

	var req dto.AuthorRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		})
	}

	author, err := h.catalogService.CreateAuthor(requestCtx, req.Name)
	if err != nil {
		if errors.Is(err, entities.ErrEmptyName) {
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": entities.ErrEmptyName.Error(),
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.Status(http.StatusCreated).JSON(dto.NewAuthorResponse(author))
}

// UpdateAuthor обновляет автора по его идентификатору.
func (h *CatalogHandler) UpdateAuthor(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateAuthor)

	var req dto.AuthorRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		})
	}

	author, err := h.catalogService.UpdateAuthor(requestCtx, ctx.Params("id"), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrAuthorNotFound):
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": entities.ErrAuthorNotFound.Error(),
			})
		case errors.Is(err, entities.ErrEmptyName):
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": entities.ErrEmptyName.Error(),
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.Status(http.StatusOK).JSON(dto.NewAuthorResponse(author))
}

// DeleteAuthor удаляет автора по его идентификатору.
func (h *CatalogHandler) DeleteAuthor(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteAuthor)

	if err := h.catalogService.DeleteAuthor(requestCtx, ctx.Params("id")); err != nil {
		if errors.Is(err, entities.ErrAuthorNotFound) {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": entities.ErrAuthorNotFound.Error(),
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.SendStatus(http.StatusNoContent)
}

// ListBooks возвращает все книги каталога.
func (h *CatalogHandler) ListBooks(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerListBooks)

	books, err := h.catalogService.ListBooks(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.Status(http.StatusOK).JSON(dto.NewBookListResponse(books))
}

// GetBook возвращает книгу по ее идентификатору.
func (h *CatalogHandler) GetBook(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerGetBook)

	book, err := h.catalogService.GetBook(requestCtx, ctx.Params("id"))
	if err != nil {
		if errors.Is(err, entities.ErrBookNotFound) {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": entities.ErrBookNotFound.Error(),
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.Status(http.StatusOK).JSON(dto.NewBookResponse(book))
}

// CreateBook создает новую книгу.
func (h *CatalogHandler) CreateBook(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreateBook)

	var req dto.BookRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		})
	}

	book, err := h.catalogService.CreateBook(requestCtx, &entities.Book{
		Title:       req.Title,
		AuthorID:    req.AuthorID,
		ISBN:        req.ISBN,
		PriceCents:  req.PriceCents,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrEmptyTitle):
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": entities.ErrEmptyTitle.Error(),
			})
		case errors.Is(err, entities.ErrAuthorNotFound):
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": entities.ErrAuthorNotFound.Error(),
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.Status(http.StatusCreated).JSON(dto.NewBookResponse(book))
}

// UpdateBook обновляет книгу по ее идентификатору.
func (h *CatalogHandler) UpdateBook(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateBook)

	var req dto.BookRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		})
	}

	book, err := h.catalogService.UpdateBook(requestCtx, &entities.Book{
		ID:          ctx.Params("id"),
		Title:       req.Title,
		AuthorID:    req.AuthorID,
		ISBN:        req.ISBN,
		PriceCents:  req.PriceCents,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrBookNotFound):
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": entities.ErrBookNotFound.Error(),
			})
		case errors.Is(err, entities.ErrEmptyTitle), errors.Is(err, entities.ErrAuthorNotFound):
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.Status(http.StatusOK).JSON(dto.NewBookResponse(book))
}

// DeleteBook удаляет книгу по ее идентификатору.
func (h *CatalogHandler) DeleteBook(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDeleteBook)

	if err := h.catalogService.DeleteBook(requestCtx, ctx.Params("id")); err != nil {
		if errors.Is(err, entities.ErrBookNotFound) {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": entities.ErrBookNotFound.Error(),
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.SendStatus(http.StatusNoContent)
}
