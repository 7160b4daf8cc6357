package dto

import (
	"time"

	"bookstore/internal/catalog/domain/entities"
)

// AuthorRequest содержит данные для создания или обновления автора.
type AuthorRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// AuthorResponse содержит данные автора.
type AuthorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAuthorResponse создает AuthorResponse из доменной сущности.
func NewAuthorResponse(author *entities.Author) *AuthorResponse {
	return &AuthorResponse{
		ID:        author.ID,
		Name:      author.Name,
		CreatedAt: author.CreatedAt,
		UpdatedAt: author.UpdatedAt,
	}
}

// NewAuthorListResponse создает список AuthorResponse.
func NewAuthorListResponse(authors []entities.Author) []AuthorResponse {
	result := make([]AuthorResponse, 0, len(authors))
	for i := range authors {
		result = append(result, *NewAuthorResponse(&authors[i]))
	}
	return result
}

// BookRequest содержит данные для создания или обновления книги.
type BookRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	AuthorID    string     `json:"author_id" validate:"required"`
	ISBN        string     `json:"isbn" validate:"max=20"`
	PriceCents  int64      `json:"price_cents" validate:"gte=0"`
	PublishedAt *time.Time `json:"published_at"`
}

// BookResponse содержит данные книги.
type BookResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	AuthorID    string     `json:"author_id"`
	ISBN        string     `json:"isbn"`
	PriceCents  int64      `json:"price_cents"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewBookResponse создает BookResponse из доменной сущности.
func NewBookResponse(book *entities.Book) *BookResponse {
	return &BookResponse{
		ID:          book.ID,
		Title:       book.Title,
		AuthorID:    book.AuthorID,
		ISBN:        book.ISBN,
		PriceCents:  book.PriceCents,
		PublishedAt: book.PublishedAt,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}
}

// NewBookListResponse создает список BookResponse.
func NewBookListResponse(books []entities.Book) []BookResponse {
	result := make([]BookResponse, 0, len(books))
	for i := range books {
		result = append(result, *NewBookResponse(&books[i]))
	}
	return result
}
