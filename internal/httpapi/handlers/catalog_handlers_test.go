package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookstore/internal/catalog/domain/entities"
	"bookstore/internal/httpapi/dto"
)

func TestListAuthorsEndpoint(t *testing.T) {
	t.Run("public read returns authors", func(t *testing.T) {
		app, _, catalogSvc, _, _ := setupTestApp(t)

		catalogSvc.On("ListAuthors", mock.Anything).Return([]entities.Author{
			{ID: "author-1", Name: "Jane Austen"},
			{ID: "author-2", Name: "Mark Twain"},
		}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/authors", nil))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var payload []dto.AuthorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		require.Len(t, payload, 2)
		assert.Equal(t, "Jane Austen", payload[0].Name)

		catalogSvc.AssertExpectations(t)
	})

	t.Run("empty catalog returns empty array", func(t *testing.T) {
		app, _, catalogSvc, _, _ := setupTestApp(t)

		catalogSvc.On("ListAuthors", mock.Anything).Return([]entities.Author{}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/authors", nil))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var payload []dto.AuthorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Empty(t, payload)

		catalogSvc.AssertExpectations(t)
	})
}

func TestGetAuthorEndpoint(t *testing.T) {
	t.Run("unknown author returns 404", func(t *testing.T) {
		app, _, catalogSvc, _, _ := setupTestApp(t)

		catalogSvc.On("GetAuthor", mock.Anything, "ghost").Return(nil, entities.ErrAuthorNotFound).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/authors/ghost", nil))

		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		catalogSvc.AssertExpectations(t)
	})
}

func TestCreateAuthorEndpoint(t *testing.T) {
	t.Run("unauthenticated write returns 401", func(t *testing.T) {
		app, _, _, _, _ := setupTestApp(t)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/authors", `{"name":"Jane Austen"}`))

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("authenticated write creates author", func(t *testing.T) {
		app, _, catalogSvc, tokenSvc, _ := setupTestApp(t)

		tokenSvc.On("ValidateAccessToken", mock.Anything, "valid-token").Return("user-id", nil).Once()
		catalogSvc.On("CreateAuthor", mock.Anything, "Jane Austen").
			Return(&entities.Author{ID: "author-1", Name: "Jane Austen"}, nil).Once()

		req := jsonRequest(http.MethodPost, "/api/authors", `{"name":"Jane Austen"}`)
		req.Header.Set("Authorization", "Bearer valid-token")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var payload dto.AuthorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "author-1", payload.ID)

		tokenSvc.AssertExpectations(t)
		catalogSvc.AssertExpectations(t)
	})

	t.Run("empty name returns 400", func(t *testing.T) {
		app, _, catalogSvc, tokenSvc, _ := setupTestApp(t)

		tokenSvc.On("ValidateAccessToken", mock.Anything, "valid-token").Return("user-id", nil).Once()
		catalogSvc.On("CreateAuthor", mock.Anything, "").
			Return(nil, entities.ErrEmptyName).Once()

		req := jsonRequest(http.MethodPost, "/api/authors", `{"name":""}`)
		req.Header.Set("Authorization", "Bearer valid-token")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		tokenSvc.AssertExpectations(t)
		catalogSvc.AssertExpectations(t)
	})
}

func TestDeleteAuthorEndpoint(t *testing.T) {
	t.Run("authenticated delete returns 204", func(t *testing.T) {
		app, _, catalogSvc, tokenSvc, _ := setupTestApp(t)

		tokenSvc.On("ValidateAccessToken", mock.Anything, "valid-token").Return("user-id", nil).Once()
		catalogSvc.On("DeleteAuthor", mock.Anything, "author-1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/authors/author-1", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		tokenSvc.AssertExpectations(t)
		catalogSvc.AssertExpectations(t)
	})
}

func TestBookEndpoints(t *testing.T) {
	t.Run("public book read returns books", func(t *testing.T) {
		app, _, catalogSvc, _, _ := setupTestApp(t)

		catalogSvc.On("ListBooks", mock.Anything).Return([]entities.Book{
			{ID: "book-1", Title: "Emma", AuthorID: "author-1", PriceCents: 1299},
		}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/books", nil))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var payload []dto.BookResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		require.Len(t, payload, 1)
		assert.Equal(t, "Emma", payload[0].Title)

		catalogSvc.AssertExpectations(t)
	})

	t.Run("create book with unknown author returns 400", func(t *testing.T) {
		app, _, catalogSvc, tokenSvc, _ := setupTestApp(t)

		tokenSvc.On("ValidateAccessToken", mock.Anything, "valid-token").Return("user-id", nil).Once()
		catalogSvc.On("CreateBook", mock.Anything, mock.MatchedBy(func(b *entities.Book) bool {
			return b.Title == "Emma" && b.AuthorID == "ghost"
		})).Return(nil, entities.ErrAuthorNotFound).Once()

		req := jsonRequest(http.MethodPost, "/api/books", `{"title":"Emma","author_id":"ghost"}`)
		req.Header.Set("Authorization", "Bearer valid-token")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		tokenSvc.AssertExpectations(t)
		catalogSvc.AssertExpectations(t)
	})

	t.Run("update of unknown book returns 404", func(t *testing.T) {
		app, _, catalogSvc, tokenSvc, _ := setupTestApp(t)

		tokenSvc.On("ValidateAccessToken", mock.Anything, "valid-token").Return("user-id", nil).Once()
		catalogSvc.On("UpdateBook", mock.Anything, mock.MatchedBy(func(b *entities.Book) bool {
			return b.ID == "ghost"
		})).Return(nil, entities.ErrBookNotFound).Once()

		req := jsonRequest(http.MethodPut, "/api/books/ghost", `{"title":"Emma","author_id":"author-1"}`)
		req.Header.Set("Authorization", "Bearer valid-token")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		tokenSvc.AssertExpectations(t)
		catalogSvc.AssertExpectations(t)
	})

	t.Run("unauthenticated book delete returns 401", func(t *testing.T) {
		app, _, _, _, _ := setupTestApp(t)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/books/book-1", nil))

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestUnknownRoute(t *testing.T) {
	app, _, _, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
