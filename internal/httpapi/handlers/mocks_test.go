package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	accountentities "bookstore/internal/account/domain/entities"
	"bookstore/internal/account/domain/services"
	catalogentities "bookstore/internal/catalog/domain/entities"
)

type mockAccountUseCase struct {
	mock.Mock
}

func (m *mockAccountUseCase) Register(ctx context.Context, login, password, firstName, lastName, email, langKey string) (*accountentities.User, error) {
	args := m.Called(ctx, login, password, firstName, lastName, email, langKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountentities.User), args.Error(1)
}

func (m *mockAccountUseCase) Activate(ctx context.Context, activationKey string) (*accountentities.User, error) {
	args := m.Called(ctx, activationKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountentities.User), args.Error(1)
}

func (m *mockAccountUseCase) Login(ctx context.Context, login, password string) (*services.AccessToken, error) {
	args := m.Called(ctx, login, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AccessToken), args.Error(1)
}

func (m *mockAccountUseCase) CurrentUser(ctx context.Context, userID string) (*accountentities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountentities.User), args.Error(1)
}

func (m *mockAccountUseCase) UpdateProfile(ctx context.Context, currentUserID, login, firstName, lastName, email string) (*accountentities.User, error) {
	args := m.Called(ctx, currentUserID, login, firstName, lastName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountentities.User), args.Error(1)
}

func (m *mockAccountUseCase) ChangePassword(ctx context.Context, currentUserID, newPassword string) error {
	return m.Called(ctx, currentUserID, newPassword).Error(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(ctx context.Context, userID, login string) (string, time.Time, error) {
	args := m.Called(ctx, userID, login)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) ValidateAccessToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// mockMailService записывает отправки и сигналит о них в канал,
// письмо уходит из фоновой горутины.
type mockMailService struct {
	mock.Mock
	sent chan struct{}
}

func newMockMailService() *mockMailService {
	return &mockMailService{sent: make(chan struct{}, 1)}
}

func (m *mockMailService) SendActivationEmail(ctx context.Context, user *accountentities.User, baseURL string) error {
	args := m.Called(ctx, user, baseURL)
	select {
	case m.sent <- struct{}{}:
	default:
	}
	return args.Error(0)
}

type mockCatalogUseCase struct {
	mock.Mock
}

func (m *mockCatalogUseCase) ListAuthors(ctx context.Context) ([]catalogentities.Author, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogentities.Author), args.Error(1)
}

func (m *mockCatalogUseCase) GetAuthor(ctx context.Context, id string) (*catalogentities.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogentities.Author), args.Error(1)
}

func (m *mockCatalogUseCase) CreateAuthor(ctx context.Context, name string) (*catalogentities.Author, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogentities.Author), args.Error(1)
}

func (m *mockCatalogUseCase) UpdateAuthor(ctx context.Context, id, name string) (*catalogentities.Author, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogentities.Author), args.Error(1)
}

func (m *mockCatalogUseCase) DeleteAuthor(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCatalogUseCase) ListBooks(ctx context.Context) ([]catalogentities.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogentities.Book), args.Error(1)
}

func (m *mockCatalogUseCase) GetBook(ctx context.Context, id string) (*catalogentities.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogentities.Book), args.Error(1)
}

func (m *mockCatalogUseCase) CreateBook(ctx context.Context, book *catalogentities.Book) (*catalogentities.Book, error) {
	args := m.Called(ctx, book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogentities.Book), args.Error(1)
}

func (m *mockCatalogUseCase) UpdateBook(ctx context.Context, book *catalogentities.Book) (*catalogentities.Book, error) {
	args := m.Called(ctx, book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogentities.Book), args.Error(1)
}

func (m *mockCatalogUseCase) DeleteBook(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
