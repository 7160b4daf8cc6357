package services

import (
	"context"
	"time"
)

// TokenService определяет интерфейс для работы с токенами доступа.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID, login string) (string, time.Time, error)

	// ValidateAccessToken проверяет токен и возвращает ID пользователя.
	ValidateAccessToken(ctx context.Context, token string) (string, error)
}
