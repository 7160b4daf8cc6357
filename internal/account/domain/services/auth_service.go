// Package services содержит доменные типы и ошибки сервисов учетных записей.
package services

import (
	"errors"
	"time"
)

// Ошибки доменных сервисов аутентификации.
var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidPassword       = errors.New("invalid password")
	ErrHashingFailed         = errors.New("failed to hash password")
	ErrTokenGenerationFailed = errors.New("failed to generate token")
)

// AccessToken представляет выданный пользователю токен доступа.
type AccessToken struct {
	UserID    string
	Login     string
	Token     string
	ExpiresAt time.Time
}
