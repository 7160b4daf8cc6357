// Package dto содержит объекты передачи данных HTTP API.
package dto

import (
	"time"

	"bookstore/internal/account/domain/entities"
)

// RegisterRequest содержит данные для регистрации учетной записи.
type RegisterRequest struct {
	Login     string `json:"login" validate:"required,min=1,max=50"`
	Password  string `json:"password" validate:"required,min=4,max=100"`
	FirstName string `json:"firstName" validate:"max=50"`
	LastName  string `json:"lastName" validate:"max=50"`
	Email     string `json:"email" validate:"required,email"`
	LangKey   string `json:"langKey" validate:"max=5"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse содержит выданный токен доступа.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// UpdateAccountRequest содержит данные для обновления профиля.
type UpdateAccountRequest struct {
	Login     string `json:"login" validate:"required"`
	FirstName string `json:"firstName" validate:"max=50"`
	LastName  string `json:"lastName" validate:"max=50"`
	Email     string `json:"email" validate:"required,email"`
}

// UserResponse содержит профиль учетной записи. Пароль никогда не
// сериализуется наружу, authorities сериализуются пустым списком, не null.
type UserResponse struct {
	Login       string   `json:"login"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	LangKey     string   `json:"langKey"`
	Authorities []string `json:"authorities"`
}

// NewUserResponse создает UserResponse из доменной сущности.
func NewUserResponse(user *entities.User) *UserResponse {
	authorities := user.Authorities
	if authorities == nil {
		authorities = []string{}
	}
	return &UserResponse{
		Login:       user.Login,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		LangKey:     user.LangKey,
		Authorities: authorities,
	}
}
