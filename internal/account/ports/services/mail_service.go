package services

import (
	"context"

	"bookstore/internal/account/domain/entities"
)

// MailService определяет интерфейс для отправки писем пользователям.
type MailService interface {
	// SendActivationEmail отправляет письмо со ссылкой активации,
	// построенной от baseURL входящего запроса.
	SendActivationEmail(ctx context.Context, user *entities.User, baseURL string) error
}
