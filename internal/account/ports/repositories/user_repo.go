// Package repositories определяет порты персистентности модуля учетных записей.
package repositories

import (
	"context"

	"bookstore/internal/account/domain/entities"
)

// UserRepository определяет интерфейс для операций сохранения пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByLogin(ctx context.Context, login string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// FindWithAuthorities возвращает пользователя вместе со списком его прав.
	FindWithAuthorities(ctx context.Context, id string) (*entities.User, error)

	// Activate атомарно переводит pending пользователя с данным ключом в
	// состояние active и очищает ключ. Возвращает ErrActivationKeyNotFound,
	// если ни одна строка не подошла.
	Activate(ctx context.Context, activationKey string) (*entities.User, error)

	Update(ctx context.Context, user *entities.User) (*entities.User, error)

	UpdatePassword(ctx context.Context, id, passwordHash string) error

	Delete(ctx context.Context, id string) error
}
