// Package api определяет интерфейсы прикладного уровня модуля учетных записей.
package api

import (
	"context"

	"bookstore/internal/account/domain/entities"
	"bookstore/internal/account/domain/services"
)

// AccountUseCase определяет операции жизненного цикла учетной записи.
type AccountUseCase interface {
	// Register создает pending пользователя с ключом активации.
	Register(ctx context.Context, login, password, firstName, lastName, email, langKey string) (*entities.User, error)

	// Activate переводит пользователя с данным ключом в состояние active.
	Activate(ctx context.Context, activationKey string) (*entities.User, error)

	// Login проверяет учетные данные и выдает токен доступа.
	Login(ctx context.Context, login, password string) (*services.AccessToken, error)

	// CurrentUser возвращает пользователя сессии вместе с его правами.
	CurrentUser(ctx context.Context, userID string) (*entities.User, error)

	// UpdateProfile обновляет имя, фамилию и email пользователя сессии.
	// Логин в запросе обязан совпадать с логином текущего пользователя.
	UpdateProfile(ctx context.Context, currentUserID, login, firstName, lastName, email string) (*entities.User, error)

	// ChangePassword устанавливает новый пароль пользователя сессии.
	ChangePassword(ctx context.Context, currentUserID, newPassword string) error
}
