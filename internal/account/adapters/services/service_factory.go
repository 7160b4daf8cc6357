package services

import (
	"time"

	svc "bookstore/internal/account/ports/services"
)

// ServiceFactory создает прикладные сервисы учетных записей.
type ServiceFactory struct {
	jwtSecretKey   string
	accessTokenTTL time.Duration
	bcryptCost     int
}

// NewServiceFactory создает новую фабрику сервисов.
func NewServiceFactory(jwtSecretKey string, accessTokenTTL time.Duration, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		jwtSecretKey:   jwtSecretKey,
		accessTokenTTL: accessTokenTTL,
		bcryptCost:     bcryptCost,
	}
}

// PasswordService возвращает сервис хэширования паролей.
func (f *ServiceFactory) PasswordService() svc.PasswordService {
	return NewBcrypt(f.bcryptCost)
}

// TokenService возвращает сервис токенов доступа.
func (f *ServiceFactory) TokenService() svc.TokenService {
	return NewJWT(f.jwtSecretKey, f.accessTokenTTL)
}
