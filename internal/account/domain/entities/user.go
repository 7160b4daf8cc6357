package entities

import (
	"errors"
	"time"
)

// Определяем ошибки домена пользователя как константы.
var (
	ErrEmptyUserID           = errors.New("user ID cannot be empty")
	ErrEmptyLogin            = errors.New("login cannot be empty")
	ErrEmptyPassword         = errors.New("password cannot be empty")
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrUserNotFound          = errors.New("user not found")
	ErrLoginAlreadyUsed      = errors.New("login already in use")
	ErrEmailAlreadyUsed      = errors.New("e-mail address already in use")
	ErrActivationKeyNotFound = errors.New("activation key not found")
	ErrNotAccountOwner       = errors.New("account does not belong to the current user")
	ErrBlankPassword         = errors.New("new password cannot be blank")
)

// RoleUser - право, выдаваемое каждому новому пользователю.
const RoleUser = "ROLE_USER"

// User представляет основную сущность домена учетной записи.
// Аккаунт создается в состоянии pending (Activated=false) с ключом активации
// и переходит в active единственным переходом через активацию, при этом ключ
// очищается.
type User struct {
	ID            string
	Login         string
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	LangKey       string
	Activated     bool
	ActivationKey string
	Authorities   []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Authority представляет именованное право доступа (роль).
type Authority struct {
	Name string
}
