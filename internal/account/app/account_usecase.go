// Package app реализует прикладные операции модуля учетных записей.
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"bookstore/internal/account/domain/entities"
	"bookstore/internal/account/domain/services"
	"bookstore/internal/account/ports/api"
	"bookstore/internal/account/ports/repositories"
	svc "bookstore/internal/account/ports/services"
	"bookstore/pkg/logger"
)

const (
	methodRegister       = "Register"
	methodActivate       = "Activate"
	methodLogin          = "Login"
	methodCurrentUser    = "CurrentUser"
	methodUpdateProfile  = "UpdateProfile"
	methodChangePassword = "ChangePassword"

	msgStartRegistration  = "starting user registration"
	msgInvalidEmailFormat = "invalid email format"
	msgEmptyLogin         = "empty login provided"
	msgEmptyPassword      = "empty password provided"
	msgLoginExists        = "user with this login already exists"
	msgEmailExists        = "user with this email already exists"
	msgUserRegistered     = "pending user registered successfully"
	msgActivatingAccount  = "activating account"
	msgUnknownKey         = "no pending account for activation key"
	msgAccountActivated   = "account activated"
	msgLoginAttempt       = "login attempt"
	msgLoginNonExistent   = "login attempt with non-existent login"
	msgInvalidPassword    = "invalid password provided"
	msgUserLoggedIn       = "user logged in successfully"
	msgFetchingAccount    = "fetching current account"
	msgAccountFetched     = "current account fetched"
	msgUpdatingProfile    = "updating account profile"
	msgOwnershipMismatch  = "login in request does not match current user"
	msgProfileUpdated     = "account profile updated"
	msgChangingPassword   = "changing password"
	msgBlankPassword      = "blank password rejected"
	msgPasswordChanged    = "password changed"

	msgErrCheckExistingLogin = "failed to check existing login"
	msgErrCheckExistingEmail = "failed to check existing email"
	msgErrHashPassword       = "failed to hash password"
	msgErrGenerateKey        = "failed to generate activation key"
	msgErrCreateUser         = "failed to create user"
	msgErrActivateUser       = "failed to activate user"
	msgErrFindingUser        = "error finding user"
	msgErrVerifyingPassword  = "error verifying password"
	msgErrGenerateToken      = "failed to generate access token"
	msgErrUpdateUser         = "failed to update user"
	msgErrUpdatePassword     = "failed to update password"

	errCtxValidatingLogin    = "validating login"
	errCtxValidatingPassword = "validating password"
	errCtxValidatingEmail    = "validating email"
	errCtxValidatingUserID   = "validating user ID"
	errCtxCheckingLogin      = "checking existing login"
	errCtxCheckingEmail      = "checking existing email"
	errCtxLoginRegistered    = "login already registered"
	errCtxEmailRegistered    = "email already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxGeneratingKey      = "generating activation key"
	errCtxCreatingUser       = "creating user"
	errCtxActivatingUser     = "activating user"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxGeneratingToken    = "generating token"
	errCtxCheckingOwnership  = "checking account ownership"
	errCtxUpdatingUser       = "updating user"
	errCtxUpdatingPassword   = "updating password"
)

// Длина ключа активации в байтах до hex-кодирования.
const activationKeyBytes = 20

const defaultLangKey = "en"

// AccountUseCaseImpl реализует интерфейс AccountUseCase.
type AccountUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAccountUseCase создает новый экземпляр сервиса учетных записей.
func NewAccountUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AccountUseCase {
	return &AccountUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает нового pending пользователя с ключом активации.
func (a *AccountUseCaseImpl) Register(ctx context.Context, login, password, firstName, lastName, email, langKey string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("login", login))
	log.Debug(ctx, msgStartRegistration)

	if login == "" {
		log.Debug(ctx, msgEmptyLogin)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingLogin, entities.ErrEmptyLogin)
	}
	if password == "" {
		log.Debug(ctx, msgEmptyPassword)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrEmptyPassword)
	}
	if err := validateEmail(email); err != nil {
		log.Debug(ctx, msgInvalidEmailFormat, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
	}

	email = strings.ToLower(email)
	if langKey == "" {
		langKey = defaultLangKey
	}

	// Проверка логина идет первой, затем email, как в исходном потоке
	// регистрации. Конфликт, проигранный между проверкой и вставкой,
	// закрывается уникальными индексами в репозитории.
	existingUser, err := a.userRepo.FindByLogin(ctx, login)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingLogin, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingLogin, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgLoginExists)
		return nil, fmt.Errorf("%s: %w", errCtxLoginRegistered, entities.ErrLoginAlreadyUsed)
	}

	existingUser, err = a.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingEmail, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, entities.ErrEmailAlreadyUsed)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	activationKey, err := generateActivationKey()
	if err != nil {
		log.Error(ctx, msgErrGenerateKey, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingKey, err)
	}

	newUser := &entities.User{
		Login:         login,
		Email:         email,
		PasswordHash:  hashedPassword,
		FirstName:     firstName,
		LastName:      lastName,
		LangKey:       langKey,
		Activated:     false,
		ActivationKey: activationKey,
		Authorities:   []string{entities.RoleUser},
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, entities.ErrLoginAlreadyUsed) || errors.Is(err, entities.ErrEmailAlreadyUsed) {
			log.Debug(ctx, msgLoginExists, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))
	return createdUser, nil
}

// Activate переводит pending пользователя с данным ключом в состояние active.
func (a *AccountUseCaseImpl) Activate(ctx context.Context, activationKey string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodActivate))
	log.Debug(ctx, msgActivatingAccount)

	if activationKey == "" {
		return nil, fmt.Errorf("%s: %w", errCtxActivatingUser, entities.ErrActivationKeyNotFound)
	}

	user, err := a.userRepo.Activate(ctx, activationKey)
	if err != nil {
		if errors.Is(err, entities.ErrActivationKeyNotFound) {
			log.Debug(ctx, msgUnknownKey)
			return nil, fmt.Errorf("%s: %w", errCtxActivatingUser, err)
		}
		log.Error(ctx, msgErrActivateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxActivatingUser, err)
	}

	log.Info(ctx, msgAccountActivated, zap.String("userID", user.ID))
	return user, nil
}

// Login аутентифицирует пользователя по логину и паролю и выдает токен доступа.
func (a *AccountUseCaseImpl) Login(ctx context.Context, login, password string) (*services.AccessToken, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("login", login))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPassword, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	token, expiresAt, err := a.tokenSvc.GenerateAccessToken(ctx, user.ID, user.Login)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return &services.AccessToken{
		UserID:    user.ID,
		Login:     user.Login,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// CurrentUser возвращает пользователя сессии вместе с его правами.
func (a *AccountUseCaseImpl) CurrentUser(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCurrentUser), zap.String("userID", userID))
	log.Debug(ctx, msgFetchingAccount)

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	user, err := a.userRepo.FindWithAuthorities(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	log.Debug(ctx, msgAccountFetched)
	return user, nil
}

// UpdateProfile обновляет имя, фамилию и email пользователя сессии.
func (a *AccountUseCaseImpl) UpdateProfile(ctx context.Context, currentUserID, login, firstName, lastName, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateProfile), zap.String("userID", currentUserID))
	log.Debug(ctx, msgUpdatingProfile)

	if currentUserID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}
	if err := validateEmail(email); err != nil {
		log.Debug(ctx, msgInvalidEmailFormat, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
	}

	requested, err := a.userRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgErrFindingUser, zap.String("login", login))
			return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	// Запись может менять только ее владелец.
	if requested.ID != currentUserID {
		log.Debug(ctx, msgOwnershipMismatch, zap.String("login", login))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingOwnership, entities.ErrNotAccountOwner)
	}

	requested.FirstName = firstName
	requested.LastName = lastName
	requested.Email = strings.ToLower(email)

	updated, err := a.userRepo.Update(ctx, requested)
	if err != nil {
		log.Error(ctx, msgErrUpdateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgProfileUpdated)
	return updated, nil
}

// ChangePassword устанавливает новый пароль пользователя сессии.
func (a *AccountUseCaseImpl) ChangePassword(ctx context.Context, currentUserID, newPassword string) error {
	log := logger.Log(ctx).With(zap.String("method", methodChangePassword), zap.String("userID", currentUserID))
	log.Debug(ctx, msgChangingPassword)

	if currentUserID == "" {
		return fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}
	if strings.TrimSpace(newPassword) == "" {
		log.Debug(ctx, msgBlankPassword)
		return fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrBlankPassword)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, newPassword)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	if err := a.userRepo.UpdatePassword(ctx, currentUserID, hashedPassword); err != nil {
		log.Error(ctx, msgErrUpdatePassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxUpdatingPassword, err)
	}

	log.Info(ctx, msgPasswordChanged)
	return nil
}

// Валидация email.
func validateEmail(email string) error {
	if email == "" {
		return entities.ErrInvalidEmail
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return entities.ErrInvalidEmail
	}

	return nil
}

// Генерация одноразового ключа активации.
func generateActivationKey() (string, error) {
	buf := make([]byte, activationKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
