// Package handlers содержит HTTP обработчики сервиса bookstore.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bookstore/internal/account/domain/entities"
	domainsvc "bookstore/internal/account/domain/services"
	"bookstore/internal/account/ports/api"
	svc "bookstore/internal/account/ports/services"
	"bookstore/internal/httpapi/dto"
	"bookstore/internal/httpapi/middleware"
	"bookstore/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister       = "account handler: register"
	LogHandlerActivate       = "account handler: activate"
	LogHandlerLogin          = "account handler: login"
	LogHandlerAuthenticate   = "account handler: authenticate"
	LogHandlerGetAccount     = "account handler: get account"
	LogHandlerUpdateAccount  = "account handler: update account"
	LogHandlerChangePassword = "account handler: change password"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
	ErrorUnauthorized         = "unauthorized"

	msgErrSendActivationEmail = "failed to send activation email"
)

// Timeout отправки письма активации в фоне.
const mailSendTimeout = 30 * time.Second

// AccountHandler содержит HTTP обработчики учетных записей.
type AccountHandler struct {
	accountService api.AccountUseCase
	tokenService   svc.TokenService
	mailService    svc.MailService
}

// NewAccountHandler создает новый экземпляр обработчика учетных записей.
func NewAccountHandler(
	accountService api.AccountUseCase,
	tokenService svc.TokenService,
	mailService svc.MailService,
) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		tokenService:   tokenService,
		mailService:    mailService,
	}
}

// Register обрабатывает запрос на регистрацию новой учетной записи.
func (h *AccountHandler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		})
	}

	if req.Login == "" || req.Password == "" || req.Email == "" {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "login, password and email are required",
		})
	}

	user, err := h.accountService.Register(requestCtx, req.Login, req.Password, req.FirstName, req.LastName, req.Email, req.LangKey)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrLoginAlreadyUsed):
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": entities.ErrLoginAlreadyUsed.Error(),
			})
		case errors.Is(err, entities.ErrEmailAlreadyUsed):
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": entities.ErrEmailAlreadyUsed.Error(),
			})
		case errors.Is(err, entities.ErrInvalidEmail),
			errors.Is(err, entities.ErrEmptyLogin),
			errors.Is(err, entities.ErrEmptyPassword):
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	// Ссылка активации строится от базового URL входящего запроса.
	// Письмо уходит в фоне: регистрация не зависит от доставки почты.
	baseURL := ctx.BaseURL()
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
		defer cancel()
		if err := h.mailService.SendActivationEmail(sendCtx, user, baseURL); err != nil {
			logger.Log(sendCtx).Warn(sendCtx, msgErrSendActivationEmail,
				zap.String("login", user.Login), zap.Error(err))
		}
	}()

	return ctx.Status(http.StatusCreated).SendString("")
}

// Activate обрабатывает запрос на активацию учетной записи по ключу.
func (h *AccountHandler) Activate(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerActivate)

	key := ctx.Query("key")
	if key == "" {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "activation key is required",
		})
	}

	if _, err := h.accountService.Activate(requestCtx, key); err != nil {
		if errors.Is(err, entities.ErrActivationKeyNotFound) {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": entities.ErrActivationKeyNotFound.Error(),
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.Status(http.StatusOK).SendString("")
}

// Login обрабатывает запрос на вход пользователя.
func (h *AccountHandler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		})
	}

	if req.Login == "" || req.Password == "" {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "login and password are required",
		})
	}

	token, err := h.accountService.Login(requestCtx, req.Login, req.Password)
	if err != nil {
		if errors.Is(err, domainsvc.ErrInvalidCredentials) {
			return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"error": domainsvc.ErrInvalidCredentials.Error(),
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.Status(http.StatusOK).JSON(dto.TokenResponse{
		AccessToken: token.Token,
		ExpiresAt:   token.ExpiresAt,
	})
}

// Authenticate возвращает логин текущего пользователя или пустое тело,
// если запрос анонимный.
func (h *AccountHandler) Authenticate(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerAuthenticate)

	authHeader := ctx.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ctx.Status(http.StatusOK).SendString("")
	}

	userID, err := h.tokenService.ValidateAccessToken(requestCtx, strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return ctx.Status(http.StatusOK).SendString("")
	}

	user, err := h.accountService.CurrentUser(requestCtx, userID)
	if err != nil {
		return ctx.Status(http.StatusOK).SendString("")
	}

	return ctx.Status(http.StatusOK).SendString(user.Login)
}

// GetAccount возвращает профиль текущего пользователя.
func (h *AccountHandler) GetAccount(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetAccount)

	userID, ok := ctx.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrorUnauthorized,
		})
	}

	user, err := h.accountService.CurrentUser(requestCtx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) || errors.Is(err, entities.ErrEmptyUserID) {
			return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorUnauthorized,
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.Status(http.StatusOK).JSON(dto.NewUserResponse(user))
}

// UpdateAccount обновляет профиль текущего пользователя.
func (h *AccountHandler) UpdateAccount(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateAccount)

	userID, ok := ctx.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrorUnauthorized,
		})
	}

	var req dto.UpdateAccountRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		})
	}

	if req.Login == "" || req.Email == "" {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "login and email are required",
		})
	}

	user, err := h.accountService.UpdateProfile(requestCtx, userID, req.Login, req.FirstName, req.LastName, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrUserNotFound):
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": entities.ErrUserNotFound.Error(),
			})
		case errors.Is(err, entities.ErrNotAccountOwner):
			return ctx.Status(http.StatusForbidden).JSON(fiber.Map{
				"error": entities.ErrNotAccountOwner.Error(),
			})
		case errors.Is(err, entities.ErrInvalidEmail), errors.Is(err, entities.ErrEmailAlreadyUsed):
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.Status(http.StatusOK).JSON(dto.NewUserResponse(user))
}

// ChangePassword устанавливает новый пароль текущего пользователя.
// Тело запроса - пароль в виде сырой строки.
func (h *AccountHandler) ChangePassword(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerChangePassword)

	userID, ok := ctx.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return ctx.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": ErrorUnauthorized,
		})
	}

	newPassword := string(ctx.Body())

	if err := h.accountService.ChangePassword(requestCtx, userID, newPassword); err != nil {
		if errors.Is(err, entities.ErrBlankPassword) {
			return ctx.Status(http.StatusForbidden).JSON(fiber.Map{
				"error": entities.ErrBlankPassword.Error(),
			})
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrorFailedToServeRequest,
		})
	}

	return ctx.Status(http.StatusOK).SendString("")
}
