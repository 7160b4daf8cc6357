// Package httpapi содержит компоненты HTTP сервера книжного магазина.
package httpapi

import (
	"github.com/gofiber/fiber/v3"

	accountapi "bookstore/internal/account/ports/api"
	accountsvc "bookstore/internal/account/ports/services"
	catalogapi "bookstore/internal/catalog/ports/api"
	"bookstore/internal/httpapi/handlers"
	"bookstore/internal/httpapi/middleware"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(
	app *fiber.App,
	accountService accountapi.AccountUseCase,
	catalogService catalogapi.CatalogUseCase,
	tokenService accountsvc.TokenService,
	mailService accountsvc.MailService,
) {
	accountHandler := handlers.NewAccountHandler(accountService, tokenService, mailService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	authRequired := middleware.NewAuthMiddleware(tokenService)

	api := app.Group("/api")

	// Жизненный цикл учетной записи (публичные маршруты).
	api.Post("/register", accountHandler.Register)
	api.Get("/activate", accountHandler.Activate)
	api.Post("/login", accountHandler.Login)
	api.Get("/authenticate", accountHandler.Authenticate)

	// Профиль текущего пользователя (требуют авторизации).
	api.Get("/account", accountHandler.GetAccount, authRequired)
	api.Post("/account", accountHandler.UpdateAccount, authRequired)
	api.Post("/account/change_password", accountHandler.ChangePassword, authRequired)

	// Каталог: чтение публичное, запись требует авторизации.
	api.Get("/authors", catalogHandler.ListAuthors)
	api.Get("/authors/:id", catalogHandler.GetAuthor)
	api.Post("/authors", catalogHandler.CreateAuthor, authRequired)
	api.Put("/authors/:id", catalogHandler.UpdateAuthor, authRequired)
	api.Delete("/authors/:id", catalogHandler.DeleteAuthor, authRequired)

	api.Get("/books", catalogHandler.ListBooks)
	api.Get("/books/:id", catalogHandler.GetBook)
	api.Post("/books", catalogHandler.CreateBook, authRequired)
	api.Put("/books/:id", catalogHandler.UpdateBook, authRequired)
	api.Delete("/books/:id", catalogHandler.DeleteBook, authRequired)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
