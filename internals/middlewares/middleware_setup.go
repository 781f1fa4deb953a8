package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// SetupMiddlewares registra os middlewares globais na ordem certa:
// recover primeiro, depois CORS e o rate limit geral.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
