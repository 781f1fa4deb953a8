package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "classcheck_backend/internals/features/users/auth/controller"
	"classcheck_backend/internals/middlewares"
	authMiddleware "classcheck_backend/internals/middlewares/auth"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/first-access", ctrl.FirstAccess)
	auth.Post("/reset-password-request", middlewares.ResetPasswordRateLimiter(), ctrl.ResetPasswordRequest)

	auth.Get("/me", authMiddleware.AuthMiddleware(db), ctrl.Me)
	auth.Post("/change-password", authMiddleware.AuthMiddleware(db), ctrl.ChangePassword)
}
