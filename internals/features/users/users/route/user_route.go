package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "classcheck_backend/internals/features/users/users/controller"
	authMiddleware "classcheck_backend/internals/middlewares/auth"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)
	auth := authMiddleware.AuthMiddleware(db)

	users := api.Group("/users", auth)
	users.Post("/", ctrl.Create)
	users.Get("/", ctrl.List)
	users.Get("/pending", ctrl.ListPending)
	users.Put("/:id", ctrl.Update)
	users.Put("/:id/approve", ctrl.Approve)
	users.Post("/:id/reset-password", ctrl.ResetPassword)
	users.Delete("/:id", ctrl.Delete)

	api.Get("/professores", auth, ctrl.ListProfessores)
}
