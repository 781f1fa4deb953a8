package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cursoController "classcheck_backend/internals/features/school/cursos/controller"
	authMiddleware "classcheck_backend/internals/middlewares/auth"
)

func CursoRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := cursoController.NewCursoController(db)
	auth := authMiddleware.AuthMiddleware(db)

	courses := api.Group("/courses", auth)
	courses.Post("/", ctrl.Create)
	courses.Get("/", ctrl.List)
	courses.Put("/:id", ctrl.Update)
	courses.Delete("/:id", ctrl.Delete)
}
