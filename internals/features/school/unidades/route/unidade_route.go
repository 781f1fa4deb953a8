package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	unidadeController "classcheck_backend/internals/features/school/unidades/controller"
	authMiddleware "classcheck_backend/internals/middlewares/auth"
)

func UnidadeRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := unidadeController.NewUnidadeController(db)
	auth := authMiddleware.AuthMiddleware(db)

	units := api.Group("/units", auth)
	units.Post("/", ctrl.Create)
	units.Get("/", ctrl.List)
	units.Put("/:id", ctrl.Update)
	units.Delete("/:id", ctrl.Delete)

	// alias em português usado pelo painel de evasão
	api.Get("/unidades", auth, ctrl.List)
}
