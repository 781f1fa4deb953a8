package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	evasaoController "classcheck_backend/internals/features/school/evasoes/controller"
	authMiddleware "classcheck_backend/internals/middlewares/auth"
)

func EvasaoRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := evasaoController.NewEvasaoController(db)
	auth := authMiddleware.AuthMiddleware(db)

	dropouts := api.Group("/dropouts", auth)
	dropouts.Post("/", ctrl.Create)
	dropouts.Get("/", ctrl.List)

	// alias em português usado pelo painel
	evasoes := api.Group("/evasoes", auth)
	evasoes.Post("/", ctrl.Create)
	evasoes.Get("/", ctrl.List)

	api.Get("/motivos-evasao", auth, ctrl.ListMotivos)
}
