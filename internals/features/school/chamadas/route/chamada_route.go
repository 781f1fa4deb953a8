package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	chamadaController "classcheck_backend/internals/features/school/chamadas/controller"
	authMiddleware "classcheck_backend/internals/middlewares/auth"
)

func ChamadaRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := chamadaController.NewChamadaController(db)
	auth := authMiddleware.AuthMiddleware(db)

	api.Post("/attendance", auth, ctrl.Create)
	api.Get("/classes/:id/attendance", auth, ctrl.ListByTurma)
	api.Get("/notifications/pending-calls", auth, ctrl.PendingCalls)
}
