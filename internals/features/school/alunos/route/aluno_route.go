package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alunoController "classcheck_backend/internals/features/school/alunos/controller"
	authMiddleware "classcheck_backend/internals/middlewares/auth"
)

func AlunoRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := alunoController.NewAlunoController(db)
	auth := authMiddleware.AuthMiddleware(db)

	students := api.Group("/students", auth)
	students.Post("/", ctrl.Create)
	students.Get("/", ctrl.List)
	students.Put("/:id", ctrl.Update)

	// família em português usada pelo painel de evasão
	alunos := api.Group("/alunos", auth)
	alunos.Get("/", ctrl.ListFiltrado)
	alunos.Get("/:id", ctrl.Get)
	alunos.Patch("/:id/status", ctrl.UpdateStatus)
}
