package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	turmaController "classcheck_backend/internals/features/school/turmas/controller"
	authMiddleware "classcheck_backend/internals/middlewares/auth"
)

func TurmaRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := turmaController.NewTurmaController(db)
	auth := authMiddleware.AuthMiddleware(db)

	classes := api.Group("/classes", auth)
	classes.Post("/", ctrl.Create)
	classes.Get("/", ctrl.List)
	classes.Get("/:id", ctrl.Get)
	classes.Put("/:id", ctrl.Update)
	classes.Delete("/:id", ctrl.Delete)
	classes.Get("/:id/students", ctrl.ListStudents)
	classes.Put("/:id/students/:studentId", ctrl.AddAluno)
	classes.Delete("/:id/students/:studentId", ctrl.RemoveAluno)

	// alias em português usado pelos filtros do painel
	turmas := api.Group("/turmas", auth)
	turmas.Get("/", ctrl.List)
	turmas.Get("/:id", ctrl.Get)
}
