package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alunoRoute "classcheck_backend/internals/features/school/alunos/route"
	chamadaRoute "classcheck_backend/internals/features/school/chamadas/route"
	cursoRoute "classcheck_backend/internals/features/school/cursos/route"
	evasaoRoute "classcheck_backend/internals/features/school/evasoes/route"
	reportRoute "classcheck_backend/internals/features/school/reports/route"
	turmaRoute "classcheck_backend/internals/features/school/turmas/route"
	unidadeRoute "classcheck_backend/internals/features/school/unidades/route"
	authRoute "classcheck_backend/internals/features/users/auth/route"
	userRoute "classcheck_backend/internals/features/users/users/route"
)

// SetupRoutes pendura todas as rotas da aplicação sob /api.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	authRoute.AuthRoutes(api, db)
	userRoute.UserRoutes(api, db)

	unidadeRoute.UnidadeRoutes(api, db)
	cursoRoute.CursoRoutes(api, db)
	alunoRoute.AlunoRoutes(api, db)
	turmaRoute.TurmaRoutes(api, db)
	chamadaRoute.ChamadaRoutes(api, db)
	evasaoRoute.EvasaoRoutes(api, db)
	reportRoute.ReportRoutes(api, db)
}
