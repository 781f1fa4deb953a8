package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportController "classcheck_backend/internals/features/school/reports/controller"
	authMiddleware "classcheck_backend/internals/middlewares/auth"
)

func ReportRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := reportController.NewReportController(db)
	auth := authMiddleware.AuthMiddleware(db)

	dashboard := api.Group("/dashboard", auth)
	dashboard.Get("/stats", ctrl.DashboardStats)
	dashboard.Get("/admin", ctrl.AdminDashboard)
	dashboard.Get("/professor/:id", ctrl.ProfessorDashboard)

	api.Get("/insights", auth, ctrl.Insights)
	api.Get("/reports/teacher-stats", auth, ctrl.ProfessorDashboard)
}
