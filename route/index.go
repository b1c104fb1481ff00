package route

import (
	"database/sql"
	"os"

	"github.com/gofiber/fiber/v2"

	"university-enrollment-report/app/pdf"
	repo "university-enrollment-report/app/repository/postgresql"
	"university-enrollment-report/app/report"
	"university-enrollment-report/app/service"
	"university-enrollment-report/middleware"
)

// SetupRoutes wires repositories, the aggregation core and the Fiber
// handlers.
func SetupRoutes(app *fiber.App, db *sql.DB) {
	// Repositories
	userRepo := repo.NewUserRepository(db)
	universityRepo := repo.NewUniversityRepository(db)
	fichaRepo := repo.NewFichaRepository(db)

	// Core
	engine := report.NewEngine(fichaRepo)
	assembler := report.NewAssembler(engine, universityRepo)

	logoDir := os.Getenv("LOGO_DIR")
	if logoDir == "" {
		logoDir = "./assets/img"
	}

	// Services
	authService := service.NewAuthService(userRepo)
	universityService := service.NewUniversityService(universityRepo)
	reportService := service.NewReportService(assembler, pdf.DirProvider{Dir: logoDir})

	// Static logo files, same directory the PDF renderer reads from
	app.Static("/img", logoDir)

	api := app.Group("/api/v1")

	// Authentication
	auth := api.Group("/auth")
	auth.Post("/login", authService.Login)
	auth.Post("/refresh", authService.Refresh)
	auth.Get("/profile",
		middleware.AuthRequired(),
		authService.Profile)

	// Universities
	api.Get("/universities",
		middleware.AuthRequired(),
		universityService.GetAll)

	// Reports
	reports := api.Group("/reports",
		middleware.AuthRequired())

	reports.Get("/all",
		middleware.RoleAllowed("admin"),
		reportService.GetAllUniversitiesReport)

	reports.Get("/university/:id",
		reportService.GetUniversityReport)

	reports.Get("/pdf",
		middleware.RoleAllowed("admin"),
		reportService.GetReportPDF)
}
