package handler

import (
	"github.com/gofiber/fiber/v2"

	"managerapi/internal/service"
)

// RegisterRoutes attaches the public API routes to the provided Fiber app.
// Handlers stay thin: parsing and status mapping only.
func RegisterRoutes(app *fiber.App, db Pinger, managers service.ManagerService, reports service.ReportService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	m := app.Group("/managers")
	m.Get("/", ListManagers(managers))
	m.Post("/", CreateManager(managers))
	m.Get("/:id", GetManager(managers))
	m.Put("/:id", UpdateManager(managers))
	m.Delete("/:id", DeleteManager(managers))

	r := app.Group("/reports")
	r.Get("/report", GetReport(reports))
	r.Post("/files", GenerateReportFile(reports))
	r.Get("/files", ListReportFiles(reports))
	r.Get("/files/:name", DownloadReportFile(reports))
	r.Get("/files/:name/url", ReportFileURL(reports))
	r.Delete("/files/:name", DeleteReportFile(reports))
}
