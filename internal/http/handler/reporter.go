package handler

import (
	"github.com/gofiber/fiber/v2"

	"managerapi/internal/service"
)

// BuildReport serves the report sidecar's aggregate endpoint.
func BuildReport(b service.ReportBuilder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := b.Build(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, reportFileNotFound)
		}
		return c.JSON(report)
	}
}

// SnapshotReport builds a report and stores it in object storage.
func SnapshotReport(b service.ReportBuilder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := b.Snapshot(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, reportFileNotFound)
		}
		return c.Status(fiber.StatusCreated).JSON(f)
	}
}

// RegisterReporterRoutes attaches the report sidecar routes.
func RegisterReporterRoutes(app *fiber.App, db Pinger, builder service.ReportBuilder) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/report", BuildReport(builder))
	app.Post("/reports", SnapshotReport(builder))
}
