package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"managerapi/internal/model"
	"managerapi/internal/service"
)

const reportFileNotFound = "report file not found"

type reportFileURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type reportFileList struct {
	Data []model.ReportFile `json:"data"`
}

// GetReport proxies the manager report from the report service.
//
// @Summary Manager report
// @Description Maps each manager name to its contracts count.
// @Tags reports
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 502 {object} errorPayload
// @Router /reports/report [get]
func GetReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := svc.Report(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, reportFileNotFound)
		}
		return c.JSON(report)
	}
}

// GenerateReportFile asks the report service to store a new snapshot.
//
// @Summary Generate a report file
// @Tags reports
// @Produce json
// @Success 201 {object} model.ReportFile
// @Failure 502 {object} errorPayload
// @Router /reports/files [post]
func GenerateReportFile(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := svc.Generate(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, reportFileNotFound)
		}
		return c.Status(fiber.StatusCreated).JSON(f)
	}
}

// ListReportFiles lists stored report files, newest first.
//
// @Summary List report files
// @Tags reports
// @Produce json
// @Success 200 {object} reportFileList
// @Failure 500 {object} errorPayload
// @Router /reports/files [get]
func ListReportFiles(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := svc.ListFiles(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, reportFileNotFound)
		}
		if files == nil {
			files = []model.ReportFile{}
		}
		return c.JSON(reportFileList{Data: files})
	}
}

// DownloadReportFile streams a stored report file.
//
// @Summary Download a report file
// @Tags reports
// @Produce json
// @Param name path string true "File name"
// @Success 200 {file} file
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /reports/files/{name} [get]
func DownloadReportFile(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, f, err := svc.OpenFile(c.UserContext(), c.Params("name"))
		if err != nil {
			return writeServiceError(c, err, reportFileNotFound)
		}
		c.Attachment(f.Name)
		if f.ContentType != "" {
			c.Set(fiber.HeaderContentType, f.ContentType)
		}
		// fasthttp closes rc once the body is written.
		return c.SendStream(rc, int(f.Size))
	}
}

// ReportFileURL returns a presigned URL for a stored report file.
//
// @Summary Presigned report file URL
// @Tags reports
// @Produce json
// @Param name path string true "File name"
// @Success 200 {object} reportFileURL
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /reports/files/{name}/url [get]
func ReportFileURL(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, expires, err := svc.FileURL(c.UserContext(), c.Params("name"))
		if err != nil {
			return writeServiceError(c, err, reportFileNotFound)
		}
		return c.JSON(reportFileURL{URL: url, ExpiresAt: expires})
	}
}

// DeleteReportFile removes a stored report file.
//
// @Summary Delete a report file
// @Tags reports
// @Param name path string true "File name"
// @Success 204
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /reports/files/{name} [delete]
func DeleteReportFile(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteFile(c.UserContext(), c.Params("name")); err != nil {
			return writeServiceError(c, err, reportFileNotFound)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
