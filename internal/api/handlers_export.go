package api

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("sales-report-%s.%s", now.Format("2006-01-02"), extension)
}

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	from, to, message := handler.parseReportRange(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	summary, err := handler.exportService.BuildSummary(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	return c.JSON(fiber.Map{
		"total_entries": summary.TotalEntries,
		"has_data":      summary.HasData,
		"date_from":     summary.DateFrom,
		"date_to":       summary.DateTo,
	})
}

func (handler *Handler) ExportXLSX(c *fiber.Ctx) error {
	return handler.sendExport(c, xlsxContentType, "xlsx", handler.exportService.BuildWorkbook)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	return handler.sendExport(c, "text/csv", "csv", handler.exportService.BuildCSV)
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	return handler.sendExport(c, fiber.MIMEApplicationJSON, "json", handler.exportService.BuildJSON)
}

func (handler *Handler) sendExport(c *fiber.Ctx, contentType string, extension string, build func(userID uint, from *time.Time, to *time.Time) ([]byte, error)) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	from, to, message := handler.parseReportRange(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	payload, err := build(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	setAttachmentHeaders(c, contentType, buildExportFilename(time.Now().In(handler.location), extension))
	return c.Send(payload)
}
