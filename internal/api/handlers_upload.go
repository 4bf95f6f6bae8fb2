package api

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/salesboard/internal/services"
)

const uploadDateLayout = "2006-01-02"

func (handler *Handler) ShowUploadPage(c *fiber.Ctx) error {
	messages := currentMessages(c)
	flash := handler.popFlashCookie(c)
	return handler.render(c, "upload", fiber.Map{
		"Title":           localizedPageTitle(messages, "meta.title.upload", "Sales Board | Upload data"),
		"ErrorText":       localizedError(messages, flash.UploadError),
		"ErrorDetail":     flash.UploadDetail,
		"RequiredColumns": services.RequiredImportColumns,
	})
}

func (handler *Handler) respondUploadError(c *fiber.Ctx, status int, message string, detail string) error {
	if acceptsJSON(c) || isHTMX(c) {
		if detail != "" && !isHTMX(c) {
			return c.Status(status).JSON(fiber.Map{"error": message, "detail": detail})
		}
		return apiError(c, status, message)
	}
	handler.setFlashCookie(c, FlashPayload{UploadError: message, UploadDetail: detail})
	return c.Redirect("/upload", fiber.StatusSeeOther)
}

func (handler *Handler) Upload(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	header, err := c.FormFile("file")
	if err != nil || header == nil || strings.TrimSpace(header.Filename) == "" {
		return handler.respondUploadError(c, fiber.StatusBadRequest, "file is required", "")
	}
	if !services.IsSupportedImportFile(header.Filename) {
		return handler.respondUploadError(c, fiber.StatusBadRequest, "unsupported file type", header.Filename)
	}
	if header.Size > handler.uploadLimit {
		return handler.respondUploadError(c, fiber.StatusRequestEntityTooLarge, "failed to import file", "file too large")
	}

	file, err := header.Open()
	if err != nil {
		return handler.respondUploadError(c, fiber.StatusBadRequest, "failed to import file", "")
	}
	defer file.Close()

	summary, err := handler.importService.Import(user.ID, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedFile):
			return handler.respondUploadError(c, fiber.StatusBadRequest, "unsupported file type", header.Filename)
		case errors.Is(err, services.ErrMissingColumns):
			return handler.respondUploadError(c, fiber.StatusBadRequest, "missing required columns", missingColumnsDetail(err))
		case errors.Is(err, services.ErrEmptyImport):
			return handler.respondUploadError(c, fiber.StatusBadRequest, "no rows to import", "")
		default:
			log.Printf("import %s for user %d failed: %v", header.Filename, user.ID, err)
			return handler.respondUploadError(c, fiber.StatusUnprocessableEntity, "failed to import file", "")
		}
	}

	if _, err := handler.analyzerService.FullAnalysis(user.ID, nil, nil); err != nil {
		log.Printf("analyze sales after import for user %d failed: %v", user.ID, err)
	}

	if acceptsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(summary)
	}
	handler.setFlashCookie(c, FlashPayload{UploadSummary: uploadFlashFromSummary(summary)})
	return redirectOrJSON(c, "/dashboard")
}

func missingColumnsDetail(err error) string {
	_, detail, found := strings.Cut(err.Error(), services.ErrMissingColumns.Error()+": ")
	if !found {
		return ""
	}
	return detail
}

func uploadFlashFromSummary(summary services.ImportSummary) *uploadSummaryFlash {
	flash := &uploadSummaryFlash{
		TotalRows:      summary.TotalRows,
		UniqueProducts: summary.UniqueProducts,
		TotalSales:     summary.TotalSales,
		Warnings:       summary.Warnings,
	}
	if summary.DateRange != nil {
		flash.DateFrom = summary.DateRange.Min.Format(uploadDateLayout)
		flash.DateTo = summary.DateRange.Max.Format(uploadDateLayout)
	}
	return flash
}
