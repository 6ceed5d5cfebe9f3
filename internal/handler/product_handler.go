package handler

import (
	"go-hpp-dashboard/internal/middleware"
	"go-hpp-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	csvService service.CSVService
}

func NewProductHandler(csvService service.CSVService) *ProductHandler {
	return &ProductHandler{csvService: csvService}
}

// ExportCSV streams all products as a CSV download
// GET /api/v1/products/export
func (h *ProductHandler) ExportCSV(c *fiber.Ctx) error {
	tenant := middleware.TenantFromCtx(c)
	data, filename, err := h.csvService.Export(c.UserContext(), tenant.User.ID)
	if err != nil {
		return fail(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ImportCSV upserts products from an uploaded CSV file
// POST /api/v1/products/import
func (h *ProductHandler) ImportCSV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "CSV file is required (multipart field 'file')"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}
	defer file.Close()

	tenant := middleware.TenantFromCtx(c)
	result, err := h.csvService.Import(c.UserContext(), tenant, file)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// DownloadTemplate serves the import template with one example row
// GET /api/v1/products/template
func (h *ProductHandler) DownloadTemplate(c *fiber.Ctx) error {
	data, filename := h.csvService.Template()

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
