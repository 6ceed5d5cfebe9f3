package handler

import (
	"go-hpp-dashboard/internal/middleware"
	"go-hpp-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	salesService service.SalesService
}

func NewSalesHandler(salesService service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// GetSales lists recent sales, newest first
// GET /api/v1/sales
func (h *SalesHandler) GetSales(c *fiber.Ctx) error {
	tenant := middleware.TenantFromCtx(c)
	sales, err := h.salesService.ListRecent(c.UserContext(), tenant.User.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"sales": sales})
}

// CreateSale records one sale and decrements stock atomically
// POST /api/v1/sales
func (h *SalesHandler) CreateSale(c *fiber.Ctx) error {
	var req service.RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	tenant := middleware.TenantFromCtx(c)
	sale, err := h.salesService.RecordSale(c.UserContext(), tenant, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}
