package handler

import (
	"strconv"

	"go-hpp-dashboard/internal/middleware"
	"go-hpp-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns the dashboard headline numbers
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	tenant := middleware.TenantFromCtx(c)
	stats, err := h.dashboardService.GetStats(c.UserContext(), tenant.User.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}

// GetRecentProducts returns the latest products with derived sale prices
// GET /api/v1/products/recent?limit=5
func (h *DashboardHandler) GetRecentProducts(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "5"))

	tenant := middleware.TenantFromCtx(c)
	products, err := h.dashboardService.GetRecentProducts(c.UserContext(), tenant.User.ID, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// GetAnalytics returns 30-day metrics and rule-based insights
// GET /api/v1/analytics
func (h *DashboardHandler) GetAnalytics(c *fiber.Ctx) error {
	tenant := middleware.TenantFromCtx(c)
	result, err := h.dashboardService.GetAnalytics(c.UserContext(), tenant.User.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}
