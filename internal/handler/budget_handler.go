package handler

import (
	"go-hpp-dashboard/internal/middleware"
	"go-hpp-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type BudgetHandler struct {
	budgetService service.BudgetService
}

func NewBudgetHandler(budgetService service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// GetBudgets lists per-category production budgets
// GET /api/v1/budgets
func (h *BudgetHandler) GetBudgets(c *fiber.Ctx) error {
	tenant := middleware.TenantFromCtx(c)
	budgets, err := h.budgetService.List(c.UserContext(), tenant.User.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"budgets": budgets})
}

// UpsertBudget sets or increments a category budget
// POST /api/v1/budgets
func (h *BudgetHandler) UpsertBudget(c *fiber.Ctx) error {
	var req service.UpsertBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	tenant := middleware.TenantFromCtx(c)
	budget, err := h.budgetService.Upsert(c.UserContext(), tenant.User.ID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(budget)
}
