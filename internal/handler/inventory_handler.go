package handler

import (
	"go-hpp-dashboard/internal/middleware"
	"go-hpp-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// GetInventory lists all inventory items with their products
// GET /api/v1/inventory
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	tenant := middleware.TenantFromCtx(c)
	items, err := h.inventoryService.List(c.UserContext(), tenant.User.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"inventory": items})
}

// CreateInventory creates a product together with its stock record
// POST /api/v1/inventory
func (h *InventoryHandler) CreateInventory(c *fiber.Ctx) error {
	var req service.CreateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	tenant := middleware.TenantFromCtx(c)
	item, err := h.inventoryService.Create(c.UserContext(), tenant, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateInventory edits stock levels and optionally product fields
// PUT /api/v1/inventory/:id
func (h *InventoryHandler) UpdateInventory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid inventory ID"})
	}

	var req service.UpdateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	req.ID = id

	tenant := middleware.TenantFromCtx(c)
	item, err := h.inventoryService.Update(c.UserContext(), tenant, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}
