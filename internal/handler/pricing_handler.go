package handler

import (
	"go-hpp-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PricingHandler struct {
	pricingService service.PricingService
}

func NewPricingHandler(pricingService service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// OptimizePrices computes tiered price recommendations per product
// POST /api/v1/optimize-prices
func (h *PricingHandler) OptimizePrices(c *fiber.Ctx) error {
	var req struct {
		Products []service.OptimizeProductInput `json:"products"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	optimizations, err := h.pricingService.OptimizePrices(c.UserContext(), req.Products)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"optimizations": optimizations})
}

// BusinessProjection computes the 12-month profitability projection
// POST /api/v1/business-projection
func (h *PricingHandler) BusinessProjection(c *fiber.Ctx) error {
	var req service.ProjectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	resp, err := h.pricingService.BusinessProjection(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// CompetitorAnalysis returns the comprehensive market analysis
// POST /api/v1/competitor-analysis
func (h *PricingHandler) CompetitorAnalysis(c *fiber.Ctx) error {
	var req struct {
		ProductName string `json:"product_name"`
		Category    string `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	report, err := h.pricingService.CompetitorAnalysis(c.UserContext(), req.ProductName, req.Category)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

// SimulateCompetitors returns a randomized marketplace snapshot
// POST /api/v1/competitors/analyze
func (h *PricingHandler) SimulateCompetitors(c *fiber.Ctx) error {
	var req struct {
		ProductName string  `json:"product_name"`
		BasePrice   float64 `json:"base_price"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sim, err := h.pricingService.SimulateCompetitors(c.UserContext(), req.ProductName, req.BasePrice)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sim)
}
