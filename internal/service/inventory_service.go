package service

import (
	"context"
	"errors"
	"fmt"

	"go-hpp-dashboard/internal/apperr"
	"go-hpp-dashboard/internal/engine"
	"go-hpp-dashboard/internal/model"
	"go-hpp-dashboard/internal/repository"
	"go-hpp-dashboard/internal/ws"
	"go-hpp-dashboard/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateInventoryRequest creates a Product together with its InventoryItem.
// HPP is derived server-side from the cost components.
type CreateInventoryRequest struct {
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	SKU            string   `json:"sku"`
	ProductionCost float64  `json:"production_cost" validate:"gte=0"`
	LaborCost      float64  `json:"labor_cost" validate:"gte=0"`
	OverheadCost   float64  `json:"overhead_cost" validate:"gte=0"`
	WasteFactor    *float64 `json:"waste_factor" validate:"omitempty,gte=0"`
	UnitProduction int      `json:"unit_production" validate:"gte=0"`
	TargetMargin   *float64 `json:"target_margin" validate:"omitempty,gte=0"`
	CurrentStock   int      `json:"current_stock" validate:"gte=0"`
	MinStock       *int     `json:"min_stock" validate:"omitempty,gte=0"`
	UnitCost       float64  `json:"unit_cost" validate:"gte=0"`
}

// UpdateInventoryRequest edits stock levels and, optionally, product fields.
type UpdateInventoryRequest struct {
	ID             uuid.UUID `json:"id" validate:"uuid_required"`
	CurrentStock   int       `json:"current_stock" validate:"gte=0"`
	MinStock       int       `json:"min_stock" validate:"gte=0"`
	UnitCost       float64   `json:"unit_cost" validate:"gte=0"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	SKU            string    `json:"sku"`
	ProductionCost *float64  `json:"production_cost" validate:"omitempty,gte=0"`
	LaborCost      *float64  `json:"labor_cost" validate:"omitempty,gte=0"`
	OverheadCost   *float64  `json:"overhead_cost" validate:"omitempty,gte=0"`
	WasteFactor    *float64  `json:"waste_factor" validate:"omitempty,gte=0"`
	UnitProduction *int      `json:"unit_production" validate:"omitempty,gte=1"`
	TargetMargin   *float64  `json:"target_margin" validate:"omitempty,gte=0"`
}

type InventoryService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.InventoryItem, error)
	Create(ctx context.Context, tenant *Tenant, req *CreateInventoryRequest) (*model.InventoryItem, error)
	Update(ctx context.Context, tenant *Tenant, req *UpdateInventoryRequest) (*model.InventoryItem, error)
}

type inventoryService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	budgetRepo    repository.BudgetRepository
	wsHub         *ws.Hub
}

func NewInventoryService(
	pRepo repository.ProductRepository,
	iRepo repository.InventoryRepository,
	bRepo repository.BudgetRepository,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		productRepo:   pRepo,
		inventoryRepo: iRepo,
		budgetRepo:    bRepo,
		wsHub:         hub,
	}
}

func (s *inventoryService) List(ctx context.Context, userID uuid.UUID) ([]model.InventoryItem, error) {
	return s.inventoryRepo.FindAllByUser(ctx, userID)
}

func (s *inventoryService) Create(ctx context.Context, tenant *Tenant, req *CreateInventoryRequest) (*model.InventoryItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.Invalid("field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	product := productFromCreateRequest(req, tenant.Business.ID)
	product.HPP = engine.ComputeHPP(engine.CostInput{
		ProductionCost: product.ProductionCost,
		LaborCost:      product.LaborCost,
		OverheadCost:   product.OverheadCost,
		WasteFactor:    product.WasteFactor,
		UnitProduction: product.UnitProduction,
	})

	if product.SKU != nil {
		existing, err := s.productRepo.FindBySKU(ctx, *product.SKU)
		if err == nil && existing != nil && existing.ID != uuid.Nil {
			return nil, apperr.Invalid("SKU already exists")
		}
	}

	// Validate-before-write budget check. The usage read and the create are
	// separate statements, so two concurrent creates in one category can still
	// jointly exceed the ceiling; budgets are best-effort guards, not hard
	// accounting.
	if err := s.checkBudget(ctx, tenant.User.ID, product, uuid.Nil); err != nil {
		return nil, err
	}

	minStock := 10
	if req.MinStock != nil {
		minStock = *req.MinStock
	}
	item := &model.InventoryItem{
		UserID:       tenant.User.ID,
		CurrentStock: req.CurrentStock,
		MinStock:     minStock,
		UnitCost:     req.UnitCost,
	}

	if err := s.inventoryRepo.CreateWithProduct(ctx, product, item); err != nil {
		return nil, err
	}
	item.Product = product

	go s.wsHub.BroadcastEvent("stock_update", map[string]interface{}{
		"action": "product_created",
		"product": map[string]interface{}{
			"id":    product.ID,
			"name":  product.Name,
			"hpp":   product.HPP,
			"stock": item.CurrentStock,
		},
		"message": fmt.Sprintf("Product '%s' created", product.Name),
	})

	return item, nil
}

func (s *inventoryService) Update(ctx context.Context, tenant *Tenant, req *UpdateInventoryRequest) (*model.InventoryItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.Invalid("field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	item, err := s.inventoryRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if item.UserID != tenant.User.ID {
		return nil, apperr.NotFound("inventory item")
	}

	item.CurrentStock = req.CurrentStock
	item.MinStock = req.MinStock
	item.UnitCost = req.UnitCost

	var product *model.Product
	if s.touchesProduct(req) {
		loaded, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("product")
			}
			return nil, err
		}
		product = loaded
		applyProductUpdates(product, req)
		product.HPP = engine.ComputeHPP(engine.CostInput{
			ProductionCost: product.ProductionCost,
			LaborCost:      product.LaborCost,
			OverheadCost:   product.OverheadCost,
			WasteFactor:    product.WasteFactor,
			UnitProduction: product.UnitProduction,
		})
		product.InventoryItem = nil
		item.ItemName = product.Name

		// Re-check the category budget, excluding this product's previous spend.
		if err := s.checkBudget(ctx, tenant.User.ID, product, product.ID); err != nil {
			return nil, err
		}
	}

	if err := s.inventoryRepo.UpdateWithProduct(ctx, item, product); err != nil {
		return nil, err
	}

	go s.wsHub.BroadcastEvent("stock_update", map[string]interface{}{
		"action": "inventory_updated",
		"inventory": map[string]interface{}{
			"id":            item.ID,
			"current_stock": item.CurrentStock,
			"min_stock":     item.MinStock,
			"reorder_alert": item.ReorderAlert,
		},
	})

	return item, nil
}

func (s *inventoryService) touchesProduct(req *UpdateInventoryRequest) bool {
	return req.Name != "" || req.SKU != "" || req.Category != "" ||
		req.ProductionCost != nil || req.LaborCost != nil || req.OverheadCost != nil ||
		req.WasteFactor != nil || req.UnitProduction != nil || req.TargetMargin != nil
}

func (s *inventoryService) checkBudget(ctx context.Context, userID uuid.UUID, product *model.Product, excludeID uuid.UUID) error {
	budget, err := s.budgetRepo.FindByCategory(ctx, userID, product.Category)
	if err != nil {
		return err
	}
	if budget == nil {
		return nil
	}

	usage, err := s.productRepo.CategoryUsage(ctx, userID, product.Category, excludeID)
	if err != nil {
		return err
	}

	newSpend := engine.ProductionSpend(product.ProductionCost, product.UnitProduction)
	status := engine.CheckBudget(usage, newSpend, budget.Amount)
	if !status.WithinBudget {
		return apperr.BudgetExceeded(product.Category, status.ExceededBy)
	}
	return nil
}

func productFromCreateRequest(req *CreateInventoryRequest, businessID uuid.UUID) *model.Product {
	wasteFactor := 5.0
	if req.WasteFactor != nil {
		wasteFactor = *req.WasteFactor
	}
	targetMargin := 0.3
	if req.TargetMargin != nil {
		targetMargin = *req.TargetMargin
	}
	unitProduction := req.UnitProduction
	if unitProduction < 1 {
		unitProduction = 1
	}
	category := req.Category
	if category == "" {
		category = "Uncategorized"
	}

	product := &model.Product{
		Name:           req.Name,
		Description:    req.Description,
		Category:       category,
		ProductionCost: req.ProductionCost,
		LaborCost:      req.LaborCost,
		OverheadCost:   req.OverheadCost,
		WasteFactor:    wasteFactor,
		UnitProduction: unitProduction,
		TargetMargin:   targetMargin,
		BusinessID:     businessID,
	}
	if req.SKU != "" {
		sku := req.SKU
		product.SKU = &sku
	}
	return product
}

func applyProductUpdates(product *model.Product, req *UpdateInventoryRequest) {
	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.SKU != "" {
		sku := req.SKU
		product.SKU = &sku
	}
	if req.ProductionCost != nil {
		product.ProductionCost = *req.ProductionCost
	}
	if req.LaborCost != nil {
		product.LaborCost = *req.LaborCost
	}
	if req.OverheadCost != nil {
		product.OverheadCost = *req.OverheadCost
	}
	if req.WasteFactor != nil {
		product.WasteFactor = *req.WasteFactor
	}
	if req.UnitProduction != nil {
		product.UnitProduction = *req.UnitProduction
	}
	if req.TargetMargin != nil {
		product.TargetMargin = *req.TargetMargin
	}
}
