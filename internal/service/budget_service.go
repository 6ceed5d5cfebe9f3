package service

import (
	"context"

	"go-hpp-dashboard/internal/apperr"
	"go-hpp-dashboard/internal/model"
	"go-hpp-dashboard/internal/repository"

	"github.com/google/uuid"
)

// UpsertBudgetRequest sets or increments a category's production-spend ceiling.
type UpsertBudgetRequest struct {
	Category string   `json:"category"`
	Amount   *float64 `json:"amount"`
	Mode     string   `json:"mode"` // "set" (default) or "add"
}

type BudgetService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.CategoryBudget, error)
	Upsert(ctx context.Context, userID uuid.UUID, req *UpsertBudgetRequest) (*model.CategoryBudget, error)
}

type budgetService struct {
	budgetRepo repository.BudgetRepository
}

func NewBudgetService(budgetRepo repository.BudgetRepository) BudgetService {
	return &budgetService{budgetRepo: budgetRepo}
}

func (s *budgetService) List(ctx context.Context, userID uuid.UUID) ([]model.CategoryBudget, error) {
	return s.budgetRepo.FindAllByUser(ctx, userID)
}

func (s *budgetService) Upsert(ctx context.Context, userID uuid.UUID, req *UpsertBudgetRequest) (*model.CategoryBudget, error) {
	if req.Category == "" || req.Amount == nil {
		return nil, apperr.Invalid("category and amount are required")
	}
	if *req.Amount < 0 {
		return nil, apperr.Invalid("amount must not be negative")
	}

	mode := req.Mode
	if mode == "" {
		mode = model.BudgetModeSet
	}
	if mode != model.BudgetModeSet && mode != model.BudgetModeAdd {
		return nil, apperr.Invalid("mode must be 'set' or 'add'")
	}

	return s.budgetRepo.Upsert(ctx, userID, req.Category, *req.Amount, mode)
}
