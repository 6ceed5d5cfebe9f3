package repository

import (
	"context"

	"go-hpp-dashboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BudgetRepository interface {
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.CategoryBudget, error)
	// FindByCategory returns nil (no error) when the category has no budget.
	FindByCategory(ctx context.Context, userID uuid.UUID, category string) (*model.CategoryBudget, error)
	// Upsert writes the (user, category) ceiling. Mode "add" is an atomic
	// increment on the stored amount; "set" overwrites it.
	Upsert(ctx context.Context, userID uuid.UUID, category string, amount float64, mode string) (*model.CategoryBudget, error)
}

type budgetRepo struct {
	db *gorm.DB
}

func NewBudgetRepo(db *gorm.DB) BudgetRepository {
	return &budgetRepo{db}
}

func (r *budgetRepo) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.CategoryBudget, error) {
	var budgets []model.CategoryBudget
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category ASC").
		Find(&budgets).Error
	return budgets, err
}

func (r *budgetRepo) FindByCategory(ctx context.Context, userID uuid.UUID, category string) (*model.CategoryBudget, error) {
	var budget model.CategoryBudget
	err := r.db.WithContext(ctx).
		First(&budget, "user_id = ? AND category = ?", userID, category).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *budgetRepo) Upsert(ctx context.Context, userID uuid.UUID, category string, amount float64, mode string) (*model.CategoryBudget, error) {
	assignment := clause.Assignments(map[string]interface{}{"amount": amount})
	if mode == model.BudgetModeAdd {
		assignment = clause.Assignments(map[string]interface{}{
			"amount": gorm.Expr("category_budgets.amount + ?", amount),
		})
	}

	budget := model.CategoryBudget{UserID: userID, Category: category, Amount: amount}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}},
			DoUpdates: assignment,
		}).
		Create(&budget).Error
	if err != nil {
		return nil, err
	}

	// Re-read so "add" returns the post-increment amount.
	var current model.CategoryBudget
	if err := r.db.WithContext(ctx).
		First(&current, "user_id = ? AND category = ?", userID, category).Error; err != nil {
		return nil, err
	}
	return &current, nil
}
