package repository

import (
	"context"
	"time"

	"go-hpp-dashboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.Product, error)
	// FindAllByUserWithActivity preloads inventory plus sales since the given
	// time, for analytics aggregation.
	FindAllByUserWithActivity(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]model.Product, error)
	// CategoryUsage sums production cost exposure (production_cost * unit_production)
	// over a category, excluding one product (the one being edited).
	CategoryUsage(ctx context.Context, userID uuid.UUID, category string, excludeID uuid.UUID) (float64, error)
	Save(ctx context.Context, product *model.Product) error
	UpsertBySKU(ctx context.Context, product *model.Product) (created bool, err error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) byUser(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Joins("JOIN businesses ON businesses.id = products.business_id").
		Where("businesses.user_id = ?", userID)
}

func (r *productRepo) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.byUser(ctx, userID).Find(&products).Error
	return products, err
}

func (r *productRepo) FindAllByUserWithActivity(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.Product, error) {
	var products []model.Product
	err := r.byUser(ctx, userID).
		Preload("InventoryItem").
		Preload("Sales", "date >= ?", since).
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Preload("InventoryItem").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.byUser(ctx, userID).
		Preload("InventoryItem").
		Order("products.created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) CategoryUsage(ctx context.Context, userID uuid.UUID, category string, excludeID uuid.UUID) (float64, error) {
	var usage float64
	query := r.byUser(ctx, userID).
		Model(&model.Product{}).
		Where("products.category = ?", category).
		Select("COALESCE(SUM(products.production_cost * products.unit_production), 0)")
	if excludeID != uuid.Nil {
		query = query.Where("products.id <> ?", excludeID)
	}
	err := query.Scan(&usage).Error
	return usage, err
}

func (r *productRepo) Save(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) UpsertBySKU(ctx context.Context, product *model.Product) (bool, error) {
	if product.SKU == nil || *product.SKU == "" {
		return false, gorm.ErrInvalidData
	}

	var existing model.Product
	err := r.db.WithContext(ctx).First(&existing, "sku = ?", *product.SKU).Error
	if err == gorm.ErrRecordNotFound {
		return true, r.db.WithContext(ctx).Create(product).Error
	}
	if err != nil {
		return false, err
	}

	existing.Name = product.Name
	existing.Description = product.Description
	existing.Category = product.Category
	existing.HPP = product.HPP
	existing.TargetMargin = product.TargetMargin
	existing.CurrentPrice = product.CurrentPrice
	existing.ProductionCost = product.ProductionCost
	existing.LaborCost = product.LaborCost
	existing.OverheadCost = product.OverheadCost
	existing.WasteFactor = product.WasteFactor
	existing.UnitProduction = product.UnitProduction
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return false, err
	}
	*product = existing
	return false, nil
}
