package repository

import (
	"context"

	"go-hpp-dashboard/internal/apperr"
	"go-hpp-dashboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.InventoryItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	// CreateWithProduct persists the product and its inventory item in one
	// transaction; an item never exists apart from its product.
	CreateWithProduct(ctx context.Context, product *model.Product, item *model.InventoryItem) error
	// UpdateWithProduct saves item and (optionally) product changes atomically.
	UpdateWithProduct(ctx context.Context, item *model.InventoryItem, product *model.Product) error
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&items).Error
	return items, err
}

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).Preload("Product").First(&item, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("inventory item")
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) CreateWithProduct(ctx context.Context, product *model.Product, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		item.ProductID = product.ID
		item.ItemName = product.Name
		item.RecomputeReorderAlert()
		return tx.Create(item).Error
	})
}

func (r *inventoryRepo) UpdateWithProduct(ctx context.Context, item *model.InventoryItem, product *model.Product) error {
	item.RecomputeReorderAlert()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		if product != nil {
			if err := tx.Save(product).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
