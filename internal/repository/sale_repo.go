package repository

import (
	"context"
	"time"

	"go-hpp-dashboard/internal/apperr"
	"go-hpp-dashboard/internal/engine"
	"go-hpp-dashboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	// RecordSale is the one atomic ledger step: check stock, snapshot the unit
	// price from current HPP and margin, append the sale, decrement stock, and
	// refresh the reorder alert. Any precondition failure leaves nothing behind.
	RecordSale(ctx context.Context, productID uuid.UUID, quantity int) (*model.Sale, error)
	FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Sale, error)
	RevenueSince(ctx context.Context, userID uuid.UUID, since time.Time) (float64, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) RecordSale(ctx context.Context, productID uuid.UUID, quantity int) (*model.Sale, error) {
	if quantity <= 0 {
		return nil, apperr.Invalid("quantity must be greater than zero")
	}

	var sale *model.Sale
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return apperr.NotFound("product")
		}

		// Lock the inventory row so two concurrent sales cannot both pass the
		// stock check and oversell.
		var item model.InventoryItem
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&item, "product_id = ?", product.ID).Error; err != nil {
			return apperr.NotFound("inventory item")
		}

		if item.CurrentStock < quantity {
			return apperr.InsufficientStock(item.CurrentStock, quantity)
		}

		unitPrice := engine.SalePrice(product.HPP, product.TargetMargin)
		sale = &model.Sale{
			ProductID:  product.ID,
			Quantity:   quantity,
			TotalPrice: unitPrice * float64(quantity),
			Date:       time.Now(),
		}
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		item.CurrentStock -= quantity
		item.RecomputeReorderAlert()
		return tx.Model(&model.InventoryItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"current_stock": item.CurrentStock,
				"reorder_alert": item.ReorderAlert,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *saleRepo) FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Product").
		Joins("JOIN products ON products.id = sales.product_id").
		Joins("JOIN businesses ON businesses.id = products.business_id").
		Where("businesses.user_id = ?", userID).
		Order("sales.date DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) RevenueSince(ctx context.Context, userID uuid.UUID, since time.Time) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).
		Model(&model.Sale{}).
		Joins("JOIN products ON products.id = sales.product_id").
		Joins("JOIN businesses ON businesses.id = products.business_id").
		Where("businesses.user_id = ? AND sales.date >= ?", userID, since).
		Select("COALESCE(SUM(sales.total_price), 0)").
		Scan(&revenue).Error
	return revenue, err
}
