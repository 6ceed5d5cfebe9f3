package model

import "github.com/google/uuid"

// Product menyimpan komponen biaya per unit plus HPP turunannya.
// HPP = ((production + labor + overhead) * (1 + wasteFactor/100)) / unitProduction,
// dihitung ulang setiap kali komponen biaya berubah dan tidak pernah negatif.
type Product struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category    string  `gorm:"type:varchar(100);default:'Uncategorized'" json:"category"`
	SKU         *string `gorm:"type:varchar(50);uniqueIndex" json:"sku,omitempty"` // nullable-unique, bukan sentinel
	Description string  `json:"description"`

	ProductionCost float64 `gorm:"default:0" json:"production_cost" validate:"gte=0"`
	LaborCost      float64 `gorm:"default:0" json:"labor_cost" validate:"gte=0"`
	OverheadCost   float64 `gorm:"default:0" json:"overhead_cost" validate:"gte=0"`
	WasteFactor    float64 `gorm:"default:5" json:"waste_factor" validate:"gte=0"` // persen
	UnitProduction int     `gorm:"default:1" json:"unit_production" validate:"gte=0"`
	TargetMargin   float64 `gorm:"default:0.3" json:"target_margin" validate:"gte=0"` // fraksi, 0.3 = 30%
	HPP            float64 `gorm:"default:0" json:"hpp"`
	CurrentPrice   *float64 `json:"current_price,omitempty"`

	BusinessID uuid.UUID `gorm:"type:uuid;not null;index" json:"business_id"`

	// Relasi
	InventoryItem *InventoryItem `json:"inventory_item,omitempty"`
	Sales         []Sale         `json:"sales,omitempty"`
}
