package model

import "github.com/google/uuid"

// InventoryItem is 1:1 with Product and tracks stock levels.
// ReorderAlert adalah flag turunan (currentStock <= minStock); selalu dihitung
// ulang lewat RecomputeReorderAlert, tidak pernah di-set langsung.
type InventoryItem struct {
	BaseModel
	ProductID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ItemName     string    `gorm:"type:varchar(255)" json:"item_name"`
	CurrentStock int       `gorm:"default:0" json:"current_stock" validate:"gte=0"`
	MinStock     int       `gorm:"default:10" json:"min_stock" validate:"gte=0"`
	UnitCost     float64   `gorm:"default:0" json:"unit_cost" validate:"gte=0"`
	ReorderAlert bool      `gorm:"default:false" json:"reorder_alert"`

	Product *Product `json:"product,omitempty"`
}

// RecomputeReorderAlert refreshes the derived flag. Every path that mutates
// CurrentStock or MinStock must go through this, including sale recording.
func (i *InventoryItem) RecomputeReorderAlert() {
	i.ReorderAlert = i.CurrentStock <= i.MinStock
}
