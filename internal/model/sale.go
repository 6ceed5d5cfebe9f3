package model

import (
	"time"

	"github.com/google/uuid"
)

// Sale is an append-only ledger row. TotalPrice is a snapshot of
// hpp * (1 + targetMargin) * quantity at the time of sale; the unit price is
// never stored separately.
type Sale struct {
	BaseModel
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	TotalPrice float64   `gorm:"not null" json:"total_price"`
	Date       time.Time `gorm:"not null;index" json:"date"`

	Product *Product `json:"product,omitempty"`
}
