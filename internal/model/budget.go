package model

import "github.com/google/uuid"

// CategoryBudget is a per (user, category) production-spend ceiling.
// Amount 0 means the category has no budget and checks are a no-op.
type CategoryBudget struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_category" json:"user_id"`
	Category string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_user_category" json:"category"`
	Amount   float64   `gorm:"not null;default:0" json:"amount"`
}

// Budget update modes: "set" overwrites the stored amount, "add" is an
// atomic increment on it.
const (
	BudgetModeSet = "set"
	BudgetModeAdd = "add"
)
