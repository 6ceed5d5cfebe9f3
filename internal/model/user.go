package model

import "github.com/google/uuid"

// User is the tenant owner. The dashboard runs with a single demo user that
// is get-or-created on first access; there is no login or password.
type User struct {
	BaseModel
	Email string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Name  string `gorm:"type:varchar(255)" json:"name"`

	Businesses []Business `json:"businesses,omitempty"`
}

// Business scopes products to an owner. Created on demand alongside the
// demo user; a Product cannot exist without one.
type Business struct {
	BaseModel
	Name   string `gorm:"type:varchar(255);not null" json:"name"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Products []Product `json:"products,omitempty"`
}
