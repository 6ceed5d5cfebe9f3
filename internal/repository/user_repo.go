package repository

import (
	"context"

	"go-hpp-dashboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	// GetOrCreateByEmail is the idempotent demo-tenant bootstrap. Safe under
	// concurrent first access: the insert is an ON CONFLICT DO NOTHING upsert
	// followed by a re-read.
	GetOrCreateByEmail(ctx context.Context, email, name string) (*model.User, error)
	GetOrCreateBusiness(ctx context.Context, userID uuid.UUID, name string) (*model.Business, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) GetOrCreateByEmail(ctx context.Context, email, name string) (*model.User, error) {
	user := model.User{Email: email, Name: name}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&user).Error
	if err != nil {
		// Fall through to the re-read; a transient upsert failure may still
		// mean the row exists.
		var existing model.User
		if findErr := r.db.WithContext(ctx).First(&existing, "email = ?", email).Error; findErr == nil {
			return &existing, nil
		}
		return nil, err
	}

	// DoNothing leaves the struct zero-valued when the row already existed.
	var existing model.User
	if err := r.db.WithContext(ctx).First(&existing, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *userRepo) GetOrCreateBusiness(ctx context.Context, userID uuid.UUID, name string) (*model.Business, error) {
	var business model.Business
	err := r.db.WithContext(ctx).First(&business, "user_id = ?", userID).Error
	if err == nil {
		return &business, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	business = model.Business{Name: name, UserID: userID}
	if err := r.db.WithContext(ctx).Create(&business).Error; err != nil {
		// Concurrent creation race: another request won, re-read.
		var existing model.Business
		if findErr := r.db.WithContext(ctx).First(&existing, "user_id = ?", userID).Error; findErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &business, nil
}
