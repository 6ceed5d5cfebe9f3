package service

import (
	"context"

	"go-hpp-dashboard/internal/model"
	"go-hpp-dashboard/internal/repository"
)

// Tenant is the resolved demo user plus its business, threaded explicitly
// through every operation instead of living in a package-level global.
type Tenant struct {
	User     *model.User
	Business *model.Business
}

type TenantService interface {
	// Resolve get-or-creates the demo user and business. Idempotent and safe
	// under concurrent first-time access.
	Resolve(ctx context.Context) (*Tenant, error)
}

type tenantService struct {
	userRepo     repository.UserRepository
	email        string
	name         string
	businessName string
}

func NewTenantService(userRepo repository.UserRepository, email, name, businessName string) TenantService {
	return &tenantService{
		userRepo:     userRepo,
		email:        email,
		name:         name,
		businessName: businessName,
	}
}

func (s *tenantService) Resolve(ctx context.Context) (*Tenant, error) {
	user, err := s.userRepo.GetOrCreateByEmail(ctx, s.email, s.name)
	if err != nil {
		return nil, err
	}
	business, err := s.userRepo.GetOrCreateBusiness(ctx, user.ID, s.businessName)
	if err != nil {
		return nil, err
	}
	return &Tenant{User: user, Business: business}, nil
}
