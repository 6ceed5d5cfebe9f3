package service

import (
	"context"
	"fmt"

	"go-hpp-dashboard/internal/apperr"
	"go-hpp-dashboard/internal/model"
	"go-hpp-dashboard/internal/repository"
	"go-hpp-dashboard/internal/ws"
	"go-hpp-dashboard/pkg/validator"

	"github.com/google/uuid"
)

const recentSalesLimit = 50

// RecordSaleRequest records one sale against a product's inventory.
type RecordSaleRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type SalesService interface {
	RecordSale(ctx context.Context, tenant *Tenant, req *RecordSaleRequest) (*model.Sale, error)
	ListRecent(ctx context.Context, userID uuid.UUID) ([]model.Sale, error)
}

type salesService struct {
	saleRepo repository.SaleRepository
	wsHub    *ws.Hub
}

func NewSalesService(saleRepo repository.SaleRepository, hub *ws.Hub) SalesService {
	return &salesService{saleRepo: saleRepo, wsHub: hub}
}

func (s *salesService) RecordSale(ctx context.Context, tenant *Tenant, req *RecordSaleRequest) (*model.Sale, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.Invalid("field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	sale, err := s.saleRepo.RecordSale(ctx, req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}

	go s.wsHub.BroadcastEvent("sale_recorded", map[string]interface{}{
		"sale": map[string]interface{}{
			"id":          sale.ID,
			"product_id":  sale.ProductID,
			"quantity":    sale.Quantity,
			"total_price": sale.TotalPrice,
		},
		"message": fmt.Sprintf("Sale of %d units recorded", sale.Quantity),
	})

	return sale, nil
}

func (s *salesService) ListRecent(ctx context.Context, userID uuid.UUID) ([]model.Sale, error) {
	return s.saleRepo.FindRecentByUser(ctx, userID, recentSalesLimit)
}
