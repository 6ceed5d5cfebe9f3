package service

import (
	"context"
	"time"

	"go-hpp-dashboard/internal/engine"
	"go-hpp-dashboard/internal/model"
	"go-hpp-dashboard/internal/repository"

	"github.com/google/uuid"
)

const analyticsWindowDays = 30

// DashboardStats are the headline numbers on the landing page.
type DashboardStats struct {
	TotalProducts  int     `json:"total_products"`
	AvgHPP         float64 `json:"avg_hpp"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
	AvgMargin      float64 `json:"avg_margin"` // fraksi, 0.3 = 30%
}

// RecentProduct is a compact dashboard row for the latest products.
type RecentProduct struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	HPP          float64   `json:"hpp"`
	SalePrice    float64   `json:"sale_price"`
	CurrentStock int       `json:"current_stock"`
	ReorderAlert bool      `json:"reorder_alert"`
}

type DashboardService interface {
	GetStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error)
	GetRecentProducts(ctx context.Context, userID uuid.UUID, limit int) ([]RecentProduct, error)
	GetAnalytics(ctx context.Context, userID uuid.UUID) (*engine.AnalyticsResult, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

func NewDashboardService(pRepo repository.ProductRepository, sRepo repository.SaleRepository) DashboardService {
	return &dashboardService{productRepo: pRepo, saleRepo: sRepo}
}

func (s *dashboardService) GetStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	products, err := s.productRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{TotalProducts: len(products)}
	if len(products) > 0 {
		var totalHPP, totalMargin float64
		for _, p := range products {
			totalHPP += p.HPP
			totalMargin += p.TargetMargin
		}
		stats.AvgHPP = totalHPP / float64(len(products))
		stats.AvgMargin = totalMargin / float64(len(products))
	}

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	revenue, err := s.saleRepo.RevenueSince(ctx, userID, startOfMonth)
	if err != nil {
		return nil, err
	}
	stats.MonthlyRevenue = revenue

	return stats, nil
}

func (s *dashboardService) GetRecentProducts(ctx context.Context, userID uuid.UUID, limit int) ([]RecentProduct, error) {
	if limit <= 0 {
		limit = 5
	}
	products, err := s.productRepo.FindRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	recent := make([]RecentProduct, 0, len(products))
	for _, p := range products {
		row := RecentProduct{
			ID:        p.ID,
			Name:      p.Name,
			Category:  p.Category,
			HPP:       p.HPP,
			SalePrice: engine.SalePrice(p.HPP, p.TargetMargin),
		}
		if p.InventoryItem != nil {
			row.CurrentStock = p.InventoryItem.CurrentStock
			row.ReorderAlert = p.InventoryItem.ReorderAlert
		}
		recent = append(recent, row)
	}
	return recent, nil
}

func (s *dashboardService) GetAnalytics(ctx context.Context, userID uuid.UUID) (*engine.AnalyticsResult, error) {
	since := time.Now().AddDate(0, 0, -analyticsWindowDays)
	products, err := s.productRepo.FindAllByUserWithActivity(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	snapshots := make([]engine.ProductSnapshot, 0, len(products))
	for _, p := range products {
		snapshots = append(snapshots, snapshotFromProduct(p))
	}

	result := engine.Analyze(snapshots)
	return &result, nil
}

func snapshotFromProduct(p model.Product) engine.ProductSnapshot {
	snap := engine.ProductSnapshot{
		Name:         p.Name,
		HPP:          p.HPP,
		TargetMargin: p.TargetMargin,
	}
	if p.InventoryItem != nil {
		snap.CurrentStock = p.InventoryItem.CurrentStock
		snap.MinStock = p.InventoryItem.MinStock
	}
	for _, sale := range p.Sales {
		snap.SalesQty += sale.Quantity
		snap.SalesRevenue += sale.TotalPrice
	}
	return snap
}
