package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go-hpp-dashboard/internal/apperr"
	"go-hpp-dashboard/internal/engine"
	"go-hpp-dashboard/internal/insight"
)

const (
	pricingExpertRole = "You are a pricing expert specializing in Indonesian UMKM businesses. Provide practical pricing recommendations with clear reasoning."
	consultantRole    = "You are a business consultant specializing in UMKM businesses in Indonesia. Provide practical, actionable advice."
	analystRole       = "You are a market research analyst specializing in Indonesian e-commerce and food business. Provide data-driven insights and actionable recommendations."
)

// fallbackProjectionInsights is the canned advice used when the AI call fails.
var fallbackProjectionInsights = []string{
	"Focus on increasing sales volume to improve economies of scale",
	"Monitor and control variable costs to maintain healthy margins",
	"Consider seasonal promotions during peak seasons",
	"Implement inventory management to reduce waste",
}

// OptimizeProductInput is one product in an optimize-prices request.
type OptimizeProductInput struct {
	Name           string  `json:"name" validate:"required"`
	Category       string  `json:"category"`
	ProductionCost float64 `json:"production_cost" validate:"gte=0"`
	LaborCost      float64 `json:"labor_cost" validate:"gte=0"`
	OverheadCost   float64 `json:"overhead_cost" validate:"gte=0"`
	WasteFactor    float64 `json:"waste_factor" validate:"gte=0"`
	UnitProduction int     `json:"unit_production" validate:"gte=0"`
	TargetMargin   float64 `json:"target_margin" validate:"gte=0"`
}

// PriceOptimization is the per-product result.
type PriceOptimization struct {
	ProductName     string            `json:"product_name"`
	HPP             float64           `json:"hpp"`
	Recommendations engine.TierPrices `json:"recommendations"`
	AIInsights      string            `json:"ai_insights"`
}

// ProjectionRequest drives the 12-month business projection.
type ProjectionRequest struct {
	ProductName       string  `json:"product_name" validate:"required"`
	HPP               float64 `json:"hpp" validate:"required,gt=0"`
	CurrentPrice      float64 `json:"current_price" validate:"required,gt=0"`
	TargetProfit      float64 `json:"target_profit"`
	DailyVolume       float64 `json:"daily_volume" validate:"required,gt=0"`
	Season            string  `json:"season"`
	FixedCosts        float64 `json:"fixed_costs" validate:"gte=0"`
	InitialInvestment float64 `json:"initial_investment" validate:"gte=0"`
}

// ProjectionResponse is the projection plus AI (or canned) commentary.
type ProjectionResponse struct {
	Projections engine.ProjectionResult `json:"projections"`
	AIInsights  []string                `json:"ai_insights"`
}

// CompetitorReport is the comprehensive market analysis result.
type CompetitorReport struct {
	Competitors            []engine.Competitor            `json:"competitors"`
	MarketMetrics          engine.MarketMetrics           `json:"market_metrics"`
	MarketInsights         []engine.MarketInsight         `json:"market_insights"`
	PricingRecommendations []engine.PricingRecommendation `json:"pricing_recommendations"`
	Analysis               engine.MarketAnalysis          `json:"analysis"`
}

// CompetitorSimulation is the randomized marketplace snapshot.
type CompetitorSimulation struct {
	Competitors []engine.Competitor    `json:"competitors"`
	Insights    []engine.MarketInsight `json:"insights"`
}

type PricingService interface {
	OptimizePrices(ctx context.Context, products []OptimizeProductInput) ([]PriceOptimization, error)
	BusinessProjection(ctx context.Context, req *ProjectionRequest) (*ProjectionResponse, error)
	CompetitorAnalysis(ctx context.Context, productName, category string) (*CompetitorReport, error)
	SimulateCompetitors(ctx context.Context, productName string, basePrice float64) (*CompetitorSimulation, error)
}

type pricingService struct {
	insights insight.Generator

	mu  sync.Mutex
	rng *rand.Rand
}

func NewPricingService(insights insight.Generator) PricingService {
	if insights == nil {
		insights = insight.Unavailable{}
	}
	return &pricingService{
		insights: insights,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *pricingService) OptimizePrices(ctx context.Context, products []OptimizeProductInput) ([]PriceOptimization, error) {
	if len(products) == 0 {
		return nil, apperr.Invalid("products are required")
	}

	optimizations := make([]PriceOptimization, 0, len(products))
	for _, p := range products {
		hpp := engine.ComputeHPP(engine.CostInput{
			ProductionCost: p.ProductionCost,
			LaborCost:      p.LaborCost,
			OverheadCost:   p.OverheadCost,
			WasteFactor:    p.WasteFactor,
			UnitProduction: p.UnitProduction,
		})

		prompt := fmt.Sprintf(
			"Analyze the following product and provide price optimization recommendations:\n\n"+
				"Product: %s\nCategory: %s\nHPP: Rp %.0f\nTarget Margin: %.0f%%\n"+
				"Production Cost: Rp %.0f\nLabor Cost: Rp %.0f\nOverhead Cost: Rp %.0f\n"+
				"Waste Factor: %.0f%%\nUnit Production: %d\n\n"+
				"Consider market positioning, competitive pricing, psychological pricing, "+
				"target margin requirements, and seasonality.",
			p.Name, p.Category, hpp, p.TargetMargin*100,
			p.ProductionCost, p.LaborCost, p.OverheadCost,
			p.WasteFactor, p.UnitProduction,
		)

		commentary, err := s.insights.GenerateInsights(ctx, pricingExpertRole, prompt)
		aiAvailable := err == nil
		if err != nil {
			// Degrade to rule-based pricing; the numbers stay identical.
			log.Printf("price optimization insights unavailable: %v", err)
			commentary = "Used rule-based pricing calculation"
		} else if commentary == "" {
			commentary = "AI analysis completed successfully"
		}

		optimizations = append(optimizations, PriceOptimization{
			ProductName:     p.Name,
			HPP:             hpp,
			Recommendations: engine.ComputeTierPrices(hpp, aiAvailable),
			AIInsights:      commentary,
		})
	}

	return optimizations, nil
}

func (s *pricingService) BusinessProjection(ctx context.Context, req *ProjectionRequest) (*ProjectionResponse, error) {
	if req.ProductName == "" || req.HPP <= 0 || req.CurrentPrice <= 0 || req.DailyVolume <= 0 {
		return nil, apperr.Invalid("product name, hpp, current price, and daily volume are required")
	}

	result, err := engine.Project(engine.ProjectionInput{
		HPP:               req.HPP,
		Price:             req.CurrentPrice,
		DailyVolume:       req.DailyVolume,
		Season:            req.Season,
		FixedCosts:        req.FixedCosts,
		InitialInvestment: req.InitialInvestment,
	})
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Analyze this business projection and provide actionable insights:\n\n"+
			"Product: %s\nHPP: Rp %.0f\nCurrent Price: Rp %.0f\nTarget Profit: %.0f%%\n"+
			"Daily Volume: %.0f\nSeason: %s\n\n"+
			"Monthly Metrics:\n- Revenue: Rp %.0f\n- Profit: Rp %.0f\n"+
			"- Break Even: Rp %.0f\n- ROI: %.1f%%\n\n"+
			"Provide 3-5 specific recommendations for improving profitability and managing risks.",
		req.ProductName, req.HPP, req.CurrentPrice, req.TargetProfit,
		req.DailyVolume, req.Season,
		result.Summary.MonthlyRevenue, result.Summary.MonthlyProfit,
		result.Summary.BreakEvenPoint, result.Summary.ROI,
	)

	aiInsights := fallbackProjectionInsights
	if text, err := s.insights.GenerateInsights(ctx, consultantRole, prompt); err == nil {
		if lines := nonEmptyLines(text); len(lines) > 0 {
			aiInsights = lines
		}
	} else {
		log.Printf("projection insights unavailable: %v", err)
	}

	return &ProjectionResponse{Projections: *result, AIInsights: aiInsights}, nil
}

func (s *pricingService) CompetitorAnalysis(ctx context.Context, productName, category string) (*CompetitorReport, error) {
	if productName == "" {
		return nil, apperr.Invalid("product name is required")
	}
	if category == "" {
		category = "food"
	}

	now := time.Now()
	competitors := engine.MockCompetitors(now)
	metrics := engine.ComputeMarketMetrics(competitors)

	prompt := fmt.Sprintf(
		"Analyze the competitive landscape for %s in the %s category in Indonesia. "+
			"Average price Rp %.0f, average rating %.1f/5, average discount %.1f%%, %d total reviews. "+
			"Provide insights on market positioning, pricing strategies, competitive advantages, and market trends.",
		productName, category,
		metrics.AveragePrice, metrics.AverageRating, metrics.AverageDiscount, metrics.TotalReviews,
	)

	var (
		marketInsights  []engine.MarketInsight
		recommendations []engine.PricingRecommendation
	)
	if _, err := s.insights.GenerateInsights(ctx, analystRole, prompt); err == nil {
		marketInsights, recommendations = engine.AIMarketInsights()
	} else {
		log.Printf("competitor insights unavailable: %v", err)
		marketInsights, recommendations = engine.FallbackMarketInsights(metrics)
	}

	return &CompetitorReport{
		Competitors:            competitors,
		MarketMetrics:          metrics,
		MarketInsights:         marketInsights,
		PricingRecommendations: recommendations,
		Analysis:               engine.AnalyzeMarket(competitors),
	}, nil
}

func (s *pricingService) SimulateCompetitors(_ context.Context, productName string, basePrice float64) (*CompetitorSimulation, error) {
	if productName == "" {
		return nil, apperr.Invalid("product name is required")
	}
	if basePrice <= 0 {
		basePrice = 50000
	}

	s.mu.Lock()
	competitors := engine.SimulateCompetitors(productName, basePrice, s.rng, time.Now())
	s.mu.Unlock()

	return &CompetitorSimulation{
		Competitors: competitors,
		Insights:    engine.SimulationInsights(productName, basePrice, competitors),
	}, nil
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
