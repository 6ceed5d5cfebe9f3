package engine

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Competitor is one (mocked) marketplace listing. Real competitor sourcing is
// out of scope; data is either a static set or a randomized simulation.
type Competitor struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	ProductName   string       `json:"product_name"`
	Price         float64      `json:"price"`
	OriginalPrice float64      `json:"original_price"`
	Discount      float64      `json:"discount"`
	Rating        float64      `json:"rating"`
	ReviewCount   int          `json:"review_count"`
	SoldCount     int          `json:"sold_count"`
	Sentiment     float64      `json:"sentiment"`
	Source        string       `json:"source"`
	URL           string       `json:"url"`
	LastUpdated   time.Time    `json:"last_updated"`
	PriceHistory  []PricePoint `json:"price_history,omitempty"`
}

// PricePoint is one entry of a competitor's weekly price history.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// MarketMetrics aggregates the competitor set.
type MarketMetrics struct {
	AveragePrice    float64 `json:"average_price"`
	AverageRating   float64 `json:"average_rating"`
	AverageDiscount float64 `json:"average_discount"`
	TotalReviews    int     `json:"total_reviews"`
	CompetitorCount int     `json:"competitor_count"`
}

// MarketInsight is one qualitative finding about the competitive landscape.
type MarketInsight struct {
	Type        string  `json:"type"` // opportunity, threat, trend
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Impact      string  `json:"impact"`
	Confidence  float64 `json:"confidence"`
}

// PricingRecommendation is one suggested market-entry strategy.
type PricingRecommendation struct {
	Strategy       string  `json:"strategy"`
	Description    string  `json:"description"`
	ExpectedMargin string  `json:"expected_margin"`
	Confidence     float64 `json:"confidence"`
}

// PriceRange describes min/max/average competitor prices.
type PriceRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// RatingDistribution buckets competitors by rating.
type RatingDistribution struct {
	Excellent int `json:"excellent"` // >= 4.5
	Good      int `json:"good"`      // 4.0 - 4.5
	Average   int `json:"average"`   // < 4.0
}

// DiscountTrends summarizes competitor discounting behavior.
type DiscountTrends struct {
	OfferingDiscounts int     `json:"offering_discounts"`
	AverageDiscount   float64 `json:"average_discount"`
	MaxDiscount       float64 `json:"max_discount"`
}

// MarketAnalysis is the derived breakdown of the competitor set.
type MarketAnalysis struct {
	PriceRange         PriceRange         `json:"price_range"`
	RatingDistribution RatingDistribution `json:"rating_distribution"`
	DiscountTrends     DiscountTrends     `json:"discount_trends"`
}

// ComputeMarketMetrics aggregates average price/rating/discount and review
// totals over the competitor set.
func ComputeMarketMetrics(competitors []Competitor) MarketMetrics {
	m := MarketMetrics{CompetitorCount: len(competitors)}
	if len(competitors) == 0 {
		return m
	}

	for _, c := range competitors {
		m.AveragePrice += c.Price
		m.AverageRating += c.Rating
		m.AverageDiscount += c.Discount
		m.TotalReviews += c.ReviewCount
	}
	n := float64(len(competitors))
	m.AveragePrice /= n
	m.AverageRating /= n
	m.AverageDiscount /= n
	return m
}

// AnalyzeMarket derives price range, rating distribution, and discount trends.
func AnalyzeMarket(competitors []Competitor) MarketAnalysis {
	a := MarketAnalysis{}
	if len(competitors) == 0 {
		return a
	}

	a.PriceRange.Min = competitors[0].Price
	for _, c := range competitors {
		a.PriceRange.Min = math.Min(a.PriceRange.Min, c.Price)
		a.PriceRange.Max = math.Max(a.PriceRange.Max, c.Price)
		a.PriceRange.Average += c.Price

		switch {
		case c.Rating >= 4.5:
			a.RatingDistribution.Excellent++
		case c.Rating >= 4.0:
			a.RatingDistribution.Good++
		default:
			a.RatingDistribution.Average++
		}

		if c.Discount > 0 {
			a.DiscountTrends.OfferingDiscounts++
		}
		a.DiscountTrends.AverageDiscount += c.Discount
		a.DiscountTrends.MaxDiscount = math.Max(a.DiscountTrends.MaxDiscount, c.Discount)
	}
	n := float64(len(competitors))
	a.PriceRange.Average /= n
	a.DiscountTrends.AverageDiscount /= n
	return a
}

// MockCompetitors is the static competitor set used by the comprehensive
// market analysis (real sourcing is a non-goal).
func MockCompetitors(now time.Time) []Competitor {
	return []Competitor{
		{
			ID: "1", Name: "Pizza Hut", ProductName: "Pan Pizza Large",
			Price: 89000, OriginalPrice: 99000, Discount: 10,
			Rating: 4.2, ReviewCount: 1234, SoldCount: 5678, Sentiment: 0.75,
			Source: "Tokopedia", URL: "https://tokopedia.com/pizza-hut", LastUpdated: now,
		},
		{
			ID: "2", Name: "Domino's Pizza", ProductName: "Classic Hand-Tossed",
			Price: 75000, OriginalPrice: 85000, Discount: 12,
			Rating: 4.5, ReviewCount: 892, SoldCount: 4321, Sentiment: 0.82,
			Source: "Shopee", URL: "https://shopee.com/dominos-pizza", LastUpdated: now,
		},
		{
			ID: "3", Name: "Pizza Marzano", ProductName: "Italian Pizza",
			Price: 120000, OriginalPrice: 120000, Discount: 0,
			Rating: 4.7, ReviewCount: 567, SoldCount: 1234, Sentiment: 0.88,
			Source: "GoFood", URL: "https://gofood.com/pizza-marzano", LastUpdated: now,
		},
	}
}

// SimulateCompetitors builds the 4-competitor marketplace simulation around a
// base price. basePrice <= 0 falls back to 50000. The rng is injected so tests
// stay deterministic.
func SimulateCompetitors(productName string, basePrice float64, rng *rand.Rand, now time.Time) []Competitor {
	if basePrice <= 0 {
		basePrice = 50000
	}

	vary := func(val, percent float64) float64 {
		variation := val * (percent / 100)
		random := (rng.Float64() - 0.5) * 2 // -1 to 1
		return math.Round(val + variation*random)
	}

	history := func(base float64) []PricePoint {
		points := make([]PricePoint, 0, 5)
		for i := 4; i >= 0; i-- {
			date := now.AddDate(0, 0, -i*7)
			points = append(points, PricePoint{
				Date:  date.Format("2006-01-02"),
				Price: math.Round(base * (1 + (rng.Float64()*0.1 - 0.05))),
			})
		}
		return points
	}

	return []Competitor{
		{
			ID: "c1", Name: "Official Store", ProductName: fmt.Sprintf("Premium %s", productName),
			Price: vary(basePrice*1.2, 10), OriginalPrice: vary(basePrice*1.4, 5), Discount: 15,
			Rating: 4.8, ReviewCount: int(vary(500, 20)), SoldCount: int(vary(1200, 15)), Sentiment: 0.92,
			Source: "Tokopedia", URL: "https://tokopedia.com", LastUpdated: now,
			PriceHistory: history(basePrice * 1.2),
		},
		{
			ID: "c2", Name: "Star Seller Shop", ProductName: fmt.Sprintf("%s Murah", productName),
			Price: vary(basePrice*0.9, 10), OriginalPrice: vary(basePrice*1.1, 5), Discount: 25,
			Rating: 4.5, ReviewCount: int(vary(2000, 30)), SoldCount: int(vary(5000, 20)), Sentiment: 0.85,
			Source: "Shopee", URL: "https://shopee.co.id", LastUpdated: now,
			PriceHistory: history(basePrice * 0.9),
		},
		{
			ID: "c3", Name: "Resto Tetangga", ProductName: fmt.Sprintf("%s Spesial", productName),
			Price: vary(basePrice*1.3, 5), OriginalPrice: vary(basePrice*1.3, 0), Discount: 0,
			Rating: 4.6, ReviewCount: int(vary(150, 10)), SoldCount: int(vary(400, 10)), Sentiment: 0.88,
			Source: "GoFood", URL: "https://gofood.co.id", LastUpdated: now,
			PriceHistory: history(basePrice * 1.3),
		},
		{
			ID: "c4", Name: "Warung Viral", ProductName: fmt.Sprintf("Paket %s", productName),
			Price: vary(basePrice*1.1, 8), OriginalPrice: vary(basePrice*1.5, 5), Discount: 30,
			Rating: 4.3, ReviewCount: int(vary(800, 15)), SoldCount: int(vary(2500, 25)), Sentiment: 0.75,
			Source: "GrabFood", URL: "https://grab.com", LastUpdated: now,
			PriceHistory: history(basePrice * 1.1),
		},
	}
}

// SimulationInsights are the rule-based findings attached to the simulation.
func SimulationInsights(productName string, basePrice float64, competitors []Competitor) []MarketInsight {
	position := "competitive"
	if len(competitors) > 1 && basePrice < competitors[1].Price {
		position = "lower"
	}

	return []MarketInsight{
		{
			Type:  "opportunity",
			Title: "Price Competitiveness",
			Description: fmt.Sprintf("Your base price of Rp %.0f is %s compared to market leaders.",
				basePrice, position),
			Impact: "high", Confidence: 0.89,
		},
		{
			Type:  "trend",
			Title: "High Demand",
			Description: fmt.Sprintf("High search volume for %q on marketplaces this week.",
				productName),
			Impact: "medium", Confidence: 0.75,
		},
		{
			Type:        "threat",
			Title:       "Aggressive Discounting",
			Description: "Competitors on Shopee are offering up to 25% discounts.",
			Impact:      "medium", Confidence: 0.82,
		},
	}
}

// FallbackMarketInsights are used when the AI analysis is unavailable.
func FallbackMarketInsights(metrics MarketMetrics) ([]MarketInsight, []PricingRecommendation) {
	insights := []MarketInsight{
		{
			Type:        "opportunity",
			Title:       "Mid-Range Market Opportunity",
			Description: "Average price point suggests room for mid-range positioning",
			Impact:      "medium",
			Confidence:  0.70,
		},
	}
	recommendations := []PricingRecommendation{
		{
			Strategy:       "Market Average Pricing",
			Description:    fmt.Sprintf("Price around market average of Rp %.0f", math.Round(metrics.AveragePrice)),
			ExpectedMargin: "30-35%",
			Confidence:     0.65,
		},
	}
	return insights, recommendations
}

// AIMarketInsights are the structured findings attached when the AI analysis
// succeeds.
func AIMarketInsights() ([]MarketInsight, []PricingRecommendation) {
	insights := []MarketInsight{
		{
			Type:        "opportunity",
			Title:       "Premium Pricing Gap Identified",
			Description: "High-end market segment shows less competition with higher customer satisfaction ratings",
			Impact:      "high",
			Confidence:  0.85,
		},
		{
			Type:        "threat",
			Title:       "Competitive Price Pressure",
			Description: "Major competitors are offering average 11% discounts, indicating price-sensitive market",
			Impact:      "medium",
			Confidence:  0.92,
		},
		{
			Type:        "trend",
			Title:       "Quality Over Price Trend",
			Description: "Higher-rated competitors command premium prices, indicating quality-focused consumer behavior",
			Impact:      "high",
			Confidence:  0.78,
		},
	}
	recommendations := []PricingRecommendation{
		{
			Strategy:       "Value-Based Pricing",
			Description:    "Position between mid-range and premium (Rp 85K-95K) to capture quality-conscious customers",
			ExpectedMargin: "35-45%",
			Confidence:     0.88,
		},
		{
			Strategy:       "Competitive Entry",
			Description:    "Start at Rp 79K with limited-time promotions to gain market share",
			ExpectedMargin: "25-30%",
			Confidence:     0.75,
		},
		{
			Strategy:       "Premium Differentiation",
			Description:    "Target Rp 99K+ with unique features and superior quality to stand out",
			ExpectedMargin: "50-60%",
			Confidence:     0.70,
		},
	}
	return insights, recommendations
}
