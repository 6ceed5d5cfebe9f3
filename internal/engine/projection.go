package engine

import "go-hpp-dashboard/internal/apperr"

// Defaults for the projection when the caller does not supply them.
const (
	DefaultFixedCosts        = 5_000_000
	DefaultInitialInvestment = 50_000_000
)

// ProjectionInput are the knobs of the 12-month business projection.
type ProjectionInput struct {
	HPP               float64
	Price             float64
	DailyVolume       float64
	Season            string // "peak", "normal", "off-peak"
	FixedCosts        float64
	InitialInvestment float64
}

// MonthPoint is one month of the projection series.
type MonthPoint struct {
	Month     string  `json:"month"`
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
	Costs     float64 `json:"costs"`
	BreakEven float64 `json:"break_even"`
}

// Scenario is one row of the sensitivity table.
type Scenario struct {
	Scenario string  `json:"scenario"`
	Revenue  float64 `json:"revenue"`
	Profit   float64 `json:"profit"`
	Margin   float64 `json:"margin"`
}

// ProjectionSummary are the headline monthly figures.
type ProjectionSummary struct {
	MonthlyVolume      float64 `json:"monthly_volume"`
	MonthlyRevenue     float64 `json:"monthly_revenue"`
	MonthlyProfit      float64 `json:"monthly_profit"`
	ContributionMargin float64 `json:"contribution_margin"`
	BreakEvenUnits     float64 `json:"break_even_units"`
	BreakEvenPoint     float64 `json:"break_even_point"` // revenue at break-even
	ROI                float64 `json:"roi"`
	CashFlow           float64 `json:"cash_flow"`
}

// ProjectionResult bundles summary, monthly series, and sensitivity table.
type ProjectionResult struct {
	Summary     ProjectionSummary `json:"summary"`
	Monthly     []MonthPoint      `json:"monthly"`
	Sensitivity []Scenario        `json:"sensitivity"`
}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// SeasonMultiplier maps a season tag to its volume multiplier. Unrecognized
// tags default to 1.0.
func SeasonMultiplier(season string) float64 {
	switch season {
	case "peak":
		return 1.5
	case "off-peak":
		return 0.7
	default:
		return 1.0
	}
}

// seasonalFactor is the per-calendar-month adjustment (0-based, Jan=0):
// high season Nov-Feb, low season Jun-Aug.
func seasonalFactor(month int) float64 {
	switch {
	case month >= 10 || month <= 1:
		return 1.2
	case month >= 5 && month <= 7:
		return 0.8
	default:
		return 1.0
	}
}

// Project computes the 12-month revenue/cost/profit projection, break-even
// point, ROI, cash flow, and a 4-scenario sensitivity table.
//
// The break-even revenue is intentionally repeated unchanged across all 12
// monthly points; it is a monthly reference line, not a month-varying series.
func Project(in ProjectionInput) (*ProjectionResult, error) {
	if in.FixedCosts <= 0 {
		in.FixedCosts = DefaultFixedCosts
	}
	if in.InitialInvestment <= 0 {
		in.InitialInvestment = DefaultInitialInvestment
	}

	contributionMargin := in.Price - in.HPP
	if contributionMargin <= 0 {
		return nil, apperr.Invalid("price must exceed unit cost to break even")
	}

	monthlyVolume := in.DailyVolume * 30 * SeasonMultiplier(in.Season)
	monthlyRevenue := monthlyVolume * in.Price
	monthlyCosts := monthlyVolume * in.HPP
	monthlyProfit := monthlyRevenue - monthlyCosts

	breakEvenUnits := in.FixedCosts / contributionMargin
	breakEvenRevenue := breakEvenUnits * in.Price

	roi := (monthlyProfit * 12 / in.InitialInvestment) * 100
	cashFlow := monthlyProfit - in.FixedCosts/12

	monthly := make([]MonthPoint, 0, 12)
	for i := 0; i < 12; i++ {
		adjustedVolume := monthlyVolume * seasonalFactor(i)
		monthly = append(monthly, MonthPoint{
			Month:     monthNames[i],
			Revenue:   adjustedVolume * in.Price,
			Profit:    adjustedVolume*contributionMargin - in.FixedCosts,
			Costs:     adjustedVolume*in.HPP + in.FixedCosts,
			BreakEven: breakEvenRevenue,
		})
	}

	sensitivity := []Scenario{
		scenario("Best Case (+20% Volume)", monthlyRevenue*1.2, monthlyProfit*1.2),
		scenario("Base Case", monthlyRevenue, monthlyProfit),
		scenario("Worst Case (-20% Volume)", monthlyRevenue*0.8, monthlyProfit*0.8),
		scenario("Costs +10%", monthlyRevenue, monthlyProfit-monthlyCosts*0.1),
	}

	return &ProjectionResult{
		Summary: ProjectionSummary{
			MonthlyVolume:      monthlyVolume,
			MonthlyRevenue:     monthlyRevenue,
			MonthlyProfit:      monthlyProfit,
			ContributionMargin: contributionMargin,
			BreakEvenUnits:     breakEvenUnits,
			BreakEvenPoint:     breakEvenRevenue,
			ROI:                roi,
			CashFlow:           cashFlow,
		},
		Monthly:     monthly,
		Sensitivity: sensitivity,
	}, nil
}

func scenario(name string, revenue, profit float64) Scenario {
	margin := 0.0
	if revenue != 0 {
		margin = profit / revenue * 100
	}
	return Scenario{Scenario: name, Revenue: revenue, Profit: profit, Margin: margin}
}
