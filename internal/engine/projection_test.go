package engine

import (
	"errors"
	"testing"

	"go-hpp-dashboard/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectBaksoScenario(t *testing.T) {
	res, err := Project(ProjectionInput{
		HPP:         14700,
		Price:       19110,
		DailyVolume: 50,
		Season:      "normal",
	})
	require.NoError(t, err)

	s := res.Summary
	assert.InDelta(t, 1500, s.MonthlyVolume, 1e-9)
	assert.InDelta(t, 28_665_000, s.MonthlyRevenue, 1e-6)
	assert.InDelta(t, 6_615_000, s.MonthlyProfit, 1e-6)
	assert.InDelta(t, 4410, s.ContributionMargin, 1e-9)
	assert.InDelta(t, 5_000_000.0/4410, s.BreakEvenUnits, 1e-6)
	assert.InDelta(t, 5_000_000.0/4410*19110, s.BreakEvenPoint, 1e-3)
	assert.InDelta(t, 6_615_000*12.0/50_000_000*100, s.ROI, 1e-9)
	assert.InDelta(t, 6_615_000-5_000_000.0/12, s.CashFlow, 1e-6)
}

func TestProjectSeasonMultipliers(t *testing.T) {
	tests := []struct {
		season string
		want   float64
	}{
		{"peak", 1.5},
		{"normal", 1.0},
		{"off-peak", 0.7},
		{"monsoon", 1.0}, // unrecognized defaults to 1.0
		{"", 1.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeasonMultiplier(tt.season), tt.season)
	}
}

func TestProjectMonthlySeries(t *testing.T) {
	res, err := Project(ProjectionInput{HPP: 10000, Price: 15000, DailyVolume: 10, Season: "normal"})
	require.NoError(t, err)
	require.Len(t, res.Monthly, 12)

	baseVolume := 300.0
	factors := []float64{1.2, 1.2, 1.0, 1.0, 1.0, 0.8, 0.8, 0.8, 1.0, 1.0, 1.2, 1.2}
	for i, point := range res.Monthly {
		adjusted := baseVolume * factors[i]
		assert.InDelta(t, adjusted*15000, point.Revenue, 1e-6, point.Month)
		assert.InDelta(t, adjusted*5000-DefaultFixedCosts, point.Profit, 1e-6, point.Month)
		assert.InDelta(t, adjusted*10000+DefaultFixedCosts, point.Costs, 1e-6, point.Month)
		// Break-even revenue is a constant reference line across the year.
		assert.Equal(t, res.Summary.BreakEvenPoint, point.BreakEven, point.Month)
	}
}

func TestProjectSensitivity(t *testing.T) {
	res, err := Project(ProjectionInput{HPP: 14700, Price: 19110, DailyVolume: 50, Season: "normal"})
	require.NoError(t, err)
	require.Len(t, res.Sensitivity, 4)

	revenue := res.Summary.MonthlyRevenue
	profit := res.Summary.MonthlyProfit
	costs := revenue - profit

	best := res.Sensitivity[0]
	assert.Equal(t, "Best Case (+20% Volume)", best.Scenario)
	assert.InDelta(t, revenue*1.2, best.Revenue, 1e-6)
	assert.InDelta(t, profit*1.2, best.Profit, 1e-6)
	// Scaling volume leaves the margin unchanged.
	assert.InDelta(t, res.Sensitivity[1].Margin, best.Margin, 1e-9)

	worst := res.Sensitivity[2]
	assert.InDelta(t, revenue*0.8, worst.Revenue, 1e-6)

	costly := res.Sensitivity[3]
	assert.Equal(t, "Costs +10%", costly.Scenario)
	assert.InDelta(t, profit-costs*0.1, costly.Profit, 1e-6)
	assert.Less(t, costly.Margin, res.Sensitivity[1].Margin)
}

func TestProjectRejectsNonPositiveContribution(t *testing.T) {
	_, err := Project(ProjectionInput{HPP: 15000, Price: 15000, DailyVolume: 10})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = Project(ProjectionInput{HPP: 20000, Price: 15000, DailyVolume: 10})
	require.Error(t, err)
}

func TestProjectDefaults(t *testing.T) {
	res, err := Project(ProjectionInput{
		HPP: 10000, Price: 15000, DailyVolume: 10,
		FixedCosts: 1_000_000, InitialInvestment: 10_000_000,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1_000_000.0/5000, res.Summary.BreakEvenUnits, 1e-9)

	// Zero-volume revenue keeps the margin guard from dividing by zero.
	zero, err := Project(ProjectionInput{HPP: 10000, Price: 15000, DailyVolume: 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero.Sensitivity[1].Margin)
}
