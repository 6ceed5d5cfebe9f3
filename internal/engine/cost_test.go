package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeHPP(t *testing.T) {
	tests := []struct {
		name string
		in   CostInput
		want float64
	}{
		{
			name: "bakso scenario",
			in:   CostInput{ProductionCost: 10000, LaborCost: 2000, OverheadCost: 2000, WasteFactor: 5, UnitProduction: 1},
			want: 14700, // (14000 * 1.05) / 1
		},
		{
			name: "divided across batch",
			in:   CostInput{ProductionCost: 20000, WasteFactor: 0, UnitProduction: 4},
			want: 5000,
		},
		{
			name: "all zero components",
			in:   CostInput{UnitProduction: 1},
			want: 0,
		},
		{
			name: "zero unit production treated as one",
			in:   CostInput{ProductionCost: 1000, UnitProduction: 0},
			want: 1000,
		},
		{
			name: "negative components clamped",
			in:   CostInput{ProductionCost: -5000, LaborCost: 2000, WasteFactor: -10, UnitProduction: 1},
			want: 2000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeHPP(tt.in), 1e-9)
		})
	}
}

func TestComputeHPPMonotonicity(t *testing.T) {
	base := CostInput{ProductionCost: 10000, LaborCost: 2000, OverheadCost: 2000, WasteFactor: 5, UnitProduction: 2}
	baseHPP := ComputeHPP(base)

	// Non-decreasing in each cost component.
	for _, bump := range []func(CostInput) CostInput{
		func(c CostInput) CostInput { c.ProductionCost += 500; return c },
		func(c CostInput) CostInput { c.LaborCost += 500; return c },
		func(c CostInput) CostInput { c.OverheadCost += 500; return c },
		func(c CostInput) CostInput { c.WasteFactor += 1; return c },
	} {
		assert.GreaterOrEqual(t, ComputeHPP(bump(base)), baseHPP)
	}

	// Non-increasing in unit production.
	more := base
	more.UnitProduction = 4
	assert.LessOrEqual(t, ComputeHPP(more), baseHPP)
}
