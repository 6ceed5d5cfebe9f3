package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckBudget(t *testing.T) {
	tests := []struct {
		name          string
		existing      float64
		newSpend      float64
		ceiling       float64
		wantWithin    bool
		wantRemaining float64
		wantExceeded  float64
	}{
		{
			name:     "food category over budget",
			existing: 3_000_000, newSpend: 2_500_000, ceiling: 5_000_000,
			wantWithin: false, wantExceeded: 500_000,
		},
		{
			name:     "within budget",
			existing: 3_000_000, newSpend: 1_500_000, ceiling: 5_000_000,
			wantWithin: true, wantRemaining: 500_000,
		},
		{
			name:     "exact ceiling is within",
			existing: 3_000_000, newSpend: 2_000_000, ceiling: 5_000_000,
			wantWithin: true, wantRemaining: 0,
		},
		{
			name:     "no ceiling means no budget",
			existing: 9_000_000, newSpend: 9_000_000, ceiling: 0,
			wantWithin: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckBudget(tt.existing, tt.newSpend, tt.ceiling)
			assert.Equal(t, tt.wantWithin, got.WithinBudget)
			assert.InDelta(t, tt.wantRemaining, got.Remaining, 1e-9)
			assert.InDelta(t, tt.wantExceeded, got.ExceededBy, 1e-9)
		})
	}
}

func TestProductionSpend(t *testing.T) {
	assert.Equal(t, 2_500_000.0, ProductionSpend(250_000, 10))
	assert.Equal(t, 250_000.0, ProductionSpend(250_000, 0)) // batch size floors at 1
}
