package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPsychologicalPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  float64
	}{
		{17640, 17900}, // rounds up to 18000, minus 100
		{17400, 16900}, // rounds down to 17000, minus 100
		{19110, 18900},
		{1000, 900},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, PsychologicalPrice(tt.price), 1e-9)
	}
}

func TestSalePrice(t *testing.T) {
	assert.InDelta(t, 19110, SalePrice(14700, 0.3), 1e-9)
	assert.InDelta(t, 14700, SalePrice(14700, 0), 1e-9)
}

func TestComputeTierPricesOrdering(t *testing.T) {
	for _, hpp := range []float64{14700, 50000, 123456} {
		tiers := ComputeTierPrices(hpp, true)
		assert.Greater(t, tiers.Premium.Price, tiers.Standard.Price)
		assert.Greater(t, tiers.Standard.Price, tiers.Competitive.Price)
		assert.Greater(t, tiers.Competitive.Price, hpp)
	}
}

func TestComputeTierPricesConfidence(t *testing.T) {
	withAI := ComputeTierPrices(14700, true)
	assert.Equal(t, 0.85, withAI.Competitive.Confidence)
	assert.Equal(t, 0.92, withAI.Standard.Confidence)
	assert.Equal(t, 0.78, withAI.Premium.Confidence)

	fallback := ComputeTierPrices(14700, false)
	assert.Equal(t, 0.75, fallback.Competitive.Confidence)
	assert.Equal(t, 0.85, fallback.Standard.Confidence)
	assert.Equal(t, 0.70, fallback.Premium.Confidence)

	// Prices are identical on both paths; only confidence and wording differ.
	assert.Equal(t, withAI.Standard.Price, fallback.Standard.Price)
	assert.Equal(t, withAI.Premium.Price, fallback.Premium.Price)
	assert.Equal(t, withAI.Competitive.Price, fallback.Competitive.Price)
}

func TestComputeTierPricesValues(t *testing.T) {
	// hpp 14700: 1.2x = 17640 -> 17900, 1.3x = 19110 -> 18900, 1.5x = 22050 -> 21900
	tiers := ComputeTierPrices(14700, true)
	assert.InDelta(t, 17900, tiers.Competitive.Price, 1e-9)
	assert.InDelta(t, 18900, tiers.Standard.Price, 1e-9)
	assert.InDelta(t, 21900, tiers.Premium.Price, 1e-9)
}
