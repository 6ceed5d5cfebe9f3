package engine

// CostInput represents the per-unit cost components of a product.
type CostInput struct {
	ProductionCost float64
	LaborCost      float64
	OverheadCost   float64
	WasteFactor    float64 // persen, 5 berarti 5%
	UnitProduction int
}

// ComputeHPP derives the unit production cost (harga pokok penjualan):
//
//	hpp = ((production + labor + overhead) * (1 + wasteFactor/100)) / unitProduction
//
// Negative components are clamped to zero so the function stays total; the API
// boundary rejects them before they get here. UnitProduction < 1 is treated
// as 1 to avoid division by zero.
func ComputeHPP(in CostInput) float64 {
	totalCost := clampNonNegative(in.ProductionCost) +
		clampNonNegative(in.LaborCost) +
		clampNonNegative(in.OverheadCost)
	wasteMultiplier := 1 + clampNonNegative(in.WasteFactor)/100

	units := in.UnitProduction
	if units < 1 {
		units = 1
	}

	return (totalCost * wasteMultiplier) / float64(units)
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
