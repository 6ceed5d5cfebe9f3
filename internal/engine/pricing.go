package engine

import "math"

// Fixed markup ratios for the three recommendation tiers.
const (
	competitiveMarkup = 1.2
	standardMarkup    = 1.3
	premiumMarkup     = 1.5
)

// TierPrice is one price recommendation with a static confidence score and
// a human-readable rationale.
type TierPrice struct {
	Price      float64 `json:"price"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// TierPrices holds the three recommendation tiers derived from unit cost.
type TierPrices struct {
	Competitive TierPrice `json:"competitive"`
	Standard    TierPrice `json:"standard"`
	Premium     TierPrice `json:"premium"`
}

// PsychologicalPrice rounds to the nearest 1000 rupiah then subtracts 100,
// landing the price just under a round number (e.g. 17640 -> 17900).
func PsychologicalPrice(price float64) float64 {
	return math.Round(price/1000)*1000 - 100
}

// SalePrice is the suggested sale price used for revenue: hpp * (1 + margin).
// Distinct from the recommendation tiers.
func SalePrice(hpp, targetMargin float64) float64 {
	return hpp * (1 + targetMargin)
}

// ComputeTierPrices derives the competitive/standard/premium tiers from unit
// cost. The confidence constants differ between the AI-augmented path and the
// rule-based fallback, but the prices are identical either way: the external
// insight call only decorates, it never changes the numbers.
func ComputeTierPrices(hpp float64, aiAvailable bool) TierPrices {
	if aiAvailable {
		return TierPrices{
			Competitive: TierPrice{
				Price:      PsychologicalPrice(hpp * competitiveMarkup),
				Confidence: 0.85,
				Reasoning:  "Harga kompetitif dengan margin 20%, sesuai untuk penetrasi pasar",
			},
			Standard: TierPrice{
				Price:      PsychologicalPrice(hpp * standardMarkup),
				Confidence: 0.92,
				Reasoning:  "Harga standar dengan margin 30%, seimbang antara profit dan kompetitivitas",
			},
			Premium: TierPrice{
				Price:      PsychologicalPrice(hpp * premiumMarkup),
				Confidence: 0.78,
				Reasoning:  "Harga premium dengan margin 50%, untuk positioning produk high-end",
			},
		}
	}

	return TierPrices{
		Competitive: TierPrice{
			Price:      PsychologicalPrice(hpp * competitiveMarkup),
			Confidence: 0.75,
			Reasoning:  "Harga kompetitif berdasarkan perhitungan HPP + margin 20%",
		},
		Standard: TierPrice{
			Price:      PsychologicalPrice(hpp * standardMarkup),
			Confidence: 0.85,
			Reasoning:  "Harga standar berdasarkan HPP + margin 30%",
		},
		Premium: TierPrice{
			Price:      PsychologicalPrice(hpp * premiumMarkup),
			Confidence: 0.70,
			Reasoning:  "Harga premium berdasarkan HPP + margin 50%",
		},
	}
}
