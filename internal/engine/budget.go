package engine

// BudgetStatus is the outcome of comparing category spend against its ceiling.
type BudgetStatus struct {
	WithinBudget bool    `json:"within_budget"`
	Remaining    float64 `json:"remaining"`
	ExceededBy   float64 `json:"exceeded_by"`
}

// CheckBudget compares existing category usage plus the new spend against the
// ceiling. Budgets are opt-in: a ceiling of 0 (or less) means no budget is set
// and the check always passes with zero remaining.
//
// Usage is production cost exposure (productionCost * unitProduction), not HPP
// or sale price; the caller excludes the product being edited from
// existingUsage.
func CheckBudget(existingUsage, newSpend, ceiling float64) BudgetStatus {
	if ceiling <= 0 {
		return BudgetStatus{WithinBudget: true}
	}

	total := existingUsage + newSpend
	if total > ceiling {
		return BudgetStatus{WithinBudget: false, ExceededBy: total - ceiling}
	}
	return BudgetStatus{WithinBudget: true, Remaining: ceiling - total}
}

// ProductionSpend is the budget exposure of one product.
func ProductionSpend(productionCost float64, unitProduction int) float64 {
	if unitProduction < 1 {
		unitProduction = 1
	}
	return productionCost * float64(unitProduction)
}
