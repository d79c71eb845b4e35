package analysis

import (
	"github.com/cafemetrics/backend-go/internal/domain"
)

// SimulatePriceChange reprices every row named productName, rebuilds a fresh
// analyzer over the modified copy with the same fixed costs, and compares
// profitability. The receiver is never mutated; its queries return identical
// results before and after any number of simulations.
//
// Returns NotFoundError when no row matches. An empty catalog returns the
// zero result without error.
func (a *Analyzer) SimulatePriceChange(productName string, newPrice float64) (domain.PriceSimResult, error) {
	if newPrice < 0 {
		return domain.PriceSimResult{}, invalidInput("new_price", "must not be negative, got %v", newPrice)
	}
	if len(a.products) == 0 {
		return domain.PriceSimResult{}, nil
	}

	matches := a.indexesByName(productName)
	if len(matches) == 0 {
		return domain.PriceSimResult{}, &NotFoundError{Name: productName}
	}

	modified := a.Products()
	for _, i := range matches {
		modified[i].Price = newPrice
	}
	sim, err := New(modified, a.fixedCosts)
	if err != nil {
		return domain.PriceSimResult{}, err
	}

	current := a.CVPAnalysis()
	next := sim.CVPAnalysis()

	return domain.PriceSimResult{
		CurrentProfit:            current.NetProfit,
		NewProfit:                next.NetProfit,
		ProfitChange:             next.NetProfit - current.NetProfit,
		CurrentContributionRatio: current.ContributionMarginRatio,
		NewContributionRatio:     next.ContributionMarginRatio,
	}, nil
}
