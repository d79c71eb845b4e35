package analysis

import (
	"strings"

	"github.com/cafemetrics/backend-go/internal/domain"
)

// ComboAnalysis evaluates selling the named products as one discounted
// bundle. Prices and costs are summed (one bundle contains one unit of each
// selected product) and the combo's percent margin is compared against the
// mean individual margin; MarginImpact is that percentage-point delta.
//
// Returns NotFoundError when none of the names match a catalog row. An empty
// catalog returns the zero result without error.
func (a *Analyzer) ComboAnalysis(productNames []string, discountPercent float64) (domain.ComboResult, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return domain.ComboResult{}, invalidInput("discount_percent", "must be in [0, 100], got %v", discountPercent)
	}
	if len(a.products) == 0 {
		return domain.ComboResult{}, nil
	}

	wanted := make(map[string]bool, len(productNames))
	for _, name := range productNames {
		wanted[name] = true
	}

	var (
		selected      []int
		originalPrice float64
		totalCost     float64
		marginSum     float64
	)
	for i := range a.products {
		if !wanted[a.products[i].Name] {
			continue
		}
		selected = append(selected, i)
		originalPrice += a.products[i].Price
		totalCost += a.products[i].Cost
		marginSum += a.metrics[i].ContributionMarginPercent
	}
	if len(selected) == 0 {
		return domain.ComboResult{}, &NotFoundError{Name: strings.Join(productNames, ", ")}
	}

	res := domain.ComboResult{
		Products:        productNames,
		OriginalPrice:   originalPrice,
		DiscountedPrice: originalPrice * (1 - discountPercent/100),
		TotalCost:       totalCost,
		DiscountApplied: discountPercent,
	}
	res.ComboMargin = res.DiscountedPrice - res.TotalCost
	if res.DiscountedPrice != 0 {
		res.ComboMarginPercent = res.ComboMargin / res.DiscountedPrice * 100
	}
	res.AvgIndividualMarginPercent = marginSum / float64(len(selected))
	res.MarginImpact = res.ComboMarginPercent - res.AvgIndividualMarginPercent
	res.Viability = comboViability(res.ComboMarginPercent)

	return res, nil
}

func comboViability(marginPercent float64) string {
	switch {
	case marginPercent > 15:
		return domain.ViabilityViable
	case marginPercent > 5:
		return domain.ViabilityReview
	default:
		return domain.ViabilityNotRecommended
	}
}
