package analysis

import (
	"math"

	"github.com/cafemetrics/backend-go/internal/domain"
)

// BreakevenAnalysis computes the catalog break-even point and safety margin
// using weighted-average unit economics. When the weighted contribution
// margin is not positive, BreakevenUnits reports 0 and BreakevenReachable is
// false: no volume covers positive fixed costs in that case.
func (a *Analyzer) BreakevenAnalysis() domain.BreakevenResult {
	if len(a.products) == 0 {
		return domain.BreakevenResult{}
	}

	totalQty, totalRevenue, _, totalContribution := a.totals()

	res := domain.BreakevenResult{BreakevenReachable: true}
	if totalQty > 0 {
		res.WeightedAvgContributionMargin = totalContribution / float64(totalQty)
		res.WeightedAvgPrice = totalRevenue / float64(totalQty)
	}

	if res.WeightedAvgContributionMargin > 0 {
		res.BreakevenUnits = a.fixedCosts / res.WeightedAvgContributionMargin
	} else if a.fixedCosts > 0 {
		// Units stay at 0 to match the reported figures downstream consumers
		// expect; the flag carries the "never breaks even" reading.
		res.BreakevenReachable = false
	}
	res.BreakevenRevenue = res.BreakevenUnits * res.WeightedAvgPrice

	res.SafetyMarginUnits = float64(totalQty) - res.BreakevenUnits
	if totalQty > 0 {
		res.SafetyMarginPercent = res.SafetyMarginUnits / float64(totalQty) * 100
	}
	res.SafetyMarginRevenue = totalRevenue - res.BreakevenRevenue

	return res
}

// OperatingLeverage returns total contribution over net profit. A net profit
// of exactly zero yields +Inf: profit is infinitely sensitive to volume at
// the break-even point. Callers must check math.IsInf before formatting.
// Empty catalog yields 0.
func (a *Analyzer) OperatingLeverage() float64 {
	if len(a.products) == 0 {
		return 0
	}
	_, _, _, totalContribution := a.totals()
	netProfit := totalContribution - a.fixedCosts
	if netProfit == 0 {
		return math.Inf(1)
	}
	return totalContribution / netProfit
}

// CVPAnalysis assembles the aggregate cost-volume-profit report: totals,
// profit, cost-structure ratios, operating leverage and the break-even block.
// This is the one result object dashboards and text reports are built from.
func (a *Analyzer) CVPAnalysis() domain.CVPResult {
	if len(a.products) == 0 {
		return domain.CVPResult{}
	}

	_, totalRevenue, totalVariableCost, totalContribution := a.totals()

	res := domain.CVPResult{
		TotalRevenue:      totalRevenue,
		TotalVariableCost: totalVariableCost,
		TotalContribution: totalContribution,
		FixedCosts:        a.fixedCosts,
		NetProfit:         totalContribution - a.fixedCosts,
		Breakeven:         a.BreakevenAnalysis(),
	}
	if totalRevenue > 0 {
		res.ContributionMarginRatio = totalContribution / totalRevenue * 100
		res.VariableCostRatio = totalVariableCost / totalRevenue * 100
	}

	leverage := a.OperatingLeverage()
	if math.IsInf(leverage, 1) {
		res.OperatingLeverageInfinite = true
	} else {
		res.OperatingLeverage = leverage
	}

	return res
}
