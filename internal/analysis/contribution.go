package analysis

import (
	"sort"

	"github.com/cafemetrics/backend-go/internal/domain"
)

// ContributionAnalysis returns the per-product contribution table in input
// order: base record, derived metrics, rank by percent margin (best margin is
// rank 1, ties keep input order) and each product's share of total revenue
// and total contribution. Empty catalog yields an empty slice.
func (a *Analyzer) ContributionAnalysis() []domain.ProductAnalysis {
	if len(a.products) == 0 {
		return []domain.ProductAnalysis{}
	}

	_, totalRevenue, _, totalContribution := a.totals()

	rows := make([]domain.ProductAnalysis, len(a.products))
	for i := range a.products {
		rows[i] = domain.ProductAnalysis{
			Product:        a.products[i],
			ProductMetrics: a.metrics[i],
		}
		if totalRevenue != 0 {
			rows[i].RevenueParticipation = a.metrics[i].TotalRevenue / totalRevenue * 100
		}
		if totalContribution != 0 {
			rows[i].ContributionParticipation = a.metrics[i].TotalContribution / totalContribution * 100
		}
	}

	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return rows[order[x]].ContributionMarginPercent > rows[order[y]].ContributionMarginPercent
	})
	for rank, i := range order {
		rows[i].ContributionRank = rank + 1
	}

	return rows
}
