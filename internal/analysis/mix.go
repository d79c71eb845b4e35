package analysis

import (
	"sort"

	"github.com/cafemetrics/backend-go/internal/domain"
)

const mixListSize = 3

// MixOptimization picks the three best and worst products by percent margin
// and the three largest total contributors. With fewer than three products
// each list carries what exists. Ties keep input order.
func (a *Analyzer) MixOptimization() domain.MixResult {
	if len(a.products) == 0 {
		return domain.MixResult{}
	}

	rows := a.ContributionAnalysis()

	return domain.MixResult{
		HighMargin: topEntries(rows, func(x, y domain.ProductAnalysis) bool {
			return x.ContributionMarginPercent > y.ContributionMarginPercent
		}),
		LowMargin: topEntries(rows, func(x, y domain.ProductAnalysis) bool {
			return x.ContributionMarginPercent < y.ContributionMarginPercent
		}),
		HighContribution: topEntries(rows, func(x, y domain.ProductAnalysis) bool {
			return x.TotalContribution > y.TotalContribution
		}),
	}
}

func topEntries(rows []domain.ProductAnalysis, less func(x, y domain.ProductAnalysis) bool) []domain.MixEntry {
	sorted := make([]domain.ProductAnalysis, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	n := mixListSize
	if len(sorted) < n {
		n = len(sorted)
	}
	entries := make([]domain.MixEntry, 0, n)
	for _, row := range sorted[:n] {
		entries = append(entries, domain.MixEntry{
			Name:                      row.Name,
			ContributionMarginPercent: row.ContributionMarginPercent,
			TotalContribution:         row.TotalContribution,
		})
	}
	return entries
}
