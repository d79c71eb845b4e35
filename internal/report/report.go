// Package report renders the plain-text management report offered for
// download by the dashboard and printed by the CLI.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/cafemetrics/backend-go/internal/domain"
)

const divider = "============================================================"

// Generate renders the full analysis report. The three inputs must come from
// the same analyzer snapshot so the figures agree with each other.
func Generate(cvp domain.CVPResult, rows []domain.ProductAnalysis, mix domain.MixResult, generatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "FINANCIAL ANALYSIS REPORT - COFFEE SHOP\n")
	fmt.Fprintf(&b, "Date: %s\n", generatedAt.Format("02/01/2006 15:04"))
	fmt.Fprintln(&b, divider)

	fmt.Fprintf(&b, "\nEXECUTIVE SUMMARY\n%s\n", divider)
	fmt.Fprintf(&b, "- Total revenue: %.2f\n", cvp.TotalRevenue)
	fmt.Fprintf(&b, "- Total variable cost: %.2f\n", cvp.TotalVariableCost)
	fmt.Fprintf(&b, "- Total contribution margin: %.2f\n", cvp.TotalContribution)
	fmt.Fprintf(&b, "- Fixed costs: %.2f\n", cvp.FixedCosts)
	fmt.Fprintf(&b, "- Net profit: %.2f\n", cvp.NetProfit)
	fmt.Fprintf(&b, "- Contribution margin ratio: %.1f%%\n", cvp.ContributionMarginRatio)

	fmt.Fprintf(&b, "\nPER-PRODUCT ANALYSIS\n%s\n", divider)
	for _, row := range rows {
		fmt.Fprintf(&b, "\n%s:\n", row.Name)
		fmt.Fprintf(&b, "  - Price: %.2f\n", row.Price)
		fmt.Fprintf(&b, "  - Variable cost: %.2f\n", row.Cost)
		fmt.Fprintf(&b, "  - Contribution margin: %.2f (%.1f%%)\n", row.ContributionMargin, row.ContributionMarginPercent)
		fmt.Fprintf(&b, "  - Units sold: %d\n", row.Quantity)
		fmt.Fprintf(&b, "  - Total contribution: %.2f\n", row.TotalContribution)
		fmt.Fprintf(&b, "  - Revenue share: %.1f%%\n", row.RevenueParticipation)
		fmt.Fprintf(&b, "  - Contribution share: %.1f%%\n", row.ContributionParticipation)
	}

	fmt.Fprintf(&b, "\nCOST-VOLUME-PROFIT ANALYSIS\n%s\n", divider)
	fmt.Fprintf(&b, "- Break-even point (units): %.0f\n", cvp.Breakeven.BreakevenUnits)
	fmt.Fprintf(&b, "- Break-even point (revenue): %.2f\n", cvp.Breakeven.BreakevenRevenue)
	if !cvp.Breakeven.BreakevenReachable {
		fmt.Fprintf(&b, "- WARNING: contribution margin does not cover fixed costs; break-even is unreachable at any volume\n")
	}
	fmt.Fprintf(&b, "- Safety margin (units): %.0f\n", cvp.Breakeven.SafetyMarginUnits)
	fmt.Fprintf(&b, "- Safety margin: %.1f%%\n", cvp.Breakeven.SafetyMarginPercent)
	fmt.Fprintf(&b, "- Operating leverage: %s\n", formatLeverage(cvp))
	fmt.Fprintf(&b, "- Contribution margin ratio: %.1f%%\n", cvp.ContributionMarginRatio)

	fmt.Fprintf(&b, "\nSTRATEGIC RECOMMENDATIONS\n%s\n", divider)
	fmt.Fprintf(&b, "\nHIGHEST-MARGIN PRODUCTS:\n")
	for _, p := range mix.HighMargin {
		fmt.Fprintf(&b, "- %s: %.1f%% margin\n", p.Name, p.ContributionMarginPercent)
	}
	fmt.Fprintf(&b, "\nLOWEST-MARGIN PRODUCTS:\n")
	for _, p := range mix.LowMargin {
		fmt.Fprintf(&b, "- %s: %.1f%% margin\n", p.Name, p.ContributionMarginPercent)
	}
	fmt.Fprintf(&b, "\nTOP CONTRIBUTORS:\n")
	for _, p := range mix.HighContribution {
		fmt.Fprintf(&b, "- %s: %.2f\n", p.Name, p.TotalContribution)
	}

	fmt.Fprintf(&b, "\nCONCLUSIONS AND NEXT STEPS\n%s\n", divider)
	fmt.Fprintf(&b, "1. Push the highest-margin products to lift profitability\n")
	fmt.Fprintf(&b, "2. Review prices or costs of the lowest-margin products\n")
	fmt.Fprintf(&b, "3. Consider strategic combos\n")
	fmt.Fprintf(&b, "4. Track the break-even point regularly\n")
	fmt.Fprintf(&b, "5. Look for volume growth in the most profitable products\n")
	fmt.Fprintf(&b, "\nReport generated by the pricing and profitability analysis service\n")

	return b.String()
}

// Leverage at exactly break-even is unbounded; the report prints the
// infinity symbol the dashboard shows instead of a number.
func formatLeverage(cvp domain.CVPResult) string {
	if cvp.OperatingLeverageInfinite {
		return "∞"
	}
	return fmt.Sprintf("%.2f", cvp.OperatingLeverage)
}
