// backend-go/internal/domain/models.go
package domain

// Product is a single catalog row: sale price and variable cost per unit,
// plus units sold in the analysis period. Price and cost are independent;
// a product whose cost exceeds its price is valid (negative margin).
type Product struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Cost     float64 `json:"cost"`
	Quantity int     `json:"quantity"`
}

// ProductMetrics holds the derived per-product columns, computed once at
// analyzer construction.
type ProductMetrics struct {
	ContributionMargin        float64 `json:"contribution_margin"`
	ContributionMarginPercent float64 `json:"contribution_margin_percent"`
	TotalRevenue              float64 `json:"total_revenue"`
	TotalVariableCost         float64 `json:"total_variable_cost"`
	TotalContribution         float64 `json:"total_contribution"`
}

// ProductAnalysis is one row of the contribution margin analysis table.
type ProductAnalysis struct {
	Product
	ProductMetrics
	ContributionRank          int     `json:"contribution_rank"`
	RevenueParticipation      float64 `json:"revenue_participation"`
	ContributionParticipation float64 `json:"contribution_participation"`
}

// BreakevenResult holds the weighted-average break-even and safety margin
// figures for the whole catalog.
type BreakevenResult struct {
	BreakevenUnits                float64 `json:"breakeven_units"`
	BreakevenRevenue              float64 `json:"breakeven_revenue"`
	SafetyMarginUnits             float64 `json:"safety_margin_units"`
	SafetyMarginPercent           float64 `json:"safety_margin_percent"`
	SafetyMarginRevenue           float64 `json:"safety_margin_revenue"`
	WeightedAvgContributionMargin float64 `json:"weighted_avg_contribution_margin"`
	WeightedAvgPrice              float64 `json:"weighted_avg_price"`
	// BreakevenReachable is false when fixed costs are positive but the
	// weighted contribution margin is not, i.e. the catalog can never cover
	// its fixed costs at any volume. The numeric fields above still report 0
	// in that case.
	BreakevenReachable bool `json:"breakeven_reachable"`
}

// CVPResult is the aggregate cost-volume-profit report every dashboard and
// text report is built from.
type CVPResult struct {
	TotalRevenue            float64 `json:"total_revenue"`
	TotalVariableCost       float64 `json:"total_variable_cost"`
	TotalContribution       float64 `json:"total_contribution"`
	FixedCosts              float64 `json:"fixed_costs"`
	NetProfit               float64 `json:"net_profit"`
	ContributionMarginRatio float64 `json:"contribution_margin_ratio"`
	VariableCostRatio       float64 `json:"variable_cost_ratio"`
	// OperatingLeverage is meaningless when OperatingLeverageInfinite is set;
	// JSON cannot carry +Inf so the flag travels alongside a zero value.
	OperatingLeverage         float64         `json:"operating_leverage"`
	OperatingLeverageInfinite bool            `json:"operating_leverage_infinite"`
	Breakeven                 BreakevenResult `json:"breakeven"`
}

// MixEntry is one product in a mix-optimization list.
type MixEntry struct {
	Name                      string  `json:"name"`
	ContributionMarginPercent float64 `json:"contribution_margin_percent"`
	TotalContribution         float64 `json:"total_contribution"`
}

// MixResult holds the product-mix optimization lists. Each list has at most
// three entries; with fewer than three products it carries what exists.
type MixResult struct {
	HighMargin       []MixEntry `json:"high_margin_products"`
	LowMargin        []MixEntry `json:"low_margin_products"`
	HighContribution []MixEntry `json:"high_contribution_products"`
}

// Combo viability verdicts. Thresholds are fixed policy: a combo margin above
// 15% is viable, above 5% needs review, anything else is not recommended.
const (
	ViabilityViable         = "Viable"
	ViabilityReview         = "Review"
	ViabilityNotRecommended = "NotRecommended"
)

// ComboResult is the bundle viability analysis. MarginImpact is a
// percentage-point delta against the mean individual margin, not a currency
// amount (the currency variant is PortfolioComboResult).
type ComboResult struct {
	Products                   []string `json:"products"`
	OriginalPrice              float64  `json:"original_price"`
	DiscountedPrice            float64  `json:"discounted_price"`
	TotalCost                  float64  `json:"total_cost"`
	ComboMargin                float64  `json:"combo_margin"`
	ComboMarginPercent         float64  `json:"combo_margin_percent"`
	AvgIndividualMarginPercent float64  `json:"avg_individual_margin_percent"`
	MarginImpact               float64  `json:"margin_impact"`
	DiscountApplied            float64  `json:"discount_applied"`
	Viability                  string   `json:"viability"`
}

// PortfolioComboResult is the dashboard-layer combo variant: it estimates
// combo sell-through volume and reports the currency impact on total catalog
// contribution. Kept apart from ComboResult on purpose.
type PortfolioComboResult struct {
	Products               []string `json:"products"`
	OriginalPrice          float64  `json:"original_price"`
	DiscountedPrice        float64  `json:"discounted_price"`
	TotalCost              float64  `json:"total_cost"`
	ComboMargin            float64  `json:"combo_margin"`
	ComboMarginPercent     float64  `json:"combo_margin_percent"`
	EstimatedQuantity      int      `json:"estimated_quantity"`
	IndividualContribution float64  `json:"individual_contribution"`
	ComboContribution      float64  `json:"combo_contribution"`
	ContributionImpact     float64  `json:"contribution_impact"`
	DiscountApplied        float64  `json:"discount_applied"`
	Viability              string   `json:"viability"`
}

// PriceSimResult compares catalog profitability before and after a single
// product's price change.
type PriceSimResult struct {
	CurrentProfit            float64 `json:"current_profit"`
	NewProfit                float64 `json:"new_profit"`
	ProfitChange             float64 `json:"profit_change"`
	CurrentContributionRatio float64 `json:"current_contribution_ratio"`
	NewContributionRatio     float64 `json:"new_contribution_ratio"`
}

// ElasticitySimResult extends the price simulation with a demand response:
// quantity moves by a caller-supplied elasticity constant.
type ElasticitySimResult struct {
	PriceSimResult
	CurrentRevenue        float64 `json:"current_revenue"`
	NewRevenue            float64 `json:"new_revenue"`
	RevenueChange         float64 `json:"revenue_change"`
	PriceChangePercent    float64 `json:"price_change_percent"`
	QuantityChangePercent float64 `json:"quantity_change_percent"`
	NewQuantity           int     `json:"new_quantity"`
}

// PriceScenario is one entry in a batch what-if run.
type PriceScenario struct {
	ProductName string  `json:"product_name"`
	NewPrice    float64 `json:"new_price"`
}

// ScenarioResult pairs a scenario with its outcome. Err is set when the
// scenario itself failed (unknown product, invalid price); other scenarios
// in the batch are unaffected.
type ScenarioResult struct {
	Scenario PriceScenario   `json:"scenario"`
	Result   *PriceSimResult `json:"result,omitempty"`
	Err      string          `json:"error,omitempty"`
}
