package analysis_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/cafemetrics/backend-go/internal/analysis"
	"github.com/cafemetrics/backend-go/internal/domain"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func mustAnalyzer(t *testing.T, products []domain.Product, fixedCosts float64) *analysis.Analyzer {
	t.Helper()
	a, err := analysis.New(products, fixedCosts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

// Coffee-shop catalog used across tests: espresso 4.50/1.20 x300,
// cappuccino 6.00/2.00 x200. Revenue 2550, contribution 1790.
func sampleProducts() []domain.Product {
	return []domain.Product{
		{Name: "Espresso", Price: 4.50, Cost: 1.20, Quantity: 300},
		{Name: "Cappuccino", Price: 6.00, Cost: 2.00, Quantity: 200},
	}
}

func TestNew_DerivesMetrics(t *testing.T) {
	a := mustAnalyzer(t, sampleProducts(), 1000)

	rows := a.ContributionAnalysis()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	espresso := rows[0]
	if !almostEqual(espresso.ContributionMargin, 3.30) {
		t.Errorf("contribution margin = %v, want 3.30", espresso.ContributionMargin)
	}
	if !almostEqual(espresso.ContributionMarginPercent, 3.30/4.50*100) {
		t.Errorf("contribution margin percent = %v", espresso.ContributionMarginPercent)
	}
	if !almostEqual(espresso.TotalRevenue, 1350) {
		t.Errorf("total revenue = %v, want 1350", espresso.TotalRevenue)
	}
	if !almostEqual(espresso.TotalVariableCost, 360) {
		t.Errorf("total variable cost = %v, want 360", espresso.TotalVariableCost)
	}
	if !almostEqual(espresso.TotalContribution, 990) {
		t.Errorf("total contribution = %v, want 990", espresso.TotalContribution)
	}
}

func TestNew_RejectsNegativeInputs(t *testing.T) {
	cases := []struct {
		name       string
		products   []domain.Product
		fixedCosts float64
	}{
		{"negative fixed costs", sampleProducts(), -1},
		{"negative price", []domain.Product{{Name: "X", Price: -1, Cost: 1, Quantity: 1}}, 0},
		{"negative cost", []domain.Product{{Name: "X", Price: 1, Cost: -1, Quantity: 1}}, 0},
		{"negative quantity", []domain.Product{{Name: "X", Price: 1, Cost: 1, Quantity: -1}}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := analysis.New(tc.products, tc.fixedCosts)
			var invalid *analysis.InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidInputError, got %v", err)
			}
		})
	}
}

func TestNew_AllowsNegativeMargin(t *testing.T) {
	// Cost above price is a valid loss-making product, not an input error.
	a := mustAnalyzer(t, []domain.Product{{Name: "Loss leader", Price: 2, Cost: 3, Quantity: 10}}, 0)
	rows := a.ContributionAnalysis()
	if !almostEqual(rows[0].ContributionMargin, -1) {
		t.Errorf("contribution margin = %v, want -1", rows[0].ContributionMargin)
	}
	if !almostEqual(rows[0].TotalContribution, -10) {
		t.Errorf("total contribution = %v, want -10", rows[0].TotalContribution)
	}
}

func TestNew_ZeroPriceGuards(t *testing.T) {
	a := mustAnalyzer(t, []domain.Product{{Name: "Free sample", Price: 0, Cost: 0.5, Quantity: 50}}, 0)
	rows := a.ContributionAnalysis()
	if rows[0].ContributionMarginPercent != 0 {
		t.Errorf("margin percent for zero price = %v, want 0", rows[0].ContributionMarginPercent)
	}
}

func TestEmptyCatalog_AllQueriesReturnEmpty(t *testing.T) {
	a := mustAnalyzer(t, nil, 500)

	if rows := a.ContributionAnalysis(); len(rows) != 0 {
		t.Errorf("contribution analysis: expected empty, got %d rows", len(rows))
	}
	if got := a.BreakevenAnalysis(); got != (domain.BreakevenResult{}) {
		t.Errorf("breakeven analysis: expected zero result, got %+v", got)
	}
	if got := a.OperatingLeverage(); got != 0 {
		t.Errorf("operating leverage = %v, want 0", got)
	}
	if got := a.CVPAnalysis(); got != (domain.CVPResult{}) {
		t.Errorf("cvp analysis: expected zero result, got %+v", got)
	}
	mix := a.MixOptimization()
	if len(mix.HighMargin) != 0 || len(mix.LowMargin) != 0 || len(mix.HighContribution) != 0 {
		t.Errorf("mix optimization: expected empty lists, got %+v", mix)
	}
	if _, err := a.ComboAnalysis([]string{"Espresso"}, 10); err != nil {
		t.Errorf("combo analysis on empty catalog: unexpected error %v", err)
	}
	if _, err := a.SimulatePriceChange("Espresso", 5); err != nil {
		t.Errorf("price simulation on empty catalog: unexpected error %v", err)
	}
}

func TestQueries_Idempotent(t *testing.T) {
	a := mustAnalyzer(t, sampleProducts(), 1000)

	first := a.CVPAnalysis()
	rowsFirst := a.ContributionAnalysis()
	for i := 0; i < 5; i++ {
		if got := a.CVPAnalysis(); got != first {
			t.Fatalf("cvp analysis changed between calls: %+v vs %+v", got, first)
		}
	}
	if rowsAgain := a.ContributionAnalysis(); !reflect.DeepEqual(rowsAgain, rowsFirst) {
		t.Fatalf("contribution analysis changed between calls")
	}
}

func TestSimulation_DoesNotMutateOriginal(t *testing.T) {
	a := mustAnalyzer(t, sampleProducts(), 1000)

	before := a.CVPAnalysis()
	if _, err := a.SimulatePriceChange("Espresso", 9.99); err != nil {
		t.Fatalf("SimulatePriceChange: %v", err)
	}
	if _, err := a.ComboAnalysis([]string{"Espresso", "Cappuccino"}, 10); err != nil {
		t.Fatalf("ComboAnalysis: %v", err)
	}
	after := a.CVPAnalysis()

	if before != after {
		t.Fatalf("analyzer mutated by simulation:\nbefore %+v\nafter  %+v", before, after)
	}
}
