package analysis_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cafemetrics/backend-go/internal/analysis"
	"github.com/cafemetrics/backend-go/internal/domain"
)

func comboCatalog() []domain.Product {
	return []domain.Product{
		{Name: "Coffee", Price: 12, Cost: 6, Quantity: 100},
		{Name: "Cake", Price: 8, Cost: 4, Quantity: 80},
		{Name: "Water", Price: 2, Cost: 1, Quantity: 50},
	}
}

func TestComboAnalysis_NoDiscount(t *testing.T) {
	a := mustAnalyzer(t, comboCatalog(), 500)

	combo, err := a.ComboAnalysis([]string{"Coffee", "Cake"}, 0)
	if err != nil {
		t.Fatalf("ComboAnalysis: %v", err)
	}
	if !almostEqual(combo.OriginalPrice, 20) {
		t.Errorf("original price = %v, want 20", combo.OriginalPrice)
	}
	if !almostEqual(combo.DiscountedPrice, 20) {
		t.Errorf("discounted price = %v, want 20", combo.DiscountedPrice)
	}
	if !almostEqual(combo.TotalCost, 10) {
		t.Errorf("total cost = %v, want 10", combo.TotalCost)
	}
	if !almostEqual(combo.ComboMarginPercent, 50) {
		t.Errorf("combo margin percent = %v, want 50", combo.ComboMarginPercent)
	}
	if combo.Viability != domain.ViabilityViable {
		t.Errorf("viability = %q, want %q", combo.Viability, domain.ViabilityViable)
	}
	// Both products sit at 50% individually, so the bundle changes nothing.
	if !almostEqual(combo.MarginImpact, 0) {
		t.Errorf("margin impact = %v, want 0", combo.MarginImpact)
	}
}

func TestComboAnalysis_DiscountShrinksMargin(t *testing.T) {
	a := mustAnalyzer(t, comboCatalog(), 500)

	combo, err := a.ComboAnalysis([]string{"Coffee", "Cake"}, 25)
	if err != nil {
		t.Fatalf("ComboAnalysis: %v", err)
	}
	if !almostEqual(combo.DiscountedPrice, 15) {
		t.Errorf("discounted price = %v, want 15", combo.DiscountedPrice)
	}
	if !almostEqual(combo.ComboMargin, 5) {
		t.Errorf("combo margin = %v, want 5", combo.ComboMargin)
	}
	if !almostEqual(combo.ComboMarginPercent, 5.0/15.0*100) {
		t.Errorf("combo margin percent = %v", combo.ComboMarginPercent)
	}
	// 33.3% combo margin vs 50% individual: 16.7 points worse.
	if !almostEqual(combo.MarginImpact, 5.0/15.0*100-50) {
		t.Errorf("margin impact = %v", combo.MarginImpact)
	}
}

func TestComboAnalysis_ViabilityThresholds(t *testing.T) {
	// Single product priced 100 with cost tuned to land on each side of the
	// fixed 15% and 5% margin thresholds.
	cases := []struct {
		cost float64
		want string
	}{
		{80, domain.ViabilityViable},         // 20%
		{85, domain.ViabilityReview},         // exactly 15% is not above 15
		{90, domain.ViabilityReview},         // 10%
		{95, domain.ViabilityNotRecommended}, // exactly 5% is not above 5
		{98, domain.ViabilityNotRecommended}, // 2%
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("cost=%v", tc.cost), func(t *testing.T) {
			a := mustAnalyzer(t, []domain.Product{
				{Name: "Solo", Price: 100, Cost: tc.cost, Quantity: 10},
			}, 0)
			combo, err := a.ComboAnalysis([]string{"Solo"}, 0)
			if err != nil {
				t.Fatalf("ComboAnalysis: %v", err)
			}
			if combo.Viability != tc.want {
				t.Errorf("viability at %v%% margin = %q, want %q",
					combo.ComboMarginPercent, combo.Viability, tc.want)
			}
		})
	}
}

func TestComboAnalysis_UnknownNames(t *testing.T) {
	a := mustAnalyzer(t, comboCatalog(), 500)

	_, err := a.ComboAnalysis([]string{"Tea", "Muffin"}, 10)
	var notFound *analysis.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestComboAnalysis_PartialMatchSucceeds(t *testing.T) {
	a := mustAnalyzer(t, comboCatalog(), 500)

	// Unknown names are ignored as long as at least one matches.
	combo, err := a.ComboAnalysis([]string{"Coffee", "Tea"}, 0)
	if err != nil {
		t.Fatalf("ComboAnalysis: %v", err)
	}
	if !almostEqual(combo.OriginalPrice, 12) {
		t.Errorf("original price = %v, want 12 (Coffee only)", combo.OriginalPrice)
	}
}

func TestComboAnalysis_DiscountOutOfRange(t *testing.T) {
	a := mustAnalyzer(t, comboCatalog(), 500)

	for _, discount := range []float64{-1, 101} {
		_, err := a.ComboAnalysis([]string{"Coffee"}, discount)
		var invalid *analysis.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Errorf("discount %v: expected InvalidInputError, got %v", discount, err)
		}
	}
}

func TestComboAnalysis_FullDiscount(t *testing.T) {
	a := mustAnalyzer(t, comboCatalog(), 500)

	// Giving the bundle away: margin percent is defined as 0, not a division
	// error, and the verdict is not recommended.
	combo, err := a.ComboAnalysis([]string{"Coffee", "Cake"}, 100)
	if err != nil {
		t.Fatalf("ComboAnalysis: %v", err)
	}
	if combo.DiscountedPrice != 0 {
		t.Errorf("discounted price = %v, want 0", combo.DiscountedPrice)
	}
	if combo.ComboMarginPercent != 0 {
		t.Errorf("combo margin percent = %v, want 0", combo.ComboMarginPercent)
	}
	if combo.Viability != domain.ViabilityNotRecommended {
		t.Errorf("viability = %q, want %q", combo.Viability, domain.ViabilityNotRecommended)
	}
}
