package analysis_test

import (
	"testing"

	"github.com/cafemetrics/backend-go/internal/domain"
)

func mixCatalog() []domain.Product {
	return []domain.Product{
		{Name: "Espresso", Price: 4.50, Cost: 1.20, Quantity: 300},  // 73.3%, 990
		{Name: "Cappuccino", Price: 6.00, Cost: 2.00, Quantity: 200}, // 66.7%, 800
		{Name: "Croissant", Price: 3.00, Cost: 1.80, Quantity: 150},  // 40.0%, 180
		{Name: "Sandwich", Price: 8.00, Cost: 5.60, Quantity: 100},   // 30.0%, 240
		{Name: "Juice", Price: 5.00, Cost: 3.75, Quantity: 80},       // 25.0%, 100
	}
}

func TestMixOptimization_TopAndBottom(t *testing.T) {
	a := mustAnalyzer(t, mixCatalog(), 1000)
	mix := a.MixOptimization()

	wantHigh := []string{"Espresso", "Cappuccino", "Croissant"}
	for i, want := range wantHigh {
		if mix.HighMargin[i].Name != want {
			t.Errorf("high margin[%d] = %s, want %s", i, mix.HighMargin[i].Name, want)
		}
	}

	wantLow := []string{"Juice", "Sandwich", "Croissant"}
	for i, want := range wantLow {
		if mix.LowMargin[i].Name != want {
			t.Errorf("low margin[%d] = %s, want %s", i, mix.LowMargin[i].Name, want)
		}
	}

	wantContribution := []string{"Espresso", "Cappuccino", "Sandwich"}
	for i, want := range wantContribution {
		if mix.HighContribution[i].Name != want {
			t.Errorf("high contribution[%d] = %s, want %s", i, mix.HighContribution[i].Name, want)
		}
	}
}

func TestMixOptimization_FewerThanThreeProducts(t *testing.T) {
	a := mustAnalyzer(t, sampleProducts(), 1000)
	mix := a.MixOptimization()

	if len(mix.HighMargin) != 2 || len(mix.LowMargin) != 2 || len(mix.HighContribution) != 2 {
		t.Errorf("expected 2 entries per list, got %d/%d/%d",
			len(mix.HighMargin), len(mix.LowMargin), len(mix.HighContribution))
	}
}

func TestMixOptimization_EntriesCarryMetrics(t *testing.T) {
	a := mustAnalyzer(t, mixCatalog(), 1000)
	top := a.MixOptimization().HighMargin[0]

	if !almostEqual(top.ContributionMarginPercent, 3.30/4.50*100) {
		t.Errorf("top margin percent = %v", top.ContributionMarginPercent)
	}
	if !almostEqual(top.TotalContribution, 990) {
		t.Errorf("top total contribution = %v, want 990", top.TotalContribution)
	}
}
