// Package analysis implements the cost-volume-profit engine for a product
// catalog: contribution margins, break-even and safety margins, operating
// leverage, product-mix ranking, combo viability and price what-ifs.
//
// An Analyzer is immutable after construction. Simulations never touch the
// instance they are called on; they build a fresh Analyzer over a modified
// copy of the catalog, so concurrent reads against one instance are safe.
package analysis

import (
	"github.com/cafemetrics/backend-go/internal/domain"
)

// Analyzer owns an immutable snapshot of the product catalog, its derived
// per-product metrics and a single fixed-cost figure.
type Analyzer struct {
	products   []domain.Product
	metrics    []domain.ProductMetrics
	fixedCosts float64
}

// New validates the catalog and derives all per-product metrics once. An
// empty catalog is valid: every query on the resulting analyzer returns its
// explicit empty/zero result rather than an error.
func New(products []domain.Product, fixedCosts float64) (*Analyzer, error) {
	if fixedCosts < 0 {
		return nil, invalidInput("fixed_costs", "must not be negative, got %v", fixedCosts)
	}
	for i, p := range products {
		switch {
		case p.Price < 0:
			return nil, invalidInput("price", "product %q (row %d): must not be negative, got %v", p.Name, i, p.Price)
		case p.Cost < 0:
			return nil, invalidInput("cost", "product %q (row %d): must not be negative, got %v", p.Name, i, p.Cost)
		case p.Quantity < 0:
			return nil, invalidInput("quantity", "product %q (row %d): must not be negative, got %v", p.Name, i, p.Quantity)
		}
	}

	a := &Analyzer{
		products:   make([]domain.Product, len(products)),
		metrics:    make([]domain.ProductMetrics, len(products)),
		fixedCosts: fixedCosts,
	}
	copy(a.products, products)
	for i, p := range a.products {
		a.metrics[i] = deriveMetrics(p)
	}
	return a, nil
}

func deriveMetrics(p domain.Product) domain.ProductMetrics {
	m := domain.ProductMetrics{
		ContributionMargin: p.Price - p.Cost,
		TotalRevenue:       p.Price * float64(p.Quantity),
		TotalVariableCost:  p.Cost * float64(p.Quantity),
	}
	// Percent margin of a free product is defined as 0, not an error.
	if p.Price != 0 {
		m.ContributionMarginPercent = m.ContributionMargin / p.Price * 100
	}
	m.TotalContribution = m.ContributionMargin * float64(p.Quantity)
	return m
}

// FixedCosts returns the fixed-cost figure the analyzer was built with.
func (a *Analyzer) FixedCosts() float64 { return a.fixedCosts }

// Len returns the number of catalog rows.
func (a *Analyzer) Len() int { return len(a.products) }

// Products returns a copy of the catalog in input order.
func (a *Analyzer) Products() []domain.Product {
	out := make([]domain.Product, len(a.products))
	copy(out, a.products)
	return out
}

func (a *Analyzer) totals() (qty int, revenue, variableCost, contribution float64) {
	for i := range a.products {
		qty += a.products[i].Quantity
		revenue += a.metrics[i].TotalRevenue
		variableCost += a.metrics[i].TotalVariableCost
		contribution += a.metrics[i].TotalContribution
	}
	return qty, revenue, variableCost, contribution
}

// indexesByName returns the positions of every row whose name matches.
// Names are not required unique; all matching rows participate.
func (a *Analyzer) indexesByName(name string) []int {
	var idx []int
	for i := range a.products {
		if a.products[i].Name == name {
			idx = append(idx, i)
		}
	}
	return idx
}
