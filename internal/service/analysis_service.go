package service

import (
	"fmt"
	"strings"

	"github.com/cafemetrics/backend-go/internal/analysis"
	"github.com/cafemetrics/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// AnalysisService is the stateless facade the API and CLI call into. Every
// request carries the full catalog and fixed costs; a fresh analyzer is built
// per call and discarded, so no state survives between requests.
type AnalysisService struct{}

func NewAnalysisService() *AnalysisService {
	return &AnalysisService{}
}

func (s *AnalysisService) analyzer(products []domain.Product, fixedCosts float64) (*analysis.Analyzer, error) {
	a, err := analysis.New(products, fixedCosts)
	if err != nil {
		return nil, fmt.Errorf("building analyzer: %w", err)
	}
	return a, nil
}

func (s *AnalysisService) Contribution(products []domain.Product, fixedCosts float64) ([]domain.ProductAnalysis, error) {
	a, err := s.analyzer(products, fixedCosts)
	if err != nil {
		return nil, err
	}
	return a.ContributionAnalysis(), nil
}

func (s *AnalysisService) Breakeven(products []domain.Product, fixedCosts float64) (domain.BreakevenResult, error) {
	a, err := s.analyzer(products, fixedCosts)
	if err != nil {
		return domain.BreakevenResult{}, err
	}
	return a.BreakevenAnalysis(), nil
}

func (s *AnalysisService) CVP(products []domain.Product, fixedCosts float64) (domain.CVPResult, error) {
	a, err := s.analyzer(products, fixedCosts)
	if err != nil {
		return domain.CVPResult{}, err
	}
	return a.CVPAnalysis(), nil
}

func (s *AnalysisService) Mix(products []domain.Product, fixedCosts float64) (domain.MixResult, error) {
	a, err := s.analyzer(products, fixedCosts)
	if err != nil {
		return domain.MixResult{}, err
	}
	return a.MixOptimization(), nil
}

func (s *AnalysisService) Combo(products []domain.Product, fixedCosts float64, names []string, discountPercent float64) (domain.ComboResult, error) {
	a, err := s.analyzer(products, fixedCosts)
	if err != nil {
		return domain.ComboResult{}, err
	}
	return a.ComboAnalysis(names, discountPercent)
}

func (s *AnalysisService) SimulatePrice(products []domain.Product, fixedCosts float64, name string, newPrice float64) (domain.PriceSimResult, error) {
	a, err := s.analyzer(products, fixedCosts)
	if err != nil {
		return domain.PriceSimResult{}, err
	}
	return a.SimulatePriceChange(name, newPrice)
}

// PortfolioComboImpact is the dashboard combo variant: instead of comparing
// percent margins it estimates combo sell-through (the max quantity among the
// selected products) and reports the currency change in total catalog
// contribution if those rows were replaced by the bundle. Deliberately a
// different result type than the core ComboAnalysis.
func (s *AnalysisService) PortfolioComboImpact(products []domain.Product, fixedCosts float64, names []string, discountPercent float64) (domain.PortfolioComboResult, error) {
	a, err := s.analyzer(products, fixedCosts)
	if err != nil {
		return domain.PortfolioComboResult{}, err
	}
	if a.Len() == 0 {
		return domain.PortfolioComboResult{}, nil
	}

	combo, err := a.ComboAnalysis(names, discountPercent)
	if err != nil {
		return domain.PortfolioComboResult{}, err
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var (
		estQty                 int
		individualContribution float64
	)
	for _, row := range a.ContributionAnalysis() {
		if !wanted[row.Name] {
			continue
		}
		if row.Quantity > estQty {
			estQty = row.Quantity
		}
		individualContribution += row.TotalContribution
	}

	res := domain.PortfolioComboResult{
		Products:               combo.Products,
		OriginalPrice:          combo.OriginalPrice,
		DiscountedPrice:        combo.DiscountedPrice,
		TotalCost:              combo.TotalCost,
		ComboMargin:            combo.ComboMargin,
		ComboMarginPercent:     combo.ComboMarginPercent,
		EstimatedQuantity:      estQty,
		IndividualContribution: individualContribution,
		ComboContribution:      combo.ComboMargin * float64(estQty),
		DiscountApplied:        discountPercent,
	}
	res.ContributionImpact = res.ComboContribution - res.IndividualContribution
	if res.ContributionImpact > 0 {
		res.Viability = domain.ViabilityViable
	} else {
		res.Viability = domain.ViabilityNotRecommended
	}

	log.Debug().
		Str("products", strings.Join(names, ",")).
		Float64("impact", res.ContributionImpact).
		Msg("portfolio combo evaluated")

	return res, nil
}

// SimulateWithElasticity reprices one product and moves its quantity by a
// caller-supplied demand elasticity (percent quantity change per percent
// price change; no estimation happens here). The new quantity is floored at
// zero and truncated to whole units before the scenario is rebuilt.
func (s *AnalysisService) SimulateWithElasticity(products []domain.Product, fixedCosts float64, name string, newPrice, elasticity float64) (domain.ElasticitySimResult, error) {
	a, err := s.analyzer(products, fixedCosts)
	if err != nil {
		return domain.ElasticitySimResult{}, err
	}
	if a.Len() == 0 {
		return domain.ElasticitySimResult{}, nil
	}
	if newPrice < 0 {
		return domain.ElasticitySimResult{}, &analysis.InvalidInputError{
			Field: "new_price", Reason: fmt.Sprintf("must not be negative, got %v", newPrice),
		}
	}

	current := a.CVPAnalysis()

	modified := a.Products()
	var (
		found              bool
		priceChangePercent float64
		qtyChangePercent   float64
		newQuantity        int
	)
	for i := range modified {
		if modified[i].Name != name {
			continue
		}
		found = true
		if modified[i].Price > 0 {
			priceChangePercent = (newPrice - modified[i].Price) / modified[i].Price * 100
		}
		qtyChangePercent = elasticity * priceChangePercent
		scaled := float64(modified[i].Quantity) * (1 + qtyChangePercent/100)
		if scaled < 0 {
			scaled = 0
		}
		newQuantity = int(scaled)

		modified[i].Price = newPrice
		modified[i].Quantity = newQuantity
	}
	if !found {
		return domain.ElasticitySimResult{}, &analysis.NotFoundError{Name: name}
	}

	sim, err := analysis.New(modified, fixedCosts)
	if err != nil {
		return domain.ElasticitySimResult{}, fmt.Errorf("building scenario analyzer: %w", err)
	}
	next := sim.CVPAnalysis()

	return domain.ElasticitySimResult{
		PriceSimResult: domain.PriceSimResult{
			CurrentProfit:            current.NetProfit,
			NewProfit:                next.NetProfit,
			ProfitChange:             next.NetProfit - current.NetProfit,
			CurrentContributionRatio: current.ContributionMarginRatio,
			NewContributionRatio:     next.ContributionMarginRatio,
		},
		CurrentRevenue:        current.TotalRevenue,
		NewRevenue:            next.TotalRevenue,
		RevenueChange:         next.TotalRevenue - current.TotalRevenue,
		PriceChangePercent:    priceChangePercent,
		QuantityChangePercent: qtyChangePercent,
		NewQuantity:           newQuantity,
	}, nil
}
