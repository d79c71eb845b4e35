// Package scenario runs batches of price what-ifs. Each scenario builds its
// own analyzer over a fresh copy of the catalog, so scenarios never contend
// and can run in parallel.
package scenario

import (
	"context"
	"fmt"

	"github.com/cafemetrics/backend-go/internal/analysis"
	"github.com/cafemetrics/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const defaultParallelism = 4

// RunBatch evaluates every scenario concurrently, up to maxParallel at a
// time, and returns results in scenario order. A scenario that fails on its
// own terms (unknown product, invalid price) carries its error in the result;
// only catalog-level validation failures or context cancellation abort the
// batch.
func RunBatch(ctx context.Context, products []domain.Product, fixedCosts float64, scenarios []domain.PriceScenario, maxParallel int) ([]domain.ScenarioResult, error) {
	base, err := analysis.New(products, fixedCosts)
	if err != nil {
		return nil, fmt.Errorf("building base analyzer: %w", err)
	}
	if maxParallel < 1 {
		maxParallel = defaultParallelism
	}

	results := make([]domain.ScenarioResult, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, sc := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = runOne(base, sc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().Int("scenarios", len(scenarios)).Msg("batch simulation completed")
	return results, nil
}

func runOne(base *analysis.Analyzer, sc domain.PriceScenario) domain.ScenarioResult {
	res := domain.ScenarioResult{Scenario: sc}

	sim, err := base.SimulatePriceChange(sc.ProductName, sc.NewPrice)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	res.Result = &sim
	return res
}
