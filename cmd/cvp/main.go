// cmd/cvp/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cafemetrics/backend-go/internal/analysis"
	"github.com/cafemetrics/backend-go/internal/config"
	"github.com/cafemetrics/backend-go/internal/ingest"
	"github.com/cafemetrics/backend-go/internal/report"
	"github.com/urfave/cli/v2"
)

func newFileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "file",
		Usage:    "Product sheet to analyze (CSV or XLSX)",
		Required: true,
		EnvVars:  []string{"CVP_PRODUCT_FILE"},
	}
}

func newFixedCostsFlag(defaultValue float64) *cli.Float64Flag {
	return &cli.Float64Flag{
		Name:    "fixed-costs",
		Usage:   "Total fixed costs for the analysis period",
		Value:   defaultValue,
		EnvVars: []string{"CVP_FIXED_COSTS"},
	}
}

func loadAnalyzer(c *cli.Context) (*analysis.Analyzer, error) {
	path := c.String("file")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	products, err := ingest.FromFile(path, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	a, err := analysis.New(products, c.Float64("fixed-costs"))
	if err != nil {
		return nil, err
	}
	return a, nil
}

func runReport(c *cli.Context) error {
	a, err := loadAnalyzer(c)
	if err != nil {
		return err
	}

	text := report.Generate(a.CVPAnalysis(), a.ContributionAnalysis(), a.MixOptimization(), time.Now())

	if out := c.String("out"); out != "" {
		if err := os.WriteFile(out, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write report to %s: %w", out, err)
		}
		fmt.Printf("Report written to %s\n", out)
		return nil
	}
	fmt.Print(text)
	return nil
}

func runCombo(c *cli.Context) error {
	a, err := loadAnalyzer(c)
	if err != nil {
		return err
	}

	combo, err := a.ComboAnalysis(c.StringSlice("product"), c.Float64("discount"))
	if err != nil {
		return err
	}

	fmt.Printf("Combo: %v\n", combo.Products)
	fmt.Printf("  Original price:   %.2f\n", combo.OriginalPrice)
	fmt.Printf("  Discounted price: %.2f (%.0f%% off)\n", combo.DiscountedPrice, combo.DiscountApplied)
	fmt.Printf("  Bundle cost:      %.2f\n", combo.TotalCost)
	fmt.Printf("  Bundle margin:    %.2f (%.1f%%)\n", combo.ComboMargin, combo.ComboMarginPercent)
	fmt.Printf("  Margin impact:    %+.1f p.p. vs %.1f%% individual average\n",
		combo.MarginImpact, combo.AvgIndividualMarginPercent)
	fmt.Printf("  Verdict:          %s\n", combo.Viability)
	return nil
}

func runSimulate(c *cli.Context) error {
	a, err := loadAnalyzer(c)
	if err != nil {
		return err
	}

	sim, err := a.SimulatePriceChange(c.String("product-name"), c.Float64("new-price"))
	if err != nil {
		return err
	}

	fmt.Printf("Price simulation for %s -> %.2f\n", c.String("product-name"), c.Float64("new-price"))
	fmt.Printf("  Current profit: %.2f\n", sim.CurrentProfit)
	fmt.Printf("  New profit:     %.2f\n", sim.NewProfit)
	fmt.Printf("  Change:         %+.2f\n", sim.ProfitChange)
	fmt.Printf("  Contribution ratio: %.1f%% -> %.1f%%\n",
		sim.CurrentContributionRatio, sim.NewContributionRatio)
	return nil
}

func main() {
	// config.Load picks up a .env file if present, same as the server.
	cfg := config.Load()

	app := &cli.App{
		Name:  "cvp",
		Usage: "Cost-volume-profit analysis for a product sheet",
		Commands: []*cli.Command{
			{
				Name:  "report",
				Usage: "Print or save the full analysis report",
				Flags: []cli.Flag{
					newFileFlag(),
					newFixedCostsFlag(cfg.Analysis.DefaultFixedCosts),
					&cli.StringFlag{
						Name:  "out",
						Usage: "Write the report to a file instead of stdout",
					},
				},
				Action: runReport,
			},
			{
				Name:  "combo",
				Usage: "Evaluate a discounted product bundle",
				Flags: []cli.Flag{
					newFileFlag(),
					newFixedCostsFlag(cfg.Analysis.DefaultFixedCosts),
					&cli.StringSliceFlag{
						Name:     "product",
						Usage:    "Product name to include (repeatable)",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "discount",
						Usage: "Bundle discount percent",
						Value: 10,
					},
				},
				Action: runCombo,
			},
			{
				Name:  "simulate",
				Usage: "Simulate a single product price change",
				Flags: []cli.Flag{
					newFileFlag(),
					newFixedCostsFlag(cfg.Analysis.DefaultFixedCosts),
					&cli.StringFlag{
						Name:     "product-name",
						Usage:    "Product to reprice",
						Required: true,
					},
					&cli.Float64Flag{
						Name:     "new-price",
						Usage:    "New sale price",
						Required: true,
					},
				},
				Action: runSimulate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
