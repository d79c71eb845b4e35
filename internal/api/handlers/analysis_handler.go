package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/cafemetrics/backend-go/internal/analysis"
	"github.com/cafemetrics/backend-go/internal/domain"
	"github.com/cafemetrics/backend-go/internal/ingest"
	"github.com/cafemetrics/backend-go/internal/report"
	"github.com/cafemetrics/backend-go/internal/scenario"
	"github.com/cafemetrics/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AnalysisRequest is the common body: the full catalog plus fixed costs.
// The service is stateless, so every call carries the whole input.
type AnalysisRequest struct {
	Products   []domain.Product `json:"products"`
	FixedCosts float64          `json:"fixed_costs"`
}

// ComboRequest selects catalog rows by name for bundle analysis.
type ComboRequest struct {
	AnalysisRequest
	Names           []string `json:"names"`
	DiscountPercent float64  `json:"discount_percent"`
}

// PriceSimRequest reprices one product.
type PriceSimRequest struct {
	AnalysisRequest
	ProductName string  `json:"product_name"`
	NewPrice    float64 `json:"new_price"`
}

// ElasticitySimRequest adds the user-supplied demand elasticity constant.
type ElasticitySimRequest struct {
	PriceSimRequest
	Elasticity float64 `json:"elasticity"`
}

// BatchSimRequest evaluates many price scenarios in one call.
type BatchSimRequest struct {
	AnalysisRequest
	Scenarios []domain.PriceScenario `json:"scenarios"`
}

type AnalysisHandler struct {
	service       *service.AnalysisService
	batchParallel int
}

func NewAnalysisHandler(svc *service.AnalysisService, batchParallel int) *AnalysisHandler {
	return &AnalysisHandler{service: svc, batchParallel: batchParallel}
}

func (h *AnalysisHandler) Contribution(c *gin.Context) {
	var req AnalysisRequest
	if !bindJSON(c, &req) {
		return
	}
	rows, err := h.service.Contribution(req.Products, req.FixedCosts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *AnalysisHandler) Breakeven(c *gin.Context) {
	var req AnalysisRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.Breakeven(req.Products, req.FixedCosts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AnalysisHandler) CVP(c *gin.Context) {
	var req AnalysisRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.CVP(req.Products, req.FixedCosts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AnalysisHandler) Mix(c *gin.Context) {
	var req AnalysisRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.Mix(req.Products, req.FixedCosts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AnalysisHandler) Combo(c *gin.Context) {
	var req ComboRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.Combo(req.Products, req.FixedCosts, req.Names, req.DiscountPercent)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AnalysisHandler) PortfolioCombo(c *gin.Context) {
	var req ComboRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.PortfolioComboImpact(req.Products, req.FixedCosts, req.Names, req.DiscountPercent)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AnalysisHandler) SimulatePrice(c *gin.Context) {
	var req PriceSimRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.SimulatePrice(req.Products, req.FixedCosts, req.ProductName, req.NewPrice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AnalysisHandler) SimulateElasticity(c *gin.Context) {
	var req ElasticitySimRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.SimulateWithElasticity(req.Products, req.FixedCosts, req.ProductName, req.NewPrice, req.Elasticity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AnalysisHandler) SimulateBatch(c *gin.Context) {
	var req BatchSimRequest
	if !bindJSON(c, &req) {
		return
	}
	results, err := scenario.RunBatch(c.Request.Context(), req.Products, req.FixedCosts, req.Scenarios, h.batchParallel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *AnalysisHandler) Report(c *gin.Context) {
	var req AnalysisRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := analysis.New(req.Products, req.FixedCosts)
	if err != nil {
		respondError(c, err)
		return
	}
	text := report.Generate(a.CVPAnalysis(), a.ContributionAnalysis(), a.MixOptimization(), time.Now())
	c.String(http.StatusOK, text)
}

// Upload accepts one CSV or XLSX product sheet and returns the parsed rows.
// Nothing is stored; the client feeds the rows back into the analysis
// endpoints.
func (h *AnalysisHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("failed to open uploaded file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer f.Close()

	products, err := ingest.FromFile(fileHeader.Filename, f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// respondError maps the analysis error taxonomy onto HTTP statuses: bad
// economic inputs are the caller's fault, missing products are 404s,
// anything else is a server error.
func respondError(c *gin.Context, err error) {
	var invalid *analysis.InvalidInputError
	var notFound *analysis.NotFoundError
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Msg("analysis request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
