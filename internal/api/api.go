// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/cafemetrics/backend-go/internal/api/handlers"
	"github.com/cafemetrics/backend-go/internal/api/middleware"
	"github.com/cafemetrics/backend-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Options struct {
	AllowedOrigins []string
	BatchParallel  int
}

func NewRouter(svc *service.AnalysisService, opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(opts.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	analysisHandler := handlers.NewAnalysisHandler(svc, opts.BatchParallel)

	apiGroup := router.Group("/api/v1")
	{
		analysisGroup := apiGroup.Group("/analysis")
		{
			analysisGroup.POST("/contribution", analysisHandler.Contribution)
			analysisGroup.POST("/breakeven", analysisHandler.Breakeven)
			analysisGroup.POST("/cvp", analysisHandler.CVP)
			analysisGroup.POST("/mix", analysisHandler.Mix)
			analysisGroup.POST("/combo", analysisHandler.Combo)
			analysisGroup.POST("/combo/portfolio", analysisHandler.PortfolioCombo)
			analysisGroup.POST("/simulate/price", analysisHandler.SimulatePrice)
			analysisGroup.POST("/simulate/elasticity", analysisHandler.SimulateElasticity)
			analysisGroup.POST("/simulate/batch", analysisHandler.SimulateBatch)
			analysisGroup.POST("/report", analysisHandler.Report)
		}

		apiGroup.POST("/products/upload", analysisHandler.Upload)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
