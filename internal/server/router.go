package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"github.com/njchilds90/polylead"
	"github.com/njchilds90/polylead/internal/config"
)

// NewRouter builds the gin engine with every route and middleware.
//
// Routes:
//
//	POST /v1/validate   pre-flight checks
//	POST /v1/normalize  flatten to a sum of monomials
//	POST /v1/analyze    leading term, coefficient and degree
//	POST /tool          tool call
//	GET  /schema        tool schema for agent registration
//	GET  /health        liveness
//	GET  /metrics       Prometheus metrics
func NewRouter(cfg config.Config, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Server.Debug && gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	analyzer := polylead.New(
		polylead.WithMaxTerms(cfg.Analyzer.MaxTerms),
		polylead.WithMaxLength(cfg.Analyzer.MaxExpressionLength),
	)
	h := NewHandlers(NewService(analyzer), logger, cfg.Server.MaxBodyBytes)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	router.Use(RequestID())
	router.Use(AccessLog(logger))

	router.GET("/health", h.HandleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/")
	if cfg.RateLimit.Enabled {
		api.Use(RateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)))
	}
	api.GET("/schema", h.HandleSchema)
	api.POST("/tool", h.HandleTool)

	v1 := api.Group("/v1")
	v1.POST("/validate", h.HandleValidate)
	v1.POST("/normalize", h.HandleNormalize)
	v1.POST("/analyze", h.HandleAnalyze)

	return router
}
