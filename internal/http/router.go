package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/barisense-backend/internal/http/handlers"
	httpMW "github.com/yungbote/barisense-backend/internal/http/middleware"
	"github.com/yungbote/barisense-backend/internal/observability"
	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

const DefaultAPIPrefix = "/api/v1"

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	// ServiceName enables otelgin spans when non-empty.
	ServiceName  string
	APIPrefix    string
	AllowOrigins []string

	APIKeyMiddleware *httpMW.APIKeyMiddleware

	HealthHandler    *httpH.HealthHandler
	CoffeeHandler    *httpH.CoffeeHandler
	WaterHandler     *httpH.WaterHandler
	ShotHandler      *httpH.ShotHandler
	TastingHandler   *httpH.TastingHandler
	VerdictHandler   *httpH.VerdictHandler
	AnalyticsHandler *httpH.AnalyticsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))

	apiKeyHeader := httpMW.DefaultAPIKeyHeader
	if cfg.APIKeyMiddleware != nil {
		apiKeyHeader = cfg.APIKeyMiddleware.Header()
	}
	r.Use(httpMW.CORS(cfg.AllowOrigins, apiKeyHeader))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/api/health", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	prefix := strings.TrimRight(strings.TrimSpace(cfg.APIPrefix), "/")
	if prefix == "" {
		prefix = DefaultAPIPrefix
	}
	api := r.Group(prefix)
	if cfg.APIKeyMiddleware != nil {
		api.Use(cfg.APIKeyMiddleware.RequireAPIKey())
	}

	// Coffees
	if h := cfg.CoffeeHandler; h != nil {
		api.GET("/coffees", h.List)
		api.POST("/coffees", h.Create)
		api.GET("/coffees/:id", h.Get)
		api.PUT("/coffees/:id", h.Update)
		api.DELETE("/coffees/:id", h.Delete)
	}

	// Waters
	if h := cfg.WaterHandler; h != nil {
		api.GET("/waters", h.List)
		api.POST("/waters", h.Create)
		api.GET("/waters/:id", h.Get)
		api.PUT("/waters/:id", h.Update)
		api.DELETE("/waters/:id", h.Delete)
	}

	// Shots
	if h := cfg.ShotHandler; h != nil {
		api.GET("/shots", h.List)
		api.POST("/shots", h.Create)
		api.GET("/shots/:id", h.Get)
		api.PUT("/shots/:id", h.Update)
		api.DELETE("/shots/:id", h.Delete)
	}

	// Tastings
	if h := cfg.TastingHandler; h != nil {
		api.GET("/tastings", h.List)
		api.POST("/tastings", h.Create)
		api.GET("/tastings/:id", h.Get)
		api.DELETE("/tastings/:id", h.Delete)
	}

	// Verdicts
	if h := cfg.VerdictHandler; h != nil {
		api.GET("/verdicts", h.List)
		api.POST("/verdicts", h.Upsert)
		api.GET("/verdicts/:id", h.Get)
		api.PUT("/verdicts/:id", h.Update)
		api.DELETE("/verdicts/:id", h.Delete)
	}

	// Analytics
	if h := cfg.AnalyticsHandler; h != nil {
		api.GET("/analytics/rankings", h.Ranking)
		api.GET("/analytics/rankings/:beverage", h.Ranking)
		api.GET("/analytics/quality-price", h.QualityPrice)
		api.GET("/analytics/stability", h.Stability)
		api.GET("/analytics/retest", h.Retest)
	}

	return r
}
