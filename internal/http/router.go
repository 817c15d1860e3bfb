package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/packing-report/internal/adapter"
	"github.com/guttosm/packing-report/internal/metrics"
	"github.com/guttosm/packing-report/internal/middleware"
	"github.com/guttosm/packing-report/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// LoggingServiceKey is the gin context key holding the LoggingService.
const LoggingServiceKey = "logging_service"

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	APIKeys           map[string]bool
	EnableAuth        bool
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	RequestTimeout    time.Duration
	MaxUploadBytes    int64
	LoggingService    service.LoggingService
	Analyzer          service.AnalysisService
	Invoker           Invoker
	SizeOrderService  service.SizeOrderService
	HistoryService    service.HistoryService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:         100,
		RateWindow:        time.Minute,
		EnableIdempotency: true,
		RequestTimeout:    60 * time.Second,
		MaxUploadBytes:    20 << 20,
	}
}

// NewRouter creates and configures the Gin router for the packing report API.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	for _, group := range routeGroups(&cfg) {
		group.RegisterRoutes(api)
	}

	return router
}

func routeGroups(cfg *RouterConfig) []RouteGroup {
	var groups []RouteGroup
	if cfg.Analyzer != nil {
		invoker := cfg.Invoker
		if invoker == nil {
			invoker = adapter.New(cfg.Analyzer)
		}
		groups = append(groups, NewAnalysisRoutes(NewAnalysisHandler(cfg.Analyzer, invoker, cfg.MaxUploadBytes)))
	}
	if cfg.SizeOrderService != nil {
		groups = append(groups, NewSizeOrderRoutes(NewSizeOrderHandler(cfg.SizeOrderService)))
	}
	if cfg.HistoryService != nil {
		groups = append(groups, NewHistoryRoutes(NewHistoryHandler(cfg.HistoryService)))
	}
	return groups
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Cache-Control", "X-Requested-With", "X-API-Key", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition", InputSHA256Header, CachedHeader, middleware.ReplayedHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression("/api/analyze/upload", "/metrics"),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	router.Use(func(c *gin.Context) {
		if cfg.LoggingService != nil {
			c.Set(LoggingServiceKey, cfg.LoggingService)
		}
		c.Next()
	})
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group. Keys are
// checked before rate limiting so that clients are limited per key.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		api.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		api.Use(limiter.ClientRateLimit())
	}

	if cfg.RequestTimeout > 0 {
		api.Use(middleware.TimeoutWithDuration(cfg.RequestTimeout))
	}

	if cfg.EnableIdempotency {
		idempotency := middleware.DefaultIdempotencyConfig()
		if cfg.MaxUploadBytes > 0 {
			idempotency.MaxBodyBytes = base64Len(cfg.MaxUploadBytes) + multipartOverhead
		}
		api.Use(middleware.Idempotency(idempotency))
	}
}
