package app

import (
	"github.com/guttosm/packing-report/config"
	"github.com/guttosm/packing-report/internal/adapter"
	"github.com/guttosm/packing-report/internal/http"
	"github.com/guttosm/packing-report/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the health handler and router configuration. db
// may be nil.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	healthHandler := http.NewHealthHandler()

	var loggingService service.LoggingService
	if db != nil {
		loggingService = db.LoggingService
		if db.DB != nil {
			healthHandler.RegisterChecker("mongodb", db.DB)
		}
		for name, cb := range db.CircuitBreakers {
			healthHandler.RegisterCircuitBreaker(name, cb)
		}
	}
	if services.AsyncLogger != nil {
		al := services.AsyncLogger
		healthHandler.RegisterStats("async_logger", func() interface{} { return al.Stats() })
	}
	if _, ok := services.Analyzer.CacheMetrics(); ok {
		healthHandler.RegisterStats("analysis_cache", func() interface{} {
			m, _ := services.Analyzer.CacheMetrics()
			return m
		})
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		EnableIdempotency: cfg.Server.EnableIdempotency,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		RequestTimeout:    cfg.Server.RequestTimeout,
		MaxUploadBytes:    cfg.Server.MaxUploadBytes,
		LoggingService:    loggingService,
		Analyzer:          services.Analyzer,
		Invoker:           adapter.New(services.Analyzer),
		SizeOrderService:  services.SizeOrders,
		HistoryService:    services.History,
	}

	return &RouterComponents{
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
