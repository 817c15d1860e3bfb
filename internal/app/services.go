package app

import (
	"slices"

	"github.com/guttosm/packing-report/config"
	"github.com/guttosm/packing-report/internal/analysis"
	"github.com/guttosm/packing-report/internal/middleware"
	"github.com/guttosm/packing-report/internal/report"
	"github.com/guttosm/packing-report/internal/repository"
	"github.com/guttosm/packing-report/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Analyzer   *service.AnalysisServiceImpl
	SizeOrders *service.SizeOrderServiceImpl
	History    *service.HistoryServiceImpl
	// AsyncLogger is nil when the database is disabled.
	AsyncLogger *middleware.AsyncLogger
}

// DefaultSizeOrder returns the configured fallback order, or the built-in
// order when none is configured.
func DefaultSizeOrder(cfg config.ReportConfig) []int {
	if len(cfg.SizeOrder) > 0 {
		return slices.Clone(cfg.SizeOrder)
	}
	return slices.Clone(analysis.DefaultSizeOrder)
}

// ReportOptions maps the report configuration onto renderer options.
func ReportOptions(cfg config.ReportConfig) report.Options {
	opts := report.DefaultOptions()
	if cfg.Title != "" {
		opts.Title = cfg.Title
	}
	if cfg.ChartTitle != "" {
		opts.ChartTitle = cfg.ChartTitle
	}
	opts.FormulaTotals = cfg.FormulaTotals
	return opts
}

// InitializeServices builds the business services. db may be nil.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	var (
		sizeOrdersRepo repository.SizeOrdersRepositoryInterface
		analysesRepo   repository.AnalysesRepositoryInterface
		asyncLogger    *middleware.AsyncLogger
	)
	if db != nil {
		sizeOrdersRepo = db.SizeOrdersRepo
		analysesRepo = db.AnalysesRepo
		asyncLogger = middleware.InitAsyncLogger(db.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	var analyzer *service.AnalysisServiceImpl
	sizeOrders := service.NewSizeOrderService(sizeOrdersRepo,
		service.WithFallbackOrder(DefaultSizeOrder(cfg.Report)),
		// cached results embed the order they were computed with
		service.WithOnChanged(func() { analyzer.ClearCache() }),
	)

	opts := []service.AnalysisOption{
		service.WithSizeOrders(sizeOrders),
		service.WithReportOptions(ReportOptions(cfg.Report)),
		service.WithMaxBytes(int(cfg.Server.MaxUploadBytes)),
	}
	if cfg.Cache.Size > 0 {
		opts = append(opts, service.WithCache(cfg.Cache.Size, cfg.Cache.TTL))
	}
	if analysesRepo != nil {
		opts = append(opts, service.WithHistory(analysesRepo))
	}
	if asyncLogger != nil {
		opts = append(opts, service.WithAudit(asyncLogger))
	}
	analyzer = service.NewAnalysisService(opts...)

	return &ServiceComponents{
		Analyzer:    analyzer,
		SizeOrders:  sizeOrders,
		History:     service.NewHistoryService(analysesRepo),
		AsyncLogger: asyncLogger,
	}
}

// Close releases background workers started by InitializeServices.
func (s *ServiceComponents) Close() {
	if s == nil {
		return
	}
	s.Analyzer.Close()
	if s.AsyncLogger != nil {
		middleware.StopAsyncLogger()
	}
}
