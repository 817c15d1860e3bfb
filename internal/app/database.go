package app

import (
	"context"
	"time"

	"github.com/guttosm/packing-report/config"
	"github.com/guttosm/packing-report/internal/circuitbreaker"
	"github.com/guttosm/packing-report/internal/repository"
	"github.com/guttosm/packing-report/internal/service"
	"github.com/rs/zerolog/log"
)

// Circuit breaker names, reported by /readyz.
const (
	SizeOrdersBreaker = "mongodb_size_orders"
	LogsBreaker       = "mongodb_logs"
	AnalysesBreaker   = "mongodb_analyses"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB              *repository.MongoDB
	SizeOrdersRepo  repository.SizeOrdersRepositoryInterface
	AnalysesRepo    repository.AnalysesRepositoryInterface
	LoggingService  service.LoggingService
	CircuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the repositories behind
// circuit breakers. It returns nil when the database is disabled or
// unreachable; the service then runs without persistence.
func InitializeDatabase(cfg config.DatabaseConfig, defaultSizeOrder []int) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	breakers := map[string]*circuitbreaker.CircuitBreaker{
		SizeOrdersBreaker: newBreaker(cfg, SizeOrdersBreaker),
		LogsBreaker:       newBreaker(cfg, LogsBreaker),
		AnalysesBreaker:   newBreaker(cfg, AnalysesBreaker),
	}

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), breakers[LogsBreaker])
	sizeOrdersRepo := repository.NewSizeOrdersRepositoryWithCircuitBreaker(repository.NewSizeOrdersRepository(db), breakers[SizeOrdersBreaker])
	analysesRepo := repository.NewAnalysesRepositoryWithCircuitBreaker(repository.NewAnalysesRepository(db), breakers[AnalysesBreaker])

	if err := initializeDefaultSizeOrder(sizeOrdersRepo, defaultSizeOrder); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize default size order")
	}

	return &DatabaseComponents{
		DB:              db,
		SizeOrdersRepo:  sizeOrdersRepo,
		AnalysesRepo:    analysesRepo,
		LoggingService:  service.NewLoggingService(logsRepo),
		CircuitBreakers: breakers,
	}
}

// Close disconnects from MongoDB. It is safe on a nil receiver.
func (d *DatabaseComponents) Close() {
	if d == nil || d.DB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.DB.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to close MongoDB connection")
	}
}

func newBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
	})
}

// initializeDefaultSizeOrder stores the default order as version 1 when no
// order has been stored yet.
func initializeDefaultSizeOrder(repo repository.SizeOrdersRepositoryInterface, defaultSizes []int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	active, err := repo.GetActive(ctx)
	if err != nil {
		return err
	}
	if active != nil {
		return nil
	}

	sizes, err := service.ValidateSizeOrder(defaultSizes)
	if err != nil {
		return err
	}
	if _, err := repo.Create(ctx, sizes, "system", "initial size order"); err != nil {
		return err
	}
	log.Info().Ints("sizes", sizes).Msg("Created default size order")
	return nil
}
