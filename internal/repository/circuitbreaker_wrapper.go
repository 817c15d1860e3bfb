package repository

import (
	"context"
	"errors"

	"github.com/guttosm/packing-report/internal/circuitbreaker"
)

// SizeOrdersRepositoryWithCircuitBreaker guards SizeOrdersRepository.
type SizeOrdersRepositoryWithCircuitBreaker struct {
	repo           SizeOrdersRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewSizeOrdersRepositoryWithCircuitBreaker wraps repo with cb.
func NewSizeOrdersRepositoryWithCircuitBreaker(repo SizeOrdersRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *SizeOrdersRepositoryWithCircuitBreaker {
	return &SizeOrdersRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// GetActive returns nil without error while the circuit is open so callers
// fall back to the configured size order.
func (r *SizeOrdersRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*SizeOrderConfig, error) {
	result, err := circuitbreaker.Call(ctx, r.circuitBreaker, func() (*SizeOrderConfig, error) {
		return r.repo.GetActive(ctx)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return result, err
}

func (r *SizeOrdersRepositoryWithCircuitBreaker) Create(ctx context.Context, sizes []int, createdBy, note string) (*SizeOrderConfig, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (*SizeOrderConfig, error) {
		return r.repo.Create(ctx, sizes, createdBy, note)
	})
}

func (r *SizeOrdersRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]SizeOrderConfig, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]SizeOrderConfig, error) {
		return r.repo.List(ctx, limit)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *SizeOrdersRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker guards LogsRepository. Writes are dropped
// silently while the circuit is open.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	return ignoreOpen(r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	}))
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	return ignoreOpen(r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	}))
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// AnalysesRepositoryWithCircuitBreaker guards AnalysesRepository. History
// writes are dropped silently while the circuit is open.
type AnalysesRepositoryWithCircuitBreaker struct {
	repo           AnalysesRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewAnalysesRepositoryWithCircuitBreaker wraps repo with cb.
func NewAnalysesRepositoryWithCircuitBreaker(repo AnalysesRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *AnalysesRepositoryWithCircuitBreaker {
	return &AnalysesRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

func (r *AnalysesRepositoryWithCircuitBreaker) Create(ctx context.Context, doc *AnalysisDocument) error {
	return ignoreOpen(r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, doc)
	}))
}

func (r *AnalysesRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]AnalysisDocument, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]AnalysisDocument, error) {
		return r.repo.List(ctx, limit)
	})
}

func (r *AnalysesRepositoryWithCircuitBreaker) Count(ctx context.Context) (int64, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *AnalysesRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

func ignoreOpen(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}
