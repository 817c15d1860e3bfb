package repository

import "context"

// SizeOrdersRepositoryInterface is implemented by SizeOrdersRepository and its
// circuit breaker wrapper.
type SizeOrdersRepositoryInterface interface {
	GetActive(ctx context.Context) (*SizeOrderConfig, error)
	Create(ctx context.Context, sizes []int, createdBy, note string) (*SizeOrderConfig, error)
	List(ctx context.Context, limit int) ([]SizeOrderConfig, error)
}

// LogsRepositoryInterface is implemented by LogsRepository and its circuit
// breaker wrapper.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}

// AnalysesRepositoryInterface is implemented by AnalysesRepository and its
// circuit breaker wrapper.
type AnalysesRepositoryInterface interface {
	Create(ctx context.Context, doc *AnalysisDocument) error
	List(ctx context.Context, limit int) ([]AnalysisDocument, error)
	Count(ctx context.Context) (int64, error)
}
