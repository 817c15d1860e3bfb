package service

import (
	"context"

	"github.com/guttosm/packing-report/internal/repository"
)

// DefaultHistoryLimit bounds history listings when the caller gives no limit.
const DefaultHistoryLimit = 50

// MaxHistoryLimit is the largest listing a caller may request.
const MaxHistoryLimit = 500

// HistoryService lists past analyses.
type HistoryService interface {
	List(ctx context.Context, limit int) ([]repository.AnalysisDocument, error)
}

// HistoryServiceImpl implements HistoryService.
type HistoryServiceImpl struct {
	repo repository.AnalysesRepositoryInterface
}

// NewHistoryService creates a history service. repo may be nil.
func NewHistoryService(repo repository.AnalysesRepositoryInterface) *HistoryServiceImpl {
	return &HistoryServiceImpl{repo: repo}
}

// List returns the most recent analyses. limit is clamped to
// [1, MaxHistoryLimit]; zero or negative means DefaultHistoryLimit.
func (s *HistoryServiceImpl) List(ctx context.Context, limit int) ([]repository.AnalysisDocument, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.repo.List(ctx, limit)
}
