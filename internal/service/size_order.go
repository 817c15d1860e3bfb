package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/guttosm/packing-report/internal/analysis"
	"github.com/guttosm/packing-report/internal/logger"
	"github.com/guttosm/packing-report/internal/repository"
)

// SizeOrderService manages the canonical order in which sizes are reported.
type SizeOrderService interface {
	GetActive(ctx context.Context) (*repository.SizeOrderConfig, error)
	Create(ctx context.Context, sizes []int, createdBy, note string) (*repository.SizeOrderConfig, error)
	List(ctx context.Context, limit int) ([]repository.SizeOrderConfig, error)
	// Resolve returns the size order to use for the next analysis.
	Resolve(ctx context.Context) []int
}

// SizeOrderServiceImpl implements SizeOrderService. Without a repository it
// serves only the fallback order.
type SizeOrderServiceImpl struct {
	repo      repository.SizeOrdersRepositoryInterface
	fallback  []int
	onChanged func()
}

// SizeOrderOption configures a SizeOrderServiceImpl.
type SizeOrderOption func(*SizeOrderServiceImpl)

// WithFallbackOrder sets the order used when no active configuration exists.
func WithFallbackOrder(sizes []int) SizeOrderOption {
	return func(s *SizeOrderServiceImpl) {
		if len(sizes) > 0 {
			s.fallback = slices.Clone(sizes)
		}
	}
}

// WithOnChanged registers fn to run after a new configuration is stored.
func WithOnChanged(fn func()) SizeOrderOption {
	return func(s *SizeOrderServiceImpl) {
		s.onChanged = fn
	}
}

// NewSizeOrderService creates a size order service. repo may be nil.
func NewSizeOrderService(repo repository.SizeOrdersRepositoryInterface, opts ...SizeOrderOption) *SizeOrderServiceImpl {
	s := &SizeOrderServiceImpl{
		repo:     repo,
		fallback: slices.Clone(analysis.DefaultSizeOrder),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SizeOrderServiceImpl) GetActive(ctx context.Context) (*repository.SizeOrderConfig, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.GetActive(ctx)
}

func (s *SizeOrderServiceImpl) Create(ctx context.Context, sizes []int, createdBy, note string) (*repository.SizeOrderConfig, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	clean, err := ValidateSizeOrder(sizes)
	if err != nil {
		return nil, err
	}
	config, err := s.repo.Create(ctx, clean, createdBy, note)
	if err != nil {
		return nil, err
	}
	if s.onChanged != nil {
		s.onChanged()
	}
	return config, nil
}

func (s *SizeOrderServiceImpl) List(ctx context.Context, limit int) ([]repository.SizeOrderConfig, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, limit)
}

// Resolve prefers the active stored configuration and falls back to the
// configured order when the repository is absent, empty or failing.
func (s *SizeOrderServiceImpl) Resolve(ctx context.Context) []int {
	if s.repo == nil {
		return slices.Clone(s.fallback)
	}
	active, err := s.repo.GetActive(ctx)
	if err != nil {
		logger.Component("size_order").Warn().Err(err).Msg("Failed to load active size order, using fallback")
		return slices.Clone(s.fallback)
	}
	if active == nil || len(active.Sizes) == 0 {
		return slices.Clone(s.fallback)
	}
	return slices.Clone(active.Sizes)
}

// ValidateSizeOrder rejects empty lists and non-positive sizes and drops
// repeated sizes, keeping the first occurrence.
func ValidateSizeOrder(sizes []int) ([]int, error) {
	if len(sizes) == 0 {
		return nil, ErrInvalidSizeOrder
	}
	seen := make(map[int]struct{}, len(sizes))
	out := make([]int, 0, len(sizes))
	for _, size := range sizes {
		if size <= 0 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidSizeOrder, size)
		}
		if _, dup := seen[size]; dup {
			continue
		}
		seen[size] = struct{}{}
		out = append(out, size)
	}
	return out, nil
}
