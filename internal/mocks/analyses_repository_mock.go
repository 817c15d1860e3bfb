// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/packing-report/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockAnalysesRepository struct {
	mock.Mock
}

func (m *MockAnalysesRepository) Create(ctx context.Context, doc *repository.AnalysisDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockAnalysesRepository) List(ctx context.Context, limit int) ([]repository.AnalysisDocument, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AnalysisDocument), args.Error(1)
}

func (m *MockAnalysesRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
