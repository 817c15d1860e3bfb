// Code generated manually. DO NOT EDIT.

package http

import (
	"context"

	"github.com/guttosm/packing-report/internal/adapter"
	"github.com/guttosm/packing-report/internal/domain/model"
	"github.com/guttosm/packing-report/internal/repository"
	"github.com/guttosm/packing-report/internal/service"
	"github.com/stretchr/testify/mock"
)

type mockAnalysisService struct {
	mock.Mock
}

func (m *mockAnalysisService) Analyze(ctx context.Context, in service.AnalyzeInput) (*model.AnalysisResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalysisResult), args.Error(1)
}

type mockSizeOrderService struct {
	mock.Mock
}

func (m *mockSizeOrderService) GetActive(ctx context.Context) (*repository.SizeOrderConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SizeOrderConfig), args.Error(1)
}

func (m *mockSizeOrderService) Create(ctx context.Context, sizes []int, createdBy, note string) (*repository.SizeOrderConfig, error) {
	args := m.Called(ctx, sizes, createdBy, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SizeOrderConfig), args.Error(1)
}

func (m *mockSizeOrderService) List(ctx context.Context, limit int) ([]repository.SizeOrderConfig, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SizeOrderConfig), args.Error(1)
}

func (m *mockSizeOrderService) Resolve(ctx context.Context) []int {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]int)
}

type mockHistoryService struct {
	mock.Mock
}

func (m *mockHistoryService) List(ctx context.Context, limit int) ([]repository.AnalysisDocument, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AnalysisDocument), args.Error(1)
}

type mockInvoker struct {
	mock.Mock
}

func (m *mockInvoker) Handle(ctx context.Context, event adapter.Event) adapter.Response {
	args := m.Called(ctx, event)
	return args.Get(0).(adapter.Response)
}
