// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/packing-report/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockSizeOrdersRepository struct {
	mock.Mock
}

func (m *MockSizeOrdersRepository) GetActive(ctx context.Context) (*repository.SizeOrderConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SizeOrderConfig), args.Error(1)
}

func (m *MockSizeOrdersRepository) Create(ctx context.Context, sizes []int, createdBy, note string) (*repository.SizeOrderConfig, error) {
	args := m.Called(ctx, sizes, createdBy, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SizeOrderConfig), args.Error(1)
}

func (m *MockSizeOrdersRepository) List(ctx context.Context, limit int) ([]repository.SizeOrderConfig, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SizeOrderConfig), args.Error(1)
}
