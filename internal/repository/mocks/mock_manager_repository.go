package mocks

import (
	"context"

	"managerapi/internal/model"
	"managerapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockManagerRepository struct {
	mock.Mock
}

func (m *MockManagerRepository) Create(ctx context.Context, mgr *model.Manager) (*model.Manager, error) {
	args := m.Called(ctx, mgr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Manager), args.Error(1)
}

func (m *MockManagerRepository) FindByID(ctx context.Context, id string) (*model.Manager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Manager), args.Error(1)
}

func (m *MockManagerRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Manager], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Manager]), args.Error(1)
}

func (m *MockManagerRepository) All(ctx context.Context) ([]model.Manager, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Manager), args.Error(1)
}

func (m *MockManagerRepository) Update(ctx context.Context, id string, patch model.ManagerPatch) (*model.Manager, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Manager), args.Error(1)
}

func (m *MockManagerRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
