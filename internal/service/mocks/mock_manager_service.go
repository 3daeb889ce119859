package mocks

import (
	"context"

	"managerapi/internal/model"
	"managerapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockManagerService struct {
	mock.Mock
}

func (m *MockManagerService) List(ctx context.Context, limit, offset int) (*service.ManagerListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ManagerListResult), args.Error(1)
}

func (m *MockManagerService) Get(ctx context.Context, id string) (*model.Manager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Manager), args.Error(1)
}

func (m *MockManagerService) Create(ctx context.Context, in model.ManagerInput) (*model.Manager, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Manager), args.Error(1)
}

func (m *MockManagerService) Update(ctx context.Context, id string, patch model.ManagerPatch) (*model.Manager, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Manager), args.Error(1)
}

func (m *MockManagerService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
