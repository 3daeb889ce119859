package mocks

import (
	"context"
	"io"
	"time"

	"managerapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Report(ctx context.Context) (model.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Report), args.Error(1)
}

func (m *MockReportService) Generate(ctx context.Context) (*model.ReportFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportFile), args.Error(1)
}

func (m *MockReportService) ListFiles(ctx context.Context) ([]model.ReportFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReportFile), args.Error(1)
}

func (m *MockReportService) OpenFile(ctx context.Context, name string) (io.ReadCloser, *model.ReportFile, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*model.ReportFile), args.Error(2)
}

func (m *MockReportService) FileURL(ctx context.Context, name string) (string, time.Time, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockReportService) DeleteFile(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

type MockReportSource struct {
	mock.Mock
}

func (m *MockReportSource) Report(ctx context.Context) (model.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Report), args.Error(1)
}

func (m *MockReportSource) Snapshot(ctx context.Context) (*model.ReportFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportFile), args.Error(1)
}

type MockReportBuilder struct {
	mock.Mock
}

func (m *MockReportBuilder) Build(ctx context.Context) (model.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Report), args.Error(1)
}

func (m *MockReportBuilder) Snapshot(ctx context.Context) (*model.ReportFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportFile), args.Error(1)
}
