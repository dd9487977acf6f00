package handlers_test

import (
	"bytes"
	"context"
	"time"

	"investmanager/src/schemas"

	"github.com/stretchr/testify/mock"
)

type MockController struct {
	mock.Mock
}

func (m *MockController) GetAllAssets(ctx context.Context) ([]schemas.AssetResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schemas.AssetResponse), args.Error(1)
}

func (m *MockController) CreateAsset(ctx context.Context, request schemas.AssetRequest) (*schemas.AssetResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schemas.AssetResponse), args.Error(1)
}

func (m *MockController) DeleteAsset(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockController) GetPortfolio(ctx context.Context, date time.Time) (*schemas.PortfolioResponse, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schemas.PortfolioResponse), args.Error(1)
}

func (m *MockController) GetRate(ctx context.Context, code string, date time.Time) (*schemas.RateResponse, error) {
	args := m.Called(ctx, code, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schemas.RateResponse), args.Error(1)
}

func (m *MockController) ExportPortfolioXLSX(ctx context.Context, date time.Time) (*bytes.Buffer, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bytes.Buffer), args.Error(1)
}

func (m *MockController) GeneratePortfolioReport(ctx context.Context, date time.Time) (*bytes.Buffer, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bytes.Buffer), args.Error(1)
}

func (m *MockController) RenderDashboard(ctx context.Context, date time.Time) (string, error) {
	args := m.Called(ctx, date)
	return args.String(0), args.Error(1)
}

func (m *MockController) RenderPortfolioChart(ctx context.Context, date time.Time) (string, error) {
	args := m.Called(ctx, date)
	return args.String(0), args.Error(1)
}
