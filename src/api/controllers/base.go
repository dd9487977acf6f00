package controllers

import (
	"bytes"
	"context"
	"time"

	"investmanager/src/models"
	"investmanager/src/schemas"
	"investmanager/src/services"
	"investmanager/src/utils/render"
)

type IController interface {
	GetAllAssets(ctx context.Context) ([]schemas.AssetResponse, error)
	CreateAsset(ctx context.Context, request schemas.AssetRequest) (*schemas.AssetResponse, error)
	DeleteAsset(ctx context.Context, id int) error
	GetPortfolio(ctx context.Context, date time.Time) (*schemas.PortfolioResponse, error)
	GetRate(ctx context.Context, code string, date time.Time) (*schemas.RateResponse, error)
	ExportPortfolioXLSX(ctx context.Context, date time.Time) (*bytes.Buffer, error)
	GeneratePortfolioReport(ctx context.Context, date time.Time) (*bytes.Buffer, error)
	RenderDashboard(ctx context.Context, date time.Time) (string, error)
	RenderPortfolioChart(ctx context.Context, date time.Time) (string, error)
}

// PDFGenerator turns rendered HTML pages into a single PDF document.
type PDFGenerator func(htmlContents []string) (*bytes.Buffer, error)

type Controller struct {
	AssetService     services.AssetServiceI
	PortfolioService services.PortfolioServiceI
	Location         *time.Location
	GeneratePDF      PDFGenerator
}

func NewController(assetService services.AssetServiceI, portfolioService services.PortfolioServiceI, location *time.Location) *Controller {
	return &Controller{
		AssetService:     assetService,
		PortfolioService: portfolioService,
		Location:         location,
		GeneratePDF:      render.GeneratePDF,
	}
}

// valuePortfolio loads every stored asset and values it on date.
func (c *Controller) valuePortfolio(ctx context.Context, date time.Time) ([]models.Asset, *models.PortfolioValuation, error) {
	assets, err := c.AssetService.ListAssets(ctx)
	if err != nil {
		return nil, nil, err
	}
	return assets, c.PortfolioService.ValuePortfolio(ctx, assets, date), nil
}
