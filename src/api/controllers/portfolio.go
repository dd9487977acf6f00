package controllers

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"investmanager/src/models"
	"investmanager/src/schemas"
	"investmanager/src/utils"
	"investmanager/src/utils/render"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func (c *Controller) GetPortfolio(ctx context.Context, date time.Time) (*schemas.PortfolioResponse, error) {
	_, valuation, err := c.valuePortfolio(ctx, date)
	if err != nil {
		return nil, err
	}
	return schemas.NewPortfolioResponse(valuation), nil
}

func (c *Controller) ExportPortfolioXLSX(ctx context.Context, date time.Time) (*bytes.Buffer, error) {
	_, valuation, err := c.valuePortfolio(ctx, date)
	if err != nil {
		return nil, err
	}
	rows := make([]render.WorkbookRow, 0, len(valuation.Groups))
	for _, group := range valuation.Groups {
		rows = append(rows, render.WorkbookRow{
			Type:         string(group.AssetType),
			Amount:       group.Amount.InexactFloat64(),
			ExchangeRate: group.ExchangeRate.InexactFloat64(),
			Value:        group.CurrentValueKRW.InexactFloat64(),
		})
	}
	return render.BuildPortfolioWorkbook(date.Format(utils.ShortDashDateLayout), rows, valuation.TotalKRW.InexactFloat64())
}

// GeneratePortfolioReport renders the report and chart pages into a PDF. Generator
// failures are reported as 503 since they depend on the wkhtmltopdf binary.
func (c *Controller) GeneratePortfolioReport(ctx context.Context, date time.Time) (*bytes.Buffer, error) {
	assets, valuation, err := c.valuePortfolio(ctx, date)
	if err != nil {
		return nil, err
	}
	report, err := render.RenderReport(portfolioPage(assets, valuation))
	if err != nil {
		return nil, err
	}
	chart, err := render.RenderPieChart(chartTitle(date), chartSlices(valuation))
	if err != nil {
		return nil, err
	}
	pdf, err := c.GeneratePDF([]string{report, chart})
	if err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Error("failed to generate portfolio report")
		return nil, utils.ServiceUnavailable("PDF generation is not available")
	}
	return pdf, nil
}

func (c *Controller) RenderDashboard(ctx context.Context, date time.Time) (string, error) {
	assets, valuation, err := c.valuePortfolio(ctx, date)
	if err != nil {
		return "", err
	}
	return render.RenderDashboard(portfolioPage(assets, valuation))
}

func (c *Controller) RenderPortfolioChart(ctx context.Context, date time.Time) (string, error) {
	_, valuation, err := c.valuePortfolio(ctx, date)
	if err != nil {
		return "", err
	}
	return render.RenderPieChart(chartTitle(date), chartSlices(valuation))
}

func chartTitle(date time.Time) string {
	return fmt.Sprintf("Portfolio %s", date.Format(utils.ShortDashDateLayout))
}

func chartSlices(valuation *models.PortfolioValuation) []render.ChartSlice {
	slices := make([]render.ChartSlice, 0, len(valuation.Groups))
	for i, group := range valuation.Groups {
		slices = append(slices, render.ChartSlice{
			Name:  string(group.AssetType),
			Value: group.CurrentValueKRW.InexactFloat64(),
			Color: utils.GetChartColor(i),
		})
	}
	return slices
}

func portfolioPage(assets []models.Asset, valuation *models.PortfolioValuation) render.PortfolioPage {
	page := render.PortfolioPage{
		Date:   valuation.Date.Format(utils.ShortDashDateLayout),
		Total:  formatKRW(valuation.TotalKRW),
		Rows:   make([]render.ValuationRow, 0, len(valuation.Groups)),
		Assets: make([]render.AssetRow, 0, len(assets)),
	}
	for _, assetType := range models.AssetTypes {
		page.AssetTypes = append(page.AssetTypes, render.AssetTypeOption{Code: string(assetType), Name: assetType.DisplayName()})
	}
	for i, group := range valuation.Groups {
		page.Rows = append(page.Rows, render.ValuationRow{
			Type:         string(group.AssetType),
			DisplayName:  group.AssetType.DisplayName(),
			Amount:       group.Amount.StringFixed(2),
			ExchangeRate: group.ExchangeRate.StringFixed(2),
			Value:        formatKRW(group.CurrentValueKRW),
			Color:        utils.GetChartColor(i),
		})
	}
	for _, asset := range assets {
		page.Assets = append(page.Assets, render.AssetRow{
			ID:       asset.ID,
			Name:     asset.Name,
			Type:     string(asset.AssetType),
			Amount:   asset.Amount.String(),
			BuyPrice: asset.BuyPrice.StringFixed(2),
			BuyDate:  asset.BuyDate.Format(utils.ShortDashDateLayout),
			Cost:     formatKRW(purchaseCost(asset)),
		})
	}
	return page
}

// purchaseCost is what the asset cost in won. Yen buy prices are quoted per 100 yen.
func purchaseCost(asset models.Asset) decimal.Decimal {
	cost := asset.Amount.Mul(asset.BuyPrice)
	if asset.AssetType == models.AssetTypeJPY {
		cost = cost.Div(decimal.NewFromInt(100))
	}
	return cost
}

// formatKRW prints whole won with the currency symbol and grouping.
func formatKRW(value decimal.Decimal) string {
	return money.New(value.Round(0).IntPart(), "KRW").Display()
}
