package services

import (
	"context"
	"time"

	"investmanager/src/models"
	"investmanager/src/utils"

	"github.com/shopspring/decimal"
)

// WarmResult is the outcome of resolving one code while warming the cache.
type WarmResult struct {
	Code  models.AssetType
	Rate  decimal.Decimal
	Error error
}

// RateWarmer resolves every priced asset type for a day so later valuations hit the cache.
type RateWarmer struct {
	portfolio PortfolioServiceI
	location  *time.Location
}

func NewRateWarmer(portfolio PortfolioServiceI, location *time.Location) *RateWarmer {
	return &RateWarmer{portfolio: portfolio, location: location}
}

// WarmToday warms the rates for the current day in the configured timezone.
func (w *RateWarmer) WarmToday(ctx context.Context) []WarmResult {
	return w.Warm(ctx, utils.Today(w.location))
}

func (w *RateWarmer) Warm(ctx context.Context, date time.Time) []WarmResult {
	logger := utils.LoggerFromContext(ctx).WithField("date", utils.CompactDate(date))
	codes := []models.AssetType{models.AssetTypeUSD, models.AssetTypeJPY, models.AssetTypeCNY, models.AssetTypeGold}

	results := make([]WarmResult, 0, len(codes))
	for _, code := range codes {
		rate, err := w.portfolio.ResolveUnitValue(ctx, code, date)
		if err != nil {
			logger.WithField("code", code).WithError(err).Warn("failed to warm rate")
		}
		results = append(results, WarmResult{Code: code, Rate: rate, Error: err})
	}
	logger.Info("rate cache warmed")
	return results
}
