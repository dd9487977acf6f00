package controllers

import (
	"context"
	"strings"
	"time"

	"investmanager/src/models"
	"investmanager/src/schemas"
	"investmanager/src/utils"
)

// GetRate returns the live won value of one unit of a priced asset type.
func (c *Controller) GetRate(ctx context.Context, code string, date time.Time) (*schemas.RateResponse, error) {
	assetType := models.AssetType(strings.ToUpper(code))
	if assetType != models.AssetTypeGold && !assetType.IsForeignCurrency() {
		return nil, utils.BadRequest("code must be one of USD, JPY, CNY, GOLD")
	}
	rate, err := c.PortfolioService.ResolveUnitValue(ctx, assetType, date)
	if err != nil {
		return nil, err
	}
	return &schemas.RateResponse{
		Code: string(assetType),
		Date: date.Format(utils.ShortDashDateLayout),
		Rate: rate.InexactFloat64(),
	}, nil
}
