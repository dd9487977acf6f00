package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"investmanager/src/config"
	"investmanager/src/models"
	"investmanager/src/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const summaryPlaces = 2

type PortfolioServiceI interface {
	ValuePortfolio(ctx context.Context, assets []models.Asset, asOf time.Time) *models.PortfolioValuation
	ResolveUnitValue(ctx context.Context, assetType models.AssetType, date time.Time) (decimal.Decimal, error)
}

type PortfolioService struct {
	rates        RateResolver
	gold         GoldPriceResolver
	krwUnitValue decimal.Decimal
	aggregation  config.RateAggregation
}

func NewPortfolioService(rates RateResolver, gold GoldPriceResolver, cfg config.ValuationConfig) *PortfolioService {
	unit := cfg.KRWUnitValue
	if unit <= 0 {
		unit = 10000
	}
	aggregation := cfg.RateAggregation
	if aggregation == "" {
		aggregation = config.LastRate
	}
	return &PortfolioService{
		rates:        rates,
		gold:         gold,
		krwUnitValue: decimal.NewFromInt(unit),
		aggregation:  aggregation,
	}
}

// ResolveUnitValue returns the live won value of one unit of assetType on date,
// without any fallback.
func (s *PortfolioService) ResolveUnitValue(ctx context.Context, assetType models.AssetType, date time.Time) (decimal.Decimal, error) {
	switch {
	case assetType == models.AssetTypeKRW:
		return s.krwUnitValue, nil
	case assetType == models.AssetTypeGold:
		return s.gold.ResolveGoldPriceKRW(ctx, date)
	case assetType.IsForeignCurrency():
		return s.rates.ResolveRate(ctx, assetType, date)
	}
	return decimal.Zero, fmt.Errorf("%w: unknown asset type %q", ErrRateNotFound, assetType)
}

type groupTotals struct {
	amount   decimal.Decimal
	value    decimal.Decimal
	lastRate decimal.Decimal
}

// ValuePortfolio values every asset at asOf and aggregates by type. Assets whose
// unit value cannot be resolved are left out instead of failing the whole call.
func (s *PortfolioService) ValuePortfolio(ctx context.Context, assets []models.Asset, asOf time.Time) *models.PortfolioValuation {
	logger := utils.LoggerFromContext(ctx)

	order := make([]models.AssetType, 0, len(models.AssetTypes))
	groups := make(map[models.AssetType]*groupTotals)

	for _, asset := range assets {
		unitValue, err := s.unitValueFor(ctx, asset, asOf)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"asset_id":   asset.ID,
				"asset_type": asset.AssetType,
			}).WithError(err).Warn("asset excluded from valuation")
			continue
		}

		group, ok := groups[asset.AssetType]
		if !ok {
			group = &groupTotals{}
			groups[asset.AssetType] = group
			order = append(order, asset.AssetType)
		}
		group.amount = group.amount.Add(asset.Amount)
		group.value = group.value.Add(asset.Amount.Mul(unitValue))
		group.lastRate = unitValue
	}

	valuation := &models.PortfolioValuation{
		Date:     asOf,
		Groups:   make([]models.AssetTypeValuation, 0, len(order)),
		TotalKRW: decimal.Zero,
	}
	for _, assetType := range order {
		group := groups[assetType]
		value := group.value.Round(summaryPlaces)
		valuation.Groups = append(valuation.Groups, models.AssetTypeValuation{
			AssetType:       assetType,
			Amount:          group.amount.Round(summaryPlaces),
			ExchangeRate:    s.groupRate(group).Round(summaryPlaces),
			CurrentValueKRW: value,
		})
		valuation.TotalKRW = valuation.TotalKRW.Add(value)
	}
	valuation.TotalKRW = valuation.TotalKRW.Round(summaryPlaces)
	return valuation
}

func (s *PortfolioService) unitValueFor(ctx context.Context, asset models.Asset, asOf time.Time) (decimal.Decimal, error) {
	unitValue, err := s.ResolveUnitValue(ctx, asset.AssetType, asOf)
	if err == nil {
		return unitValue, nil
	}
	if asset.AssetType == models.AssetTypeGold && errors.Is(err, ErrRateNotFound) && asset.BuyPrice.IsPositive() {
		utils.LoggerFromContext(ctx).WithField("asset_id", asset.ID).Info("gold price unavailable, using buy price")
		return asset.BuyPrice, nil
	}
	return decimal.Zero, err
}

// groupRate is the last unit value seen for the group, or the amount-weighted
// average when configured.
func (s *PortfolioService) groupRate(group *groupTotals) decimal.Decimal {
	if s.aggregation == config.WeightedRate && group.amount.IsPositive() {
		return group.value.Div(group.amount)
	}
	return group.lastRate
}
