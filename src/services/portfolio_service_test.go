package services_test

import (
	"context"
	"testing"

	"investmanager/src/config"
	"investmanager/src/models"
	"investmanager/src/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asset(id int, assetType models.AssetType, amount, buyPrice string) models.Asset {
	return models.Asset{
		ID:        id,
		Name:      string(assetType),
		AssetType: assetType,
		Amount:    dec(amount),
		BuyPrice:  dec(buyPrice),
		BuyDate:   day(2023, 6, 1),
	}
}

func newPortfolioService(rates map[string]decimal.Decimal, gold *fakeGoldResolver, aggregation config.RateAggregation) *services.PortfolioService {
	if gold == nil {
		gold = &fakeGoldResolver{err: services.ErrRateNotFound}
	}
	return services.NewPortfolioService(
		&fakeRateResolver{rates: rates},
		gold,
		config.ValuationConfig{RateAggregation: aggregation, KRWUnitValue: 10000},
	)
}

func TestValuePortfolio(t *testing.T) {
	ctx := context.Background()
	asOf := day(2024, 1, 2)

	t.Run("won holdings are worth 10,000 per unit", func(t *testing.T) {
		svc := newPortfolioService(nil, nil, config.LastRate)

		result := svc.ValuePortfolio(ctx, []models.Asset{asset(1, models.AssetTypeKRW, "37", "0")}, asOf)

		require.Len(t, result.Groups, 1)
		assert.True(t, result.Groups[0].CurrentValueKRW.Equal(dec("370000")))
		assert.True(t, result.Groups[0].ExchangeRate.Equal(dec("10000")))
		assert.True(t, result.TotalKRW.Equal(dec("370000")))
		assert.Equal(t, asOf, result.Date)
	})

	t.Run("groups keep first-seen order and sum amounts", func(t *testing.T) {
		svc := newPortfolioService(map[string]decimal.Decimal{"USD:20240102": dec("1300")}, nil, config.LastRate)

		result := svc.ValuePortfolio(ctx, []models.Asset{
			asset(1, models.AssetTypeUSD, "100", "0"),
			asset(2, models.AssetTypeKRW, "2", "0"),
			asset(3, models.AssetTypeUSD, "50.5", "0"),
		}, asOf)

		require.Len(t, result.Groups, 2)
		assert.Equal(t, models.AssetTypeUSD, result.Groups[0].AssetType)
		assert.Equal(t, models.AssetTypeKRW, result.Groups[1].AssetType)
		assert.True(t, result.Groups[0].Amount.Equal(dec("150.5")))
		assert.True(t, result.Groups[0].CurrentValueKRW.Equal(dec("195650")))
		assert.True(t, result.TotalKRW.Equal(dec("215650")))
	})

	t.Run("gold falls back to the buy price", func(t *testing.T) {
		svc := newPortfolioService(nil, &fakeGoldResolver{err: services.ErrRateNotFound}, config.LastRate)

		result := svc.ValuePortfolio(ctx, []models.Asset{asset(1, models.AssetTypeGold, "2", "350000.00")}, asOf)

		require.Len(t, result.Groups, 1)
		assert.True(t, result.Groups[0].ExchangeRate.Equal(dec("350000")))
		assert.True(t, result.Groups[0].CurrentValueKRW.Equal(dec("700000")))
	})

	t.Run("gold uses the live price when available", func(t *testing.T) {
		svc := newPortfolioService(nil, &fakeGoldResolver{price: dec("410000")}, config.LastRate)

		result := svc.ValuePortfolio(ctx, []models.Asset{asset(1, models.AssetTypeGold, "1.5", "350000")}, asOf)

		require.Len(t, result.Groups, 1)
		assert.True(t, result.Groups[0].CurrentValueKRW.Equal(dec("615000")))
	})

	t.Run("gold without a usable price is excluded entirely", func(t *testing.T) {
		svc := newPortfolioService(nil, nil, config.LastRate)

		result := svc.ValuePortfolio(ctx, []models.Asset{
			asset(1, models.AssetTypeKRW, "1", "0"),
			asset(2, models.AssetTypeGold, "3", "0"),
		}, asOf)

		require.Len(t, result.Groups, 1)
		assert.Equal(t, models.AssetTypeKRW, result.Groups[0].AssetType)
		assert.True(t, result.TotalKRW.Equal(dec("10000")))
	})

	t.Run("foreign currency without a rate is excluded", func(t *testing.T) {
		svc := newPortfolioService(map[string]decimal.Decimal{"USD:20240102": dec("1300")}, nil, config.LastRate)

		result := svc.ValuePortfolio(ctx, []models.Asset{
			asset(1, models.AssetTypeJPY, "10000", "9.1"),
			asset(2, models.AssetTypeUSD, "1", "0"),
		}, asOf)

		require.Len(t, result.Groups, 1)
		assert.Equal(t, models.AssetTypeUSD, result.Groups[0].AssetType)
		assert.True(t, result.TotalKRW.Equal(dec("1300")))
	})

	t.Run("unknown asset types are skipped", func(t *testing.T) {
		svc := newPortfolioService(nil, nil, config.LastRate)

		result := svc.ValuePortfolio(ctx, []models.Asset{asset(1, models.AssetType("BTC"), "1", "1")}, asOf)

		assert.Empty(t, result.Groups)
		assert.True(t, result.TotalKRW.IsZero())
	})

	t.Run("rounds half up to two places", func(t *testing.T) {
		svc := newPortfolioService(map[string]decimal.Decimal{"CNY:20240102": dec("180.555")}, nil, config.LastRate)

		result := svc.ValuePortfolio(ctx, []models.Asset{asset(1, models.AssetTypeCNY, "0.125", "0")}, asOf)

		require.Len(t, result.Groups, 1)
		group := result.Groups[0]
		assert.Equal(t, "0.13", group.Amount.StringFixed(2))
		assert.True(t, group.Amount.Equal(dec("0.13")))
		assert.True(t, group.ExchangeRate.Equal(dec("180.56")))
		// 0.125 * 180.555 = 22.569375
		assert.True(t, group.CurrentValueKRW.Equal(dec("22.57")))
	})

	t.Run("the total is the sum of the rounded group values", func(t *testing.T) {
		svc := newPortfolioService(map[string]decimal.Decimal{
			"USD:20240102": dec("0.005"),
			"CNY:20240102": dec("0.005"),
		}, nil, config.LastRate)

		result := svc.ValuePortfolio(ctx, []models.Asset{
			asset(1, models.AssetTypeUSD, "1", "0"),
			asset(2, models.AssetTypeCNY, "1", "0"),
		}, asOf)

		require.Len(t, result.Groups, 2)
		assert.True(t, result.Groups[0].CurrentValueKRW.Equal(dec("0.01")))
		assert.True(t, result.Groups[1].CurrentValueKRW.Equal(dec("0.01")))
		assert.True(t, result.TotalKRW.Equal(dec("0.02")))
	})

	t.Run("the last computed rate is reported for a group by default", func(t *testing.T) {
		gold := &fakeGoldResolver{err: services.ErrRateNotFound}
		svc := services.NewPortfolioService(&fakeRateResolver{}, gold, config.ValuationConfig{KRWUnitValue: 10000})

		result := svc.ValuePortfolio(ctx, []models.Asset{
			asset(1, models.AssetTypeGold, "1", "300000"),
			asset(2, models.AssetTypeGold, "3", "320000"),
		}, asOf)

		require.Len(t, result.Groups, 1)
		assert.True(t, result.Groups[0].ExchangeRate.Equal(dec("320000")))
		assert.True(t, result.Groups[0].CurrentValueKRW.Equal(dec("1260000")))
	})

	t.Run("weighted aggregation averages by amount", func(t *testing.T) {
		gold := &fakeGoldResolver{err: services.ErrRateNotFound}
		svc := services.NewPortfolioService(&fakeRateResolver{}, gold, config.ValuationConfig{
			KRWUnitValue:    10000,
			RateAggregation: config.WeightedRate,
		})

		result := svc.ValuePortfolio(ctx, []models.Asset{
			asset(1, models.AssetTypeGold, "1", "300000"),
			asset(2, models.AssetTypeGold, "3", "320000"),
		}, asOf)

		require.Len(t, result.Groups, 1)
		assert.True(t, result.Groups[0].ExchangeRate.Equal(dec("315000")))
		assert.True(t, result.Groups[0].CurrentValueKRW.Equal(dec("1260000")))
	})

	t.Run("an empty portfolio totals zero", func(t *testing.T) {
		svc := newPortfolioService(nil, nil, config.LastRate)

		result := svc.ValuePortfolio(ctx, nil, asOf)

		assert.Empty(t, result.Groups)
		assert.True(t, result.TotalKRW.Equal(decimal.Zero))
	})
}

func TestResolveUnitValue(t *testing.T) {
	ctx := context.Background()
	svc := newPortfolioService(map[string]decimal.Decimal{"JPY:20240102": dec("9.12")}, &fakeGoldResolver{price: dec("400000")}, config.LastRate)

	krw, err := svc.ResolveUnitValue(ctx, models.AssetTypeKRW, day(2024, 1, 2))
	require.NoError(t, err)
	assert.True(t, krw.Equal(dec("10000")))

	jpy, err := svc.ResolveUnitValue(ctx, models.AssetTypeJPY, day(2024, 1, 2))
	require.NoError(t, err)
	assert.True(t, jpy.Equal(dec("9.12")))

	gold, err := svc.ResolveUnitValue(ctx, models.AssetTypeGold, day(2024, 1, 2))
	require.NoError(t, err)
	assert.True(t, gold.Equal(dec("400000")))

	_, err = svc.ResolveUnitValue(ctx, models.AssetType("BTC"), day(2024, 1, 2))
	assert.ErrorIs(t, err, services.ErrRateNotFound)
}
