package services

import (
	"context"
	"fmt"
	"time"

	"investmanager/src/clients/ecos"
	"investmanager/src/config"
	"investmanager/src/models"
	"investmanager/src/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DonPerTroyOunce converts a troy ounce (31.1035 g) into don (3.75 g).
var DonPerTroyOunce = decimal.RequireFromString("8.29427")

type GoldPriceResolver interface {
	ResolveGoldPriceKRW(ctx context.Context, date time.Time) (decimal.Decimal, error)
}

type GoldService struct {
	client ecos.ECOSServiceClientI
	cache  RateCache
	rates  RateResolver
	series config.SeriesConfig
	ttl    time.Duration
}

func NewGoldService(client ecos.ECOSServiceClientI, cache RateCache, rates RateResolver, cfg config.ECOSConfig, ttl time.Duration) (*GoldService, error) {
	series, ok := cfg.SeriesFor(string(models.AssetTypeGold))
	if !ok {
		return nil, fmt.Errorf("no series configured for %s", models.AssetTypeGold)
	}
	return &GoldService{client: client, cache: cache, rates: rates, series: series, ttl: ttl}, nil
}

// ResolveGoldPriceKRW returns the won price of one don of gold, using the monthly
// international fix of the month before date's month converted at that month-end's
// USD rate. The result is cached under date.
func (s *GoldService) ResolveGoldPriceKRW(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	key := RateCacheKey(goldCacheCode, date)
	if price, ok := s.cache.Get(ctx, key); ok {
		return price, nil
	}

	monthEnd := utils.LastDayOfPreviousMonth(date)
	logger := utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"date":      utils.CompactDate(date),
		"month_end": utils.CompactDate(monthEnd),
	})

	period := periodFor(s.series.Frequency, monthEnd)
	resp, err := s.client.GetStatisticSearch(ctx, ecos.StatisticQuery{
		StatCode:  s.series.StatCode,
		Frequency: s.series.Frequency,
		Start:     period,
		End:       period,
		ItemCode:  s.series.ItemCode,
	})
	if err != nil {
		logger.WithError(err).Warn("gold price lookup failed")
		return decimal.Zero, fmt.Errorf("%w: %s: %w", ErrRateNotFound, key, err)
	}

	usdPerOunce, err := ParseDataValue(resp.StatisticSearch.Rows[0].DataValue)
	if err != nil {
		logger.WithError(err).Warn("unparseable gold price")
		return decimal.Zero, fmt.Errorf("%w: %s: %w", ErrRateNotFound, key, err)
	}

	usdRate, err := s.rates.ResolveRate(ctx, models.AssetTypeUSD, monthEnd)
	if err != nil {
		logger.WithError(err).Warn("no USD rate for gold conversion")
		return decimal.Zero, fmt.Errorf("%w: %s: usd rate unavailable: %w", ErrRateNotFound, key, err)
	}

	price := usdPerOunce.Mul(usdRate).Div(DonPerTroyOunce).Round(0)
	s.cache.Set(ctx, key, price, s.ttl)
	return price, nil
}
