package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"investmanager/src/clients/ecos"
	"investmanager/src/config"
	"investmanager/src/models"
	"investmanager/src/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrRateNotFound is returned whenever a rate or price cannot be resolved. The
// underlying error stays in the chain, so context deadlines remain detectable.
var ErrRateNotFound = errors.New("rate not found")

const goldCacheCode = "gold"

// RateCache is the slice of a key/value store the resolvers need.
type RateCache interface {
	Get(ctx context.Context, key string) (decimal.Decimal, bool)
	Set(ctx context.Context, key string, value decimal.Decimal, ttl time.Duration)
}

type RateResolver interface {
	ResolveRate(ctx context.Context, code models.AssetType, date time.Time) (decimal.Decimal, error)
}

// RateCacheKey builds the cache key for a code on a calendar day.
func RateCacheKey(code string, date time.Time) string {
	return code + ":" + utils.CompactDate(date)
}

type RateService struct {
	client          ecos.ECOSServiceClientI
	cache           RateCache
	series          map[models.AssetType]config.SeriesConfig
	ttl             time.Duration
	maxLookbackDays int
}

func NewRateService(client ecos.ECOSServiceClientI, cache RateCache, cfg config.ECOSConfig, ttl time.Duration) (*RateService, error) {
	series := make(map[models.AssetType]config.SeriesConfig)
	for _, code := range []models.AssetType{models.AssetTypeUSD, models.AssetTypeJPY, models.AssetTypeCNY} {
		s, ok := cfg.SeriesFor(string(code))
		if !ok {
			return nil, fmt.Errorf("no series configured for %s", code)
		}
		series[code] = s
	}
	return &RateService{
		client:          client,
		cache:           cache,
		series:          series,
		ttl:             ttl,
		maxLookbackDays: cfg.MaxLookbackDays,
	}, nil
}

// ResolveRate returns the won price of one unit of code on date. When nothing was
// published for date (weekends, holidays) earlier days are tried, at most
// maxLookbackDays of them. The result is cached under the requested date.
func (s *RateService) ResolveRate(ctx context.Context, code models.AssetType, date time.Time) (decimal.Decimal, error) {
	series, ok := s.series[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unsupported currency %s", ErrRateNotFound, code)
	}

	key := RateCacheKey(string(code), date)
	logger := utils.LoggerFromContext(ctx).WithFields(logrus.Fields{"currency": code, "date": utils.CompactDate(date)})
	if rate, ok := s.cache.Get(ctx, key); ok {
		return rate, nil
	}

	day := date
	for attempt := 0; attempt <= s.maxLookbackDays; attempt++ {
		if err := ctx.Err(); err != nil {
			return decimal.Zero, fmt.Errorf("%w: %s: %w", ErrRateNotFound, key, err)
		}

		period := periodFor(series.Frequency, day)
		resp, err := s.client.GetStatisticSearch(ctx, ecos.StatisticQuery{
			StatCode:  series.StatCode,
			Frequency: series.Frequency,
			Start:     period,
			End:       period,
			ItemCode:  series.ItemCode,
		})
		if errors.Is(err, ecos.ErrNoData) {
			logger.WithField("queried", period).Debug("no rate published, stepping back one day")
			day = day.AddDate(0, 0, -1)
			continue
		}
		if err != nil {
			logger.WithError(err).Warn("rate lookup failed")
			return decimal.Zero, fmt.Errorf("%w: %s: %w", ErrRateNotFound, key, err)
		}

		rate, err := ParseDataValue(resp.StatisticSearch.Rows[0].DataValue)
		if err != nil {
			logger.WithError(err).Warn("unparseable rate")
			return decimal.Zero, fmt.Errorf("%w: %s: %w", ErrRateNotFound, key, err)
		}
		if code == models.AssetTypeJPY {
			// quoted per 100 yen
			rate = rate.Div(decimal.NewFromInt(100)).Round(3)
		}

		s.cache.Set(ctx, key, rate, s.ttl)
		return rate, nil
	}

	logger.WithField("lookback_days", s.maxLookbackDays).Warn("no rate found within lookback window")
	return decimal.Zero, fmt.Errorf("%w: %s: nothing published in the last %d days", ErrRateNotFound, key, s.maxLookbackDays)
}

// ParseDataValue parses a published figure, tolerating thousands separators.
func ParseDataValue(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(value), ",", ""))
}

func periodFor(frequency string, day time.Time) string {
	if strings.EqualFold(frequency, "M") {
		return day.Format(utils.CompactMonthLayout)
	}
	return utils.CompactDate(day)
}
