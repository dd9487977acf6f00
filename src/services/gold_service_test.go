package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"investmanager/src/clients/ecos"
	"investmanager/src/models"
	"investmanager/src/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGoldService(t *testing.T, client *MockECOSClient, cache services.RateCache, rates services.RateResolver) *services.GoldService {
	t.Helper()
	svc, err := services.NewGoldService(client, cache, rates, testECOSConfig, time.Hour)
	require.NoError(t, err)
	return svc
}

func TestResolveGoldPriceKRW(t *testing.T) {
	ctx := context.Background()

	t.Run("converts the previous month's fix into won per don", func(t *testing.T) {
		client := new(MockECOSClient)
		client.On("GetStatisticSearch", mock.Anything, goldQuery("202402")).Return(rowResponse("2000"), nil).Once()
		rates := &fakeRateResolver{rates: map[string]decimal.Decimal{"USD:20240229": dec("1300")}}
		cache := newCache()
		svc := newGoldService(t, client, cache, rates)

		price, err := svc.ResolveGoldPriceKRW(ctx, day(2024, 3, 15))
		require.NoError(t, err)
		assert.True(t, price.Equal(dec("313469")), price.String())
		assert.Equal(t, []string{"USD:20240229"}, rates.calls)

		cached, ok := cache.Get(ctx, "gold:20240315")
		require.True(t, ok)
		assert.True(t, cached.Equal(price))
		client.AssertExpectations(t)
	})

	t.Run("January looks at December of the previous year", func(t *testing.T) {
		client := new(MockECOSClient)
		client.On("GetStatisticSearch", mock.Anything, goldQuery("202312")).Return(rowResponse("2034.5"), nil).Once()
		rates := &fakeRateResolver{rates: map[string]decimal.Decimal{"USD:20231231": dec("1330.25")}}
		svc := newGoldService(t, client, newCache(), rates)

		price, err := svc.ResolveGoldPriceKRW(ctx, day(2024, 1, 3))
		require.NoError(t, err)
		assert.True(t, price.Equal(dec("326297")), price.String())
	})

	t.Run("a cache hit skips both lookups", func(t *testing.T) {
		client := new(MockECOSClient)
		rates := &fakeRateResolver{}
		cache := newCache()
		cache.Set(ctx, "gold:20240315", dec("400000"), time.Hour)
		svc := newGoldService(t, client, cache, rates)

		price, err := svc.ResolveGoldPriceKRW(ctx, day(2024, 3, 15))
		require.NoError(t, err)
		assert.True(t, price.Equal(dec("400000")))
		assert.Empty(t, rates.calls)
		client.AssertNotCalled(t, "GetStatisticSearch", mock.Anything, mock.Anything)
	})

	t.Run("a missing USD rate makes the whole price unavailable", func(t *testing.T) {
		client := new(MockECOSClient)
		client.On("GetStatisticSearch", mock.Anything, goldQuery("202402")).Return(rowResponse("2000"), nil)
		cache := newCache()
		svc := newGoldService(t, client, cache, &fakeRateResolver{})

		_, err := svc.ResolveGoldPriceKRW(ctx, day(2024, 3, 15))
		assert.ErrorIs(t, err, services.ErrRateNotFound)
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("a USD deadline stays detectable", func(t *testing.T) {
		client := new(MockECOSClient)
		client.On("GetStatisticSearch", mock.Anything, goldQuery("202402")).Return(rowResponse("2000"), nil)
		svc := newGoldService(t, client, newCache(), deadlineRateResolver{})

		_, err := svc.ResolveGoldPriceKRW(ctx, day(2024, 3, 15))
		assert.ErrorIs(t, err, services.ErrRateNotFound)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("service errors become not found", func(t *testing.T) {
		for _, serviceErr := range []error{ecos.ErrNoData, errors.New("timeout")} {
			client := new(MockECOSClient)
			client.On("GetStatisticSearch", mock.Anything, mock.Anything).Return(nil, serviceErr)
			rates := &fakeRateResolver{}
			svc := newGoldService(t, client, newCache(), rates)

			_, err := svc.ResolveGoldPriceKRW(ctx, day(2024, 3, 15))
			assert.ErrorIs(t, err, services.ErrRateNotFound)
			assert.Empty(t, rates.calls)
		}
	})
}

type deadlineRateResolver struct{}

func (deadlineRateResolver) ResolveRate(context.Context, models.AssetType, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, fmt.Errorf("%w: USD: %w", services.ErrRateNotFound, context.DeadlineExceeded)
}
