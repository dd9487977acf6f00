package services_test

import (
	"context"
	"time"

	"investmanager/src/clients/ecos"
	"investmanager/src/models"
	"investmanager/src/services"
	"investmanager/src/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockECOSClient is a mock implementation of ecos.ECOSServiceClientI
type MockECOSClient struct {
	mock.Mock
}

func (m *MockECOSClient) GetStatisticSearch(ctx context.Context, query ecos.StatisticQuery) (*ecos.GetStatisticSearchResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ecos.GetStatisticSearchResponse), args.Error(1)
}

func rowResponse(value string) *ecos.GetStatisticSearchResponse {
	return &ecos.GetStatisticSearchResponse{
		StatisticSearch: &ecos.StatisticSearch{
			ListTotalCount: 1,
			Rows:           []ecos.StatisticRow{{DataValue: value}},
		},
	}
}

func dailyQuery(itemCode, day string) ecos.StatisticQuery {
	return ecos.StatisticQuery{StatCode: "731Y001", Frequency: "D", Start: day, End: day, ItemCode: itemCode}
}

func goldQuery(month string) ecos.StatisticQuery {
	return ecos.StatisticQuery{StatCode: "902Y003", Frequency: "M", Start: month, End: month, ItemCode: "010102"}
}

// fakeRateResolver answers from a fixed table keyed like the rate cache.
type fakeRateResolver struct {
	rates map[string]decimal.Decimal
	calls []string
}

func (f *fakeRateResolver) ResolveRate(_ context.Context, code models.AssetType, date time.Time) (decimal.Decimal, error) {
	key := services.RateCacheKey(string(code), date)
	f.calls = append(f.calls, key)
	rate, ok := f.rates[key]
	if !ok {
		return decimal.Zero, services.ErrRateNotFound
	}
	return rate, nil
}

type fakeGoldResolver struct {
	price decimal.Decimal
	err   error
}

func (f *fakeGoldResolver) ResolveGoldPriceKRW(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return f.price, f.err
}

func newCache() *utils.TTLCache[decimal.Decimal] {
	return utils.NewTTLCache[decimal.Decimal]()
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
