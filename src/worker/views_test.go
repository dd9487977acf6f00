package worker_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"investmanager/src/models"
	"investmanager/src/services"
	"investmanager/src/worker"
	"investmanager/src/worker/controllers"
	"investmanager/src/worker/handlers"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWarmer struct {
	dates []time.Time
}

func (s *stubWarmer) Warm(_ context.Context, date time.Time) []services.WarmResult {
	s.dates = append(s.dates, date)
	return []services.WarmResult{{Code: models.AssetTypeGold, Rate: decimal.NewFromInt(313469)}}
}

func (s *stubWarmer) WarmToday(ctx context.Context) []services.WarmResult {
	return s.Warm(ctx, time.Now())
}

func newWorkerServer(t *testing.T) (*httptest.Server, *stubWarmer) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	warmer := &stubWarmer{}
	server := worker.NewServer(handlers.NewHandler(controllers.NewController(warmer, time.UTC)), logger)
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)
	return ts, warmer
}

func TestWorkerAlive(t *testing.T) {
	ts, _ := newWorkerServer(t)

	res, err := http.Get(ts.URL + "/alive")
	require.NoError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Im alive!", string(body))
}

func TestWarmRatesEndpoint(t *testing.T) {
	ts, warmer := newWorkerServer(t)

	res, err := http.Post(ts.URL+"/api/rates/warm?date=2024-02-29", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Date    string `json:"date"`
		Results []struct {
			Code string  `json:"code"`
			Rate float64 `json:"rate"`
		} `json:"results"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "2024-02-29", body.Date)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "GOLD", body.Results[0].Code)
	assert.Equal(t, float64(313469), body.Results[0].Rate)
	assert.Equal(t, []time.Time{time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)}, warmer.dates)
}

func TestWarmRatesRejectsBadDate(t *testing.T) {
	ts, warmer := newWorkerServer(t)

	res, err := http.Post(ts.URL+"/api/rates/warm?date=yesterday", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Empty(t, warmer.dates)
}
