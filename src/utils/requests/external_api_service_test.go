package requests_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"investmanager/src/utils/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	var got *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	api := requests.NewExternalAPIService(time.Second)

	res, err := api.Get(context.Background(), ts.URL+"/rates", "", url.Values{"date": {"20240102"}})
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "20240102", got.URL.Query().Get("date"))
	assert.Empty(t, got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))

	res, err = api.Get(context.Background(), ts.URL+"/rates", "secret", nil)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
	assert.Empty(t, got.URL.RawQuery)
}

func TestGetHonoursContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := requests.NewExternalAPIService(time.Second).Get(ctx, ts.URL, "", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
