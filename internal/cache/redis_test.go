package cache_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/locator/internal/cache"
	"github.com/UnknownOlympus/locator/internal/metrics"
	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, ttl time.Duration) (*cache.GeocodeCache, *miniredis.Miniredis, *metrics.Metrics) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	return cache.NewGeocodeCache(client, ttl, appMetrics), srv, appMetrics
}

func TestGeocodeCache_GetSet(t *testing.T) {
	ctx := t.Context()

	t.Run("miss on empty cache", func(t *testing.T) {
		gc, _, appMetrics := newCache(t, time.Hour)

		results, ok, err := gc.Get(ctx, "us:8:true:charlotte")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, results)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.CacheLookups.WithLabelValues("miss")), 0)
	})

	t.Run("round trip keeps address details", func(t *testing.T) {
		gc, _, appMetrics := newCache(t, time.Hour)
		stored := []models.GeocodeResult{{
			DisplayName: "Charlotte, Mecklenburg County, North Carolina, United States",
			Coordinates: models.Coordinates{Latitude: 35.2271, Longitude: -80.8431},
			Type:        "city",
			Class:       "place",
			Address:     models.Address{City: "Charlotte", State: "North Carolina", CountryCode: "us"},
		}}

		require.NoError(t, gc.Set(ctx, "us:8:true:charlotte", stored))
		results, ok, err := gc.Get(ctx, "us:8:true:charlotte")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, stored, results)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.CacheLookups.WithLabelValues("hit")), 0)
	})

	t.Run("empty result set is cached as a hit", func(t *testing.T) {
		gc, _, _ := newCache(t, time.Hour)

		require.NoError(t, gc.Set(ctx, "us:1:false:nowhere", nil))
		results, ok, err := gc.Get(ctx, "us:1:false:nowhere")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, results)
	})

	t.Run("entries expire after ttl", func(t *testing.T) {
		gc, srv, _ := newCache(t, time.Minute)

		require.NoError(t, gc.Set(ctx, "us:1:false:raleigh", []models.GeocodeResult{}))
		srv.FastForward(2 * time.Minute)
		_, ok, err := gc.Get(ctx, "us:1:false:raleigh")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupt payload returns error", func(t *testing.T) {
		gc, srv, appMetrics := newCache(t, time.Hour)
		require.NoError(t, srv.Set("locator:geocode:broken", "not json"))

		_, ok, err := gc.Get(ctx, "broken")

		require.Error(t, err)
		assert.False(t, ok)
		require.ErrorContains(t, err, "failed to decode cached geocode results")
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.CacheLookups.WithLabelValues("error")), 0)
	})

	t.Run("server down returns error", func(t *testing.T) {
		gc, srv, _ := newCache(t, time.Hour)
		srv.Close()

		_, ok, err := gc.Get(ctx, "any")

		require.Error(t, err)
		assert.False(t, ok)
		require.Error(t, gc.Set(ctx, "any", []models.GeocodeResult{}))
	})
}

func TestNewClient(t *testing.T) {
	t.Run("invalid url", func(t *testing.T) {
		client, err := cache.NewClient(t.Context(), "://bad")

		require.Error(t, err)
		assert.Nil(t, client)
		require.ErrorContains(t, err, "failed to parse redis url")
	})

	t.Run("connects to server", func(t *testing.T) {
		srv := miniredis.RunT(t)

		client, err := cache.NewClient(t.Context(), "redis://"+srv.Addr()+"/0")

		require.NoError(t, err)
		require.NotNil(t, client)
		_ = client.Close()
	})
}
