package geocoding_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/locator/internal/geocoding"
	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/UnknownOlympus/locator/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	entries map[string][]models.GeocodeResult
	getErr  error
	setErr  error
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]models.GeocodeResult)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]models.GeocodeResult, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	res, ok := c.entries[key]
	return res, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, results []models.GeocodeResult) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = results
	return nil
}

var charlotteResult = models.GeocodeResult{
	DisplayName: "Charlotte, Mecklenburg County, North Carolina, United States",
	Coordinates: models.Coordinates{Latitude: 35.2271, Longitude: -80.8431},
	Class:       "place",
	Type:        "city",
	Address:     models.Address{City: "Charlotte", State: "North Carolina", CountryCode: "us"},
}

func TestCachedProvider_Search(t *testing.T) {
	ctx := t.Context()

	t.Run("miss then hit", func(t *testing.T) {
		next := mocks.NewProvider(t)
		cache := newMemoryCache()
		provider := geocoding.NewCachedProvider(next, cache, "US", slog.Default())
		req := geocoding.SearchRequest{Query: "Charlotte", Limit: 8, Dedupe: true}

		next.On("Search", ctx, req).Return([]models.GeocodeResult{charlotteResult}, nil).Once()

		first, err := provider.Search(ctx, req)
		require.NoError(t, err)
		second, err := provider.Search(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("query is normalized", func(t *testing.T) {
		next := mocks.NewProvider(t)
		cache := newMemoryCache()
		provider := geocoding.NewCachedProvider(next, cache, "us", slog.Default())

		next.On("Search", ctx, geocoding.SearchRequest{Query: "Charlotte  NC", Limit: 1}).
			Return([]models.GeocodeResult{charlotteResult}, nil).Once()

		_, err := provider.Search(ctx, geocoding.SearchRequest{Query: "Charlotte  NC", Limit: 1})
		require.NoError(t, err)
		res, err := provider.Search(ctx, geocoding.SearchRequest{Query: "  charlotte nc ", Limit: 1})
		require.NoError(t, err)

		assert.Len(t, res, 1)
		assert.Contains(t, cache.entries, "us:1:false:charlotte nc")
	})

	t.Run("limit is part of the key", func(t *testing.T) {
		next := mocks.NewProvider(t)
		provider := geocoding.NewCachedProvider(next, newMemoryCache(), "us", slog.Default())

		next.On("Search", ctx, geocoding.SearchRequest{Query: "Charlotte", Limit: 1}).
			Return([]models.GeocodeResult{charlotteResult}, nil).Once()
		next.On("Search", ctx, geocoding.SearchRequest{Query: "Charlotte", Limit: 8, Dedupe: true}).
			Return([]models.GeocodeResult{charlotteResult}, nil).Once()

		_, err := provider.Search(ctx, geocoding.SearchRequest{Query: "Charlotte", Limit: 1})
		require.NoError(t, err)
		_, err = provider.Search(ctx, geocoding.SearchRequest{Query: "Charlotte", Limit: 8, Dedupe: true})
		require.NoError(t, err)
	})

	t.Run("provider errors are not cached", func(t *testing.T) {
		next := mocks.NewProvider(t)
		cache := newMemoryCache()
		provider := geocoding.NewCachedProvider(next, cache, "us", slog.Default())
		req := geocoding.SearchRequest{Query: "Charlotte", Limit: 1}

		next.On("Search", ctx, req).Return(nil, errors.New("boom")).Once()

		res, err := provider.Search(ctx, req)

		require.Error(t, err)
		assert.Nil(t, res)
		assert.Zero(t, cache.sets)
	})

	t.Run("cache failures fall through", func(t *testing.T) {
		next := mocks.NewProvider(t)
		cache := newMemoryCache()
		cache.getErr = errors.New("redis down")
		cache.setErr = errors.New("redis down")
		provider := geocoding.NewCachedProvider(next, cache, "us", slog.Default())
		req := geocoding.SearchRequest{Query: "Charlotte", Limit: 1}

		next.On("Search", ctx, req).Return([]models.GeocodeResult{charlotteResult}, nil).Twice()

		for range 2 {
			res, err := provider.Search(ctx, req)
			require.NoError(t, err)
			assert.Len(t, res, 1)
		}
	})
}
