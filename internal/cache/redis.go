// Package cache stores geocoder responses in Redis so repeated address lookups
// stay inside the geocoder's fair-use limits.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/locator/internal/metrics"
	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "locator:geocode:"

// GeocodeCache is a Redis-backed cache mapping search keys to geocoder results.
type GeocodeCache struct {
	client  redis.UniversalClient
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewGeocodeCache creates a cache that keeps entries for ttl.
func NewGeocodeCache(client redis.UniversalClient, ttl time.Duration, m *metrics.Metrics) *GeocodeCache {
	return &GeocodeCache{client: client, ttl: ttl, metrics: m}
}

// NewClient parses a redis:// URL and returns a connected client.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Get returns the cached results for key. The boolean reports a hit;
// an empty cached slice is a hit too, so known misses are not re-queried.
func (gc *GeocodeCache) Get(ctx context.Context, key string) ([]models.GeocodeResult, bool, error) {
	payload, err := gc.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		gc.metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		gc.metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("failed to read geocode cache: %w", err)
	}

	var results []models.GeocodeResult
	if err = json.Unmarshal(payload, &results); err != nil {
		gc.metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("failed to decode cached geocode results: %w", err)
	}

	gc.metrics.CacheLookups.WithLabelValues("hit").Inc()
	return results, true, nil
}

// Set stores results under key with the configured TTL.
func (gc *GeocodeCache) Set(ctx context.Context, key string, results []models.GeocodeResult) error {
	if results == nil {
		results = []models.GeocodeResult{}
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode geocode results: %w", err)
	}

	if err = gc.client.Set(ctx, keyPrefix+key, payload, gc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write geocode cache: %w", err)
	}

	return nil
}
