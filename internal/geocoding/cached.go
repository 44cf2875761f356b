package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/locator/internal/models"
)

// Cache stores geocoder responses keyed by normalized request.
type Cache interface {
	Get(ctx context.Context, key string) ([]models.GeocodeResult, bool, error)
	Set(ctx context.Context, key string, results []models.GeocodeResult) error
}

// CachedProvider serves repeated searches from a Cache and only forwards misses.
// Cache failures are logged and never fail the search.
type CachedProvider struct {
	next    Provider
	cache   Cache
	country string
	log     *slog.Logger
}

// NewCachedProvider wraps next with cache. country is part of every key so
// switching the configured country never serves stale results.
func NewCachedProvider(next Provider, cache Cache, country string, log *slog.Logger) *CachedProvider {
	return &CachedProvider{next: next, cache: cache, country: strings.ToLower(country), log: log}
}

func (cp *CachedProvider) Search(ctx context.Context, req SearchRequest) ([]models.GeocodeResult, error) {
	key := cp.key(req)

	results, ok, err := cp.cache.Get(ctx, key)
	if err != nil {
		cp.log.WarnContext(ctx, "Geocode cache lookup failed", "key", key, "error", err)
	} else if ok {
		cp.log.DebugContext(ctx, "Geocode cache hit", "key", key, "results", len(results))
		return results, nil
	}

	results, err = cp.next.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	if err = cp.cache.Set(ctx, key, results); err != nil {
		cp.log.WarnContext(ctx, "Geocode cache store failed", "key", key, "error", err)
	}

	return results, nil
}

func (cp *CachedProvider) key(req SearchRequest) string {
	query := strings.Join(strings.Fields(strings.ToLower(req.Query)), " ")
	return fmt.Sprintf("%s:%d:%t:%s", cp.country, req.Limit, req.Dedupe, query)
}
