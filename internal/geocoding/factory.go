package geocoding

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/locator/internal/metrics"
	"googlemaps.github.io/maps"
)

// ProviderType names a geocoding backend.
type ProviderType string

const (
	ProviderTypeGoogle    ProviderType = "google"
	ProviderTypeNominatim ProviderType = "nominatim"
)

// ProviderConfig selects and tunes a geocoding backend.
type ProviderConfig struct {
	Type        ProviderType
	APIKey      string        // required by Google
	BaseURL     string        // Nominatim endpoint override
	UserAgent   string        // sent to Nominatim
	CountryCode string        // every search is restricted to this country
	RateLimit   int           // outbound requests per second
	Timeout     time.Duration // per request
	Logger      *slog.Logger
}

// NewProvider returns the bare backend named by config.Type.
// Nominatim needs no credentials; Google requires an API key.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeNominatim:
		return newNominatimProvider(config), nil
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// Build returns the backend named by config wrapped with request metrics
// and, when cache is not nil, served through the shared geocode cache.
// Cache hits therefore never show up in the provider request metrics.
func Build(config ProviderConfig, cache Cache, m *metrics.Metrics) (Provider, error) {
	base, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	var provider Provider = NewInstrumentedProvider(base, string(config.Type), m)
	if cache != nil {
		provider = NewCachedProvider(provider, cache, config.CountryCode, config.Logger)
	}
	return provider, nil
}

func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	opts := []maps.ClientOption{maps.WithAPIKey(config.APIKey)}
	if config.RateLimit > 0 {
		opts = append(opts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.CountryCode, config.Logger), nil
}

func newNominatimProvider(config ProviderConfig) Provider {
	return NewNominatimProvider(NominatimOptions{
		BaseURL:     config.BaseURL,
		UserAgent:   config.UserAgent,
		CountryCode: config.CountryCode,
		RateLimit:   config.RateLimit,
		Timeout:     config.Timeout,
	}, config.Logger)
}
