package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/locator/internal/models"
	"golang.org/x/time/rate"
)

// Nominatim defaults.
const (
	NominatimBaseURL   = "https://nominatim.openstreetmap.org/search"
	NominatimUserAgent = "Locator-Closing-Search/1.0 (https://github.com/UnknownOlympus/locator)"
)

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// This is a free geocoding service with usage limits (1 request/second for fair use),
// so every request waits on a shared limiter.
type NominatimProvider struct {
	client      HTTPClient    // HTTP client for making requests
	baseURL     string        // Base URL for the Nominatim search endpoint
	countryCode string        // ISO 3166-1 alpha-2 code every search is restricted to
	log         *slog.Logger  // Logger for logging operations
	limiter     *rate.Limiter // Outbound rate limiter
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NominatimOptions configures a NominatimProvider. Zero values fall back to defaults.
type NominatimOptions struct {
	BaseURL     string
	UserAgent   string
	CountryCode string
	RateLimit   int           // requests per second
	Timeout     time.Duration // per-request timeout of the default HTTP client
}

func (o NominatimOptions) withDefaults() NominatimOptions {
	const (
		defaultTimeout   = 10 * time.Second
		defaultRateLimit = 1
	)
	if o.BaseURL == "" {
		o.BaseURL = NominatimBaseURL
	}
	if o.UserAgent == "" {
		o.UserAgent = NominatimUserAgent
	}
	if o.CountryCode == "" {
		o.CountryCode = "us"
	}
	if o.RateLimit <= 0 {
		o.RateLimit = defaultRateLimit
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return o
}

// nominatimAddress mirrors the addressdetails block of a Nominatim record.
type nominatimAddress struct {
	HouseNumber string `json:"house_number"`
	Road        string `json:"road"`
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	County      string `json:"county"`
	State       string `json:"state"`
	Postcode    string `json:"postcode"`
	CountryCode string `json:"country_code"`
}

// nominatimRecord represents one element of the JSON array returned by Nominatim.
type nominatimRecord struct {
	Lat         string            `json:"lat"` // Latitude as string
	Lon         string            `json:"lon"` // Longitude as string
	DisplayName string            `json:"display_name"`
	Type        string            `json:"type"`
	Class       string            `json:"class"`
	Address     *nominatimAddress `json:"address"`
}

// NewNominatimProvider creates a new Nominatim geocoding provider.
// Uses the public Nominatim API endpoint unless opts.BaseURL is set.
func NewNominatimProvider(opts NominatimOptions, log *slog.Logger) *NominatimProvider {
	opts = opts.withDefaults()
	return NewNominatimProviderWithClient(
		&http.Client{Timeout: opts.Timeout},
		opts,
		rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateLimit),
		log,
	)
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client and limiter.
// Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(
	client HTTPClient,
	opts NominatimOptions,
	limiter *rate.Limiter,
	log *slog.Logger,
) *NominatimProvider {
	opts = opts.withDefaults()
	return &NominatimProvider{
		client:      client,
		baseURL:     opts.BaseURL,
		countryCode: opts.CountryCode,
		log:         log,
		limiter:     limiter,
		userAgent:   opts.UserAgent,
	}
}

// Search queries the Nominatim search endpoint restricted to the configured country.
// Address details are always requested so callers can filter and format records.
func (np *NominatimProvider) Search(ctx context.Context, sreq SearchRequest) ([]models.GeocodeResult, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", sreq.Query)
	query.Set("format", "json")
	query.Set("countrycodes", np.countryCode)
	query.Set("addressdetails", "1")
	if sreq.Limit > 0 {
		query.Set("limit", strconv.Itoa(sreq.Limit))
	}
	if sreq.Dedupe {
		query.Set("dedupe", "1")
	}
	reqURL.RawQuery = query.Encode()

	np.log.DebugContext(ctx, "Nominatim request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set required headers per Nominatim usage policy
	req.Header.Set("User-Agent", np.userAgent)
	req.Header.Set("Accept-Language", "en-US,en")

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, &StatusError{Provider: "nominatim", Code: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	np.log.DebugContext(ctx, "Nominatim raw response", "body", string(body))

	results, err := parseNominatim(body)
	if err != nil {
		np.log.ErrorContext(ctx, "Failed to parse Nominatim response", "error", err, "body", string(body))
		return nil, err
	}

	return results, nil
}

// parseNominatim validates a raw Nominatim payload. Each record must carry an
// address block and numeric coordinates; anything else is ErrMalformedResponse.
func parseNominatim(body []byte) ([]models.GeocodeResult, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("%w: decode nominatim response: %w", ErrMalformedResponse, err)
	}

	results := make([]models.GeocodeResult, 0, len(raws))
	for idx, raw := range raws {
		var rec nominatimRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrMalformedResponse, idx, err)
		}
		if rec.Address == nil {
			return nil, fmt.Errorf("%w: record %d has no address", ErrMalformedResponse, idx)
		}

		lat, err := strconv.ParseFloat(rec.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid latitude: %q", ErrMalformedResponse, rec.Lat)
		}
		lon, err := strconv.ParseFloat(rec.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid longitude: %q", ErrMalformedResponse, rec.Lon)
		}

		results = append(results, models.GeocodeResult{
			DisplayName: rec.DisplayName,
			Coordinates: models.Coordinates{Latitude: lat, Longitude: lon},
			Type:        rec.Type,
			Class:       rec.Class,
			Address: models.Address{
				HouseNumber: rec.Address.HouseNumber,
				Road:        rec.Address.Road,
				City:        rec.Address.City,
				Town:        rec.Address.Town,
				Village:     rec.Address.Village,
				County:      rec.Address.County,
				State:       rec.Address.State,
				Postcode:    rec.Address.Postcode,
				CountryCode: rec.Address.CountryCode,
			},
			Raw: raw,
		})
	}

	return results, nil
}
