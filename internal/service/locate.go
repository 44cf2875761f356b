package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/locator/internal/geocoding"
	"github.com/UnknownOlympus/locator/internal/models"
)

// ErrAddressNotFound is returned when no address variation produced a result
// inside the configured country.
var ErrAddressNotFound = errors.New("address could not be geocoded")

// PostalAddress is a firm address split into the parts used to build fallbacks.
type PostalAddress struct {
	Street string
	City   string
	State  string
	Zip    string
}

// AddressLocator geocodes postal addresses with progressively simpler variations.
type AddressLocator struct {
	provider geocoding.Provider
	country  string
	log      *slog.Logger
}

// NewAddressLocator creates an AddressLocator restricted to country.
func NewAddressLocator(provider geocoding.Provider, country string, log *slog.Logger) *AddressLocator {
	return &AddressLocator{provider: provider, country: strings.ToLower(country), log: log}
}

// Locate converts addr to coordinates.
//
// Uses a progressive fallback strategy:
// 1. Try the full street address
// 2. Try city, state and ZIP code
// 3. Try city and state
// 4. Try the ZIP code alone
//
// An empty answer moves on to the next variation; any other error is returned immediately.
func (al *AddressLocator) Locate(ctx context.Context, addr PostalAddress) (models.Coordinates, error) {
	variations := addressFallbacks(addr)

	for idx, variation := range variations {
		results, err := al.provider.Search(ctx, geocoding.SearchRequest{Query: variation, Limit: 1})
		if err != nil {
			return models.Coordinates{}, fmt.Errorf("failed to geocode %q: %w", variation, err)
		}

		if len(results) > 0 && results[0].Address.CountryCode == al.country {
			if idx == 0 {
				al.log.DebugContext(ctx, "Geocoded with full address", "address", variation)
			} else {
				al.log.InfoContext(ctx, "Geocoded using fallback address",
					"original", variations[0],
					"fallback", variation,
					"fallback_level", idx)
			}
			return results[0].Coordinates, nil
		}

		al.log.DebugContext(ctx, "Address variation returned no results, trying fallback",
			"variation", variation,
			"fallback_level", idx)
	}

	al.log.WarnContext(ctx, "All address fallbacks exhausted",
		"address", strings.Join(variations, " | "),
		"variations_tried", len(variations))
	return models.Coordinates{}, ErrAddressNotFound
}

func addressFallbacks(addr PostalAddress) []string {
	seen := make(map[string]bool)
	variations := []string{}

	addVariation := func(v string) {
		v = strings.TrimSpace(v)
		if v != "" && !seen[v] {
			seen[v] = true
			variations = append(variations, v)
		}
	}

	stateZip := strings.TrimSpace(addr.State + " " + addr.Zip)
	addVariation(joinNonEmpty(addr.Street, addr.City, stateZip))
	addVariation(joinNonEmpty(addr.City, stateZip))
	addVariation(joinNonEmpty(addr.City, addr.State))
	addVariation(addr.Zip)

	return variations
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

func firmAddress(firm models.LawFirm) PostalAddress {
	return PostalAddress{Street: firm.StreetAddress, City: firm.City, State: firm.State, Zip: firm.ZipCode}
}

func applicationAddress(app models.Application) PostalAddress {
	return PostalAddress{Street: app.StreetAddress, City: app.City, State: app.State, Zip: app.ZipCode}
}
