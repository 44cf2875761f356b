package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/UnknownOlympus/locator/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps geocoding services.
type GoogleProvider struct {
	client      GoogleAPIClient // client is the Google Maps API client
	countryCode string          // countryCode restricts results through component filtering
	log         *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given client, country and logger.
func NewGoogleProvider(client GoogleAPIClient, countryCode string, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, countryCode: strings.ToUpper(countryCode), log: log}
}

// Search geocodes the query with the Google Maps Geocoding API and maps every
// result into the same address breakdown the Nominatim provider produces.
// Google has no dedupe switch, so SearchRequest.Dedupe is ignored.
func (gp *GoogleProvider) Search(ctx context.Context, sreq SearchRequest) ([]models.GeocodeResult, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "query", sreq.Query)

	req := maps.GeocodingRequest{
		Address:    sreq.Query,
		Components: map[maps.Component]string{maps.ComponentCountry: gp.countryCode},
	}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if sreq.Limit > 0 && len(geocodeResponse) > sreq.Limit {
		geocodeResponse = geocodeResponse[:sreq.Limit]
	}

	results := make([]models.GeocodeResult, 0, len(geocodeResponse))
	for _, res := range geocodeResponse {
		raw, err := json.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("%w: encode google result: %w", ErrMalformedResponse, err)
		}

		results = append(results, models.GeocodeResult{
			DisplayName: res.FormattedAddress,
			Coordinates: models.Coordinates{
				Latitude:  res.Geometry.Location.Lat,
				Longitude: res.Geometry.Location.Lng,
			},
			Type:    firstOr(res.Types, ""),
			Class:   googleClass(res.Types),
			Address: googleAddress(res.AddressComponents),
			Raw:     raw,
		})
	}

	return results, nil
}

func googleAddress(components []maps.AddressComponent) models.Address {
	var addr models.Address
	for _, comp := range components {
		switch {
		case slices.Contains(comp.Types, "street_number"):
			addr.HouseNumber = comp.LongName
		case slices.Contains(comp.Types, "route"):
			addr.Road = comp.LongName
		case slices.Contains(comp.Types, "locality"):
			addr.City = comp.LongName
		case slices.Contains(comp.Types, "sublocality"), slices.Contains(comp.Types, "neighborhood"):
			if addr.Village == "" {
				addr.Village = comp.LongName
			}
		case slices.Contains(comp.Types, "administrative_area_level_2"):
			addr.County = comp.LongName
		case slices.Contains(comp.Types, "administrative_area_level_1"):
			addr.State = comp.LongName
		case slices.Contains(comp.Types, "postal_code"):
			addr.Postcode = comp.LongName
		case slices.Contains(comp.Types, "country"):
			addr.CountryCode = strings.ToLower(comp.ShortName)
		}
	}
	return addr
}

// googleClass maps Google result types onto the Nominatim "class" vocabulary
// the suggestion filter understands.
func googleClass(types []string) string {
	for _, t := range types {
		switch t {
		case "locality", "postal_code", "administrative_area_level_2", "administrative_area_level_1":
			return "place"
		case "street_address", "premise", "route":
			return "highway"
		}
	}
	return ""
}

func firstOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return values[0]
}
