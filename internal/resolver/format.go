package resolver

import (
	"strings"

	"github.com/UnknownOlympus/locator/internal/models"
)

// DefaultStateAbbreviations lists the only states shortened in labels.
var DefaultStateAbbreviations = map[string]string{
	"North Carolina": "NC",
	"South Carolina": "SC",
}

// qualifies keeps records inside the country that look like an address,
// a locality, a county, a ZIP code or a named place.
func qualifies(res models.GeocodeResult, country string) bool {
	addr := res.Address
	if addr.CountryCode != country {
		return false
	}

	return addr.HouseNumber != "" ||
		addr.Locality() != "" ||
		addr.County != "" ||
		addr.Postcode != "" ||
		res.Class == "place"
}

// FormatLabel builds the short "123 Main St, Charlotte, NC, 28202" label.
// A house number without a road is dropped.
func FormatLabel(addr models.Address, abbreviations map[string]string) string {
	parts := make([]string, 0, 4)

	switch {
	case addr.HouseNumber != "" && addr.Road != "":
		parts = append(parts, addr.HouseNumber+" "+addr.Road)
	case addr.Road != "":
		parts = append(parts, addr.Road)
	}

	if locality := addr.Locality(); locality != "" {
		parts = append(parts, locality)
	}

	if addr.State != "" {
		state := addr.State
		if abbr, ok := abbreviations[state]; ok {
			state = abbr
		}
		parts = append(parts, state)
	}

	if addr.Postcode != "" {
		parts = append(parts, addr.Postcode)
	}

	return strings.Join(parts, ", ")
}

func classify(res models.GeocodeResult) models.SuggestionKind {
	addr := res.Address
	switch {
	case res.Type == "postcode":
		return models.KindZip
	case addr.HouseNumber != "" || addr.Road != "":
		return models.KindAddress
	case addr.Locality() != "":
		return models.KindCity
	case addr.County != "":
		return models.KindCounty
	case addr.Postcode != "":
		return models.KindZip
	default:
		return models.KindCity
	}
}

func (r *Resolver) toSuggestions(results []models.GeocodeResult) []models.Suggestion {
	suggestions := make([]models.Suggestion, 0, len(results))
	for _, res := range results {
		if !qualifies(res, r.cfg.CountryCode) {
			continue
		}

		kind := res.Type
		if kind == "" {
			kind = "address"
		}

		suggestions = append(suggestions, models.Suggestion{
			Label:     res.DisplayName,
			Formatted: FormatLabel(res.Address, r.cfg.StateAbbreviations),
			Latitude:  res.Coordinates.Latitude,
			Longitude: res.Coordinates.Longitude,
			Kind:      classify(res),
			Type:      kind,
			Address:   res.Address,
			Raw:       res.Raw,
		})
	}
	return suggestions
}
