// Package proximity ranks law firms by great-circle distance from a searched
// location and keeps the map and list surfaces in sync with that ranking.
package proximity

import (
	"cmp"
	"math"
	"slices"

	"github.com/UnknownOlympus/locator/internal/models"
)

// EarthRadiusMiles is the sphere radius used by Distance.
const EarthRadiusMiles = 3959.0

// Distance returns the haversine distance in miles between a and b.
func Distance(a, b models.Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dlat := (b.Latitude - a.Latitude) * math.Pi / 180
	dlon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMiles * c
}

// Rank attaches the distance from origin to every firm with known coordinates
// and sorts ascending. Firms at equal distance keep their input order. Firms
// without coordinates are left out. The result is never nil.
func Rank(origin models.Coordinates, firms []models.LawFirm) []models.RankedFirm {
	ranked := make([]models.RankedFirm, 0, len(firms))
	for _, firm := range firms {
		if firm.Coordinates == nil {
			continue
		}
		ranked = append(ranked, models.RankedFirm{
			LawFirm:  firm,
			Distance: Distance(origin, *firm.Coordinates),
		})
	}

	slices.SortStableFunc(ranked, func(a, b models.RankedFirm) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	return ranked
}
