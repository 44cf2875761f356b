package models

// Coordinates represents a geographical point defined by its latitude and longitude.
type Coordinates struct {
	Latitude  float64 `json:"lat"` // Latitude of the geographical point.
	Longitude float64 `json:"lon"` // Longitude of the geographical point.
}

// ResolvedLocation is the single location chosen by a committed search.
type ResolvedLocation struct {
	Coordinates

	Address string `json:"address"` // Address is the human-readable label returned by the geocoder.
}
