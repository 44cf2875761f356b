package models

import "encoding/json"

// Address holds the address breakdown returned by a geocoder.
// Every field is optional; an empty string means the geocoder did not report it.
type Address struct {
	HouseNumber string `json:"house_number,omitempty"`
	Road        string `json:"road,omitempty"`
	City        string `json:"city,omitempty"`
	Town        string `json:"town,omitempty"`
	Village     string `json:"village,omitempty"`
	County      string `json:"county,omitempty"`
	State       string `json:"state,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// Locality returns the first non-empty of city, town and village.
func (a Address) Locality() string {
	switch {
	case a.City != "":
		return a.City
	case a.Town != "":
		return a.Town
	default:
		return a.Village
	}
}

// GeocodeResult is one validated record of a geocoder response.
type GeocodeResult struct {
	DisplayName string          `json:"display_name"`
	Coordinates Coordinates     `json:"coordinates"`
	Type        string          `json:"type,omitempty"`
	Class       string          `json:"class,omitempty"`
	Address     Address         `json:"address"`
	Raw         json.RawMessage `json:"raw,omitempty"` // Raw is the provider payload, passed through untouched.
}

// SuggestionKind classifies what a suggestion points at.
type SuggestionKind string

const (
	KindAddress SuggestionKind = "address"
	KindCity    SuggestionKind = "city"
	KindCounty  SuggestionKind = "county"
	KindZip     SuggestionKind = "zip"
)

// Suggestion is a candidate location offered while the user is typing.
type Suggestion struct {
	Label     string          `json:"label"`     // Label is the geocoder's full display name.
	Formatted string          `json:"formatted"` // Formatted is the short "123 Main St, Charlotte, NC, 28202" form.
	Latitude  float64         `json:"lat"`
	Longitude float64         `json:"lon"`
	Kind      SuggestionKind  `json:"kind"`
	Type      string          `json:"type"`
	Address   Address         `json:"address"`
	Raw       json.RawMessage `json:"raw,omitempty"`
}

// Coordinates returns the suggestion position.
func (s Suggestion) Coordinates() Coordinates {
	return Coordinates{Latitude: s.Latitude, Longitude: s.Longitude}
}
