package geocoding

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/locator/internal/models"
)

// Provider is an interface that defines a method for searching a geocoder.
// Search takes a context and a request, and returns the validated records
// in the order the geocoder ranked them. An empty slice means no match.
type Provider interface {
	Search(ctx context.Context, req SearchRequest) ([]models.GeocodeResult, error)
}

// SearchRequest describes one outbound geocoding query.
// Country scoping is configured on the provider itself.
type SearchRequest struct {
	Query  string // Query is the free-text address, city, county or ZIP code.
	Limit  int    // Limit is the maximum number of records to return.
	Dedupe bool   // Dedupe asks the geocoder to collapse duplicate places.
}

// ErrMalformedResponse is returned when the geocoder answered with a payload
// that does not match the expected shape.
var ErrMalformedResponse = errors.New("geocoder returned a malformed response")

// StatusError is returned when the geocoder answered with a non-200 status.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API returned status %d: %s", e.Provider, e.Code, e.Body)
}
