package resolver

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the geocoder answered but nothing qualified, or the
	// top result lies outside the configured country.
	ErrNotFound = errors.New("address not found")
	// ErrSuperseded means a newer call was issued before this one finished.
	// Its result was discarded.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// Kind classifies resolver failures.
type Kind int

const (
	// KindTransport covers network failures, non-200 answers, timeouts and
	// malformed responses.
	KindTransport Kind = iota + 1
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is returned by Resolve when the geocoder could not be reached or
// answered with something unusable. Callers should offer a retry.
type Error struct {
	Kind  Kind
	Query string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("resolve %q: %s error: %v", e.Query, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a resolver transport failure.
func IsTransport(err error) bool {
	var rerr *Error
	return errors.As(err, &rerr) && rerr.Kind == KindTransport
}
