package proximity

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/UnknownOlympus/locator/internal/metrics"
	"github.com/UnknownOlympus/locator/internal/models"
)

// DefaultLocation is uptown Charlotte, NC. It is the ranking origin until a
// search resolves.
var DefaultLocation = models.Coordinates{Latitude: 35.2271, Longitude: -80.8431}

// MapSurface renders firm markers and the searched location.
type MapSurface interface {
	SetMarkers(ranked []models.RankedFirm)
	SetSearchMarker(loc *models.ResolvedLocation)
}

// ListSurface renders the ranked firm list.
type ListSurface interface {
	SetRanked(ranked []models.RankedFirm)
}

// Tracker owns the current location and firm set and republishes a freshly
// computed ranking whenever either changes. Every change is ranked from
// scratch; firm sets are small enough that nothing is cached.
type Tracker struct {
	mu              sync.Mutex
	defaultLocation models.Coordinates
	location        *models.ResolvedLocation
	firms           []models.LawFirm
	ranked          []models.RankedFirm
	maps            []MapSurface
	lists           []ListSurface
	log             *slog.Logger
	metrics         *metrics.Metrics
}

// NewTracker creates a Tracker that ranks from defaultLocation until
// SetLocation is called.
func NewTracker(defaultLocation models.Coordinates, log *slog.Logger, m *metrics.Metrics) *Tracker {
	return &Tracker{
		defaultLocation: defaultLocation,
		ranked:          []models.RankedFirm{},
		log:             log,
		metrics:         m,
	}
}

// AttachMap registers a map surface and brings it up to date.
func (t *Tracker) AttachMap(s MapSurface) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.maps = append(t.maps, s)
	s.SetMarkers(slices.Clone(t.ranked))
	s.SetSearchMarker(t.locationCopyLocked())
}

// AttachList registers a list surface and brings it up to date.
func (t *Tracker) AttachList(s ListSurface) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lists = append(t.lists, s)
	s.SetRanked(slices.Clone(t.ranked))
}

// SetLocation replaces the current location and re-ranks the last known firms.
func (t *Tracker) SetLocation(loc models.ResolvedLocation) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.location = &loc
	t.recomputeLocked()
}

// SetFirms replaces the firm set and re-ranks it against the current location,
// or the default location when nothing was resolved yet.
func (t *Tracker) SetFirms(firms []models.LawFirm) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.firms = slices.Clone(firms)
	t.recomputeLocked()
}

// Ranked returns a copy of the latest ranking.
func (t *Tracker) Ranked() []models.RankedFirm {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.ranked)
}

// Location returns the current resolved location, or nil.
func (t *Tracker) Location() *models.ResolvedLocation {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.locationCopyLocked()
}

// Origin returns the coordinates the ranking is computed from.
func (t *Tracker) Origin() models.Coordinates {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.originLocked()
}

func (t *Tracker) originLocked() models.Coordinates {
	if t.location != nil {
		return t.location.Coordinates
	}
	return t.defaultLocation
}

func (t *Tracker) locationCopyLocked() *models.ResolvedLocation {
	if t.location == nil {
		return nil
	}
	loc := *t.location
	return &loc
}

func (t *Tracker) recomputeLocked() {
	origin := t.originLocked()
	t.ranked = Rank(origin, t.firms)

	t.log.Debug("Ranking recomputed",
		"lat", origin.Latitude,
		"lon", origin.Longitude,
		"firms", len(t.firms),
		"ranked", len(t.ranked))

	for _, s := range t.maps {
		s.SetMarkers(slices.Clone(t.ranked))
		s.SetSearchMarker(t.locationCopyLocked())
	}
	for _, s := range t.lists {
		s.SetRanked(slices.Clone(t.ranked))
	}

	if t.metrics != nil {
		t.metrics.RankingsPublished.Inc()
	}
}
