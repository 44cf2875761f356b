package view

import (
	"slices"
	"sync"

	"github.com/UnknownOlympus/locator/internal/models"
)

// MapState is the server-side map surface of a session: the firm markers and
// the marker of the searched location.
type MapState struct {
	mu      sync.RWMutex
	markers []models.RankedFirm
	search  *models.ResolvedLocation
}

func (m *MapState) SetMarkers(ranked []models.RankedFirm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markers = ranked
}

func (m *MapState) SetSearchMarker(loc *models.ResolvedLocation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.search = loc
}

// Markers returns a copy of the current markers.
func (m *MapState) Markers() []models.RankedFirm {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.markers == nil {
		return []models.RankedFirm{}
	}
	return slices.Clone(m.markers)
}

// SearchMarker returns the searched location, or nil.
func (m *MapState) SearchMarker() *models.ResolvedLocation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.search == nil {
		return nil
	}
	loc := *m.search
	return &loc
}

// ListPanel is the server-side list surface of a session.
type ListPanel struct {
	mu     sync.RWMutex
	ranked []models.RankedFirm
}

func (l *ListPanel) SetRanked(ranked []models.RankedFirm) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ranked = ranked
}

// Ranked returns a copy of the listed firms.
func (l *ListPanel) Ranked() []models.RankedFirm {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.ranked == nil {
		return []models.RankedFirm{}
	}
	return slices.Clone(l.ranked)
}
