// Package view glues the address resolver to the proximity tracker for one
// search session and keeps the map and list surfaces that render the result.
package view

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/UnknownOlympus/locator/internal/proximity"
	"github.com/UnknownOlympus/locator/internal/resolver"
)

// ErrNoSuggestion is returned by Select for an index outside the current list.
var ErrNoSuggestion = errors.New("no suggestion at index")

// StatusKind tells the user what happened to the last search.
type StatusKind string

const (
	StatusNone     StatusKind = ""
	StatusFound    StatusKind = "found"
	StatusNotFound StatusKind = "not_found"
	StatusFailed   StatusKind = "failed"
)

const (
	messageNotFound = "Address not found. Please try a different search."
	messageFailed   = "Search failed, please try again."
)

// Status is the outcome message of the last committed search.
type Status struct {
	Kind    StatusKind `json:"kind,omitempty"`
	Message string     `json:"message,omitempty"`
}

// Snapshot is everything a client needs to render a session.
type Snapshot struct {
	ID           string                   `json:"id"`
	Query        string                   `json:"query"`
	State        resolver.State           `json:"state"`
	Suggestions  []models.Suggestion      `json:"suggestions"`
	SearchMarker *models.ResolvedLocation `json:"search_marker,omitempty"`
	Markers      []models.RankedFirm      `json:"markers"`
	Ranked       []models.RankedFirm      `json:"ranked"`
	Status       Status                   `json:"status"`
}

// Session owns one resolver and one tracker. Successful resolves move the
// tracker, and the tracker republishes to the session's map and list.
type Session struct {
	id       string
	resolver *resolver.Resolver
	tracker  *proximity.Tracker
	mapState *MapState
	list     *ListPanel
	log      *slog.Logger

	mu         sync.Mutex
	status     Status
	lastActive time.Time
}

func newSession(id string, res *resolver.Resolver, tracker *proximity.Tracker, log *slog.Logger) *Session {
	s := &Session{
		id:         id,
		resolver:   res,
		tracker:    tracker,
		mapState:   &MapState{},
		list:       &ListPanel{},
		log:        log.With("session", id),
		lastActive: time.Now(),
	}

	res.SetListener(tracker)
	tracker.AttachMap(s.mapState)
	tracker.AttachList(s.list)

	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Type records a keystroke and schedules debounced suggestions for it.
func (s *Session) Type(query string) *resolver.Call {
	s.touch()
	return s.resolver.Suggest(query)
}

// Select resolves the formatted label of the suggestion at index.
func (s *Session) Select(ctx context.Context, index int) (models.ResolvedLocation, error) {
	suggestions := s.resolver.Snapshot().Suggestions
	if index < 0 || index >= len(suggestions) {
		return models.ResolvedLocation{}, ErrNoSuggestion
	}
	return s.Search(ctx, suggestions[index].Formatted)
}

// Search resolves query and, on success, re-ranks the firms around it.
func (s *Session) Search(ctx context.Context, query string) (models.ResolvedLocation, error) {
	s.touch()

	loc, err := s.resolver.Resolve(ctx, query)
	switch {
	case err == nil:
		s.setStatus(Status{Kind: StatusFound})
	case errors.Is(err, resolver.ErrSuperseded):
		// a newer search owns the status
	case errors.Is(err, resolver.ErrNotFound):
		s.setStatus(Status{Kind: StatusNotFound, Message: messageNotFound})
	default:
		s.log.WarnContext(ctx, "Search failed", "query", query, "error", err)
		s.setStatus(Status{Kind: StatusFailed, Message: messageFailed})
	}

	return loc, err
}

// SetFirms replaces the firm set the session ranks.
func (s *Session) SetFirms(firms []models.LawFirm) {
	s.tracker.SetFirms(firms)
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	rs := s.resolver.Snapshot()

	s.mu.Lock()
	status := s.status
	s.mu.Unlock()

	return Snapshot{
		ID:           s.id,
		Query:        rs.Query,
		State:        rs.State,
		Suggestions:  rs.Suggestions,
		SearchMarker: s.mapState.SearchMarker(),
		Markers:      s.mapState.Markers(),
		Ranked:       s.list.Ranked(),
		Status:       status,
	}
}

// Close stops pending resolver work.
func (s *Session) Close() {
	s.resolver.Close()
}

func (s *Session) setStatus(st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
