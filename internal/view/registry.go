package view

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/UnknownOlympus/locator/internal/geocoding"
	"github.com/UnknownOlympus/locator/internal/metrics"
	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/UnknownOlympus/locator/internal/proximity"
	"github.com/UnknownOlympus/locator/internal/resolver"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// Config configures new sessions.
type Config struct {
	Resolver        resolver.Config
	DefaultLocation models.Coordinates
	SessionTTL      time.Duration
}

// Registry holds the open sessions and fans firm set changes out to them.
type Registry struct {
	provider geocoding.Provider
	cfg      Config
	log      *slog.Logger
	metrics  *metrics.Metrics

	mu       sync.RWMutex
	sessions map[string]*Session
	firms    []models.LawFirm
}

// NewRegistry creates an empty Registry.
func NewRegistry(provider geocoding.Provider, cfg Config, log *slog.Logger, m *metrics.Metrics) *Registry {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.DefaultLocation == (models.Coordinates{}) {
		cfg.DefaultLocation = proximity.DefaultLocation
	}
	return &Registry{
		provider: provider,
		cfg:      cfg,
		log:      log,
		metrics:  m,
		sessions: make(map[string]*Session),
	}
}

// Create opens a session ranked against the latest broadcast firm set.
func (r *Registry) Create() *Session {
	id := uuid.NewString()
	res := resolver.New(r.provider, r.cfg.Resolver, r.log, r.metrics)
	tracker := proximity.NewTracker(r.cfg.DefaultLocation, r.log, r.metrics)
	s := newSession(id, res, tracker, r.log)

	r.mu.Lock()
	defer r.mu.Unlock()

	tracker.SetFirms(r.firms)
	r.sessions[id] = s
	r.metrics.ActiveSessions.Set(float64(len(r.sessions)))

	r.log.Debug("Session created", "session", id)
	return s
}

// Get returns the session with id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove closes and forgets the session with id.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	delete(r.sessions, id)
	r.metrics.ActiveSessions.Set(float64(len(r.sessions)))
	return nil
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Firms returns the latest broadcast firm set.
func (r *Registry) Firms() []models.LawFirm {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.firms)
}

// Broadcast replaces the firm set of the registry and of every open session.
func (r *Registry) Broadcast(firms []models.LawFirm) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.firms = slices.Clone(firms)
	for _, s := range r.sessions {
		s.SetFirms(r.firms)
	}
	r.log.Debug("Firm set broadcast", "firms", len(firms), "sessions", len(r.sessions))
}

// Sweep closes sessions idle for longer than the configured TTL at now and
// returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if now.Sub(s.idleSince()) > r.cfg.SessionTTL {
			s.Close()
			delete(r.sessions, id)
			removed++
		}
	}
	r.metrics.ActiveSessions.Set(float64(len(r.sessions)))
	return removed
}

// Run sweeps idle sessions every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	r.log.InfoContext(ctx, "Session sweeper started", "interval", interval, "ttl", r.cfg.SessionTTL)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.InfoContext(ctx, "Session sweeper stopped")
			r.closeAll()
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				r.log.InfoContext(ctx, "Expired idle sessions", "count", n)
			}
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.sessions {
		s.Close()
		delete(r.sessions, id)
	}
	r.metrics.ActiveSessions.Set(0)
}
