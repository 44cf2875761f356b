// Package resolver turns free text into address suggestions and resolved
// locations. Suggestions are debounced and best-effort; resolves are single
// shot and report not-found separately from transport failures. Only the most
// recently issued call of each kind may change visible state.
package resolver

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/UnknownOlympus/locator/internal/geocoding"
	"github.com/UnknownOlympus/locator/internal/metrics"
	"github.com/UnknownOlympus/locator/internal/models"
)

const minQueryLength = 3

// State is the suggestion lifecycle of a Resolver.
type State string

const (
	StateIdle       State = "idle"
	StateDebouncing State = "debouncing"
	StateRequesting State = "requesting"
	StateSuggested  State = "suggested"
	StateEmpty      State = "empty"
	StateFailed     State = "failed"
)

// Config holds the resolver tuning knobs.
type Config struct {
	CountryCode        string
	StateAbbreviations map[string]string
	Debounce           time.Duration
	SuggestLimit       int
	RequestTimeout     time.Duration
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		CountryCode:        "us",
		StateAbbreviations: DefaultStateAbbreviations,
		Debounce:           300 * time.Millisecond,
		SuggestLimit:       8,
		RequestTimeout:     10 * time.Second,
	}
}

// LocationListener is notified whenever a resolve succeeds.
type LocationListener interface {
	SetLocation(loc models.ResolvedLocation)
}

// Snapshot is a consistent copy of the resolver's visible state.
type Snapshot struct {
	State       State                    `json:"state"`
	Query       string                   `json:"query"`
	Suggestions []models.Suggestion      `json:"suggestions"`
	Location    *models.ResolvedLocation `json:"location,omitempty"`
}

type Resolver struct {
	provider geocoding.Provider
	cfg      Config
	log      *slog.Logger
	metrics  *metrics.Metrics

	mu            sync.Mutex
	seq           uint64
	suggestToken  uint64
	resolveToken  uint64
	timer         *time.Timer
	pending       *Call
	cancelSuggest context.CancelFunc
	cancelResolve context.CancelFunc
	state         State
	query         string
	suggestions   []models.Suggestion
	location      *models.ResolvedLocation
	listener      LocationListener
}

// New creates a Resolver. Zero fields of cfg fall back to DefaultConfig.
func New(provider geocoding.Provider, cfg Config, log *slog.Logger, m *metrics.Metrics) *Resolver {
	def := DefaultConfig()
	if cfg.CountryCode == "" {
		cfg.CountryCode = def.CountryCode
	}
	if cfg.StateAbbreviations == nil {
		cfg.StateAbbreviations = def.StateAbbreviations
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = def.Debounce
	}
	if cfg.SuggestLimit <= 0 {
		cfg.SuggestLimit = def.SuggestLimit
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	cfg.CountryCode = strings.ToLower(cfg.CountryCode)

	return &Resolver{
		provider:    provider,
		cfg:         cfg,
		log:         log,
		metrics:     m,
		state:       StateIdle,
		suggestions: []models.Suggestion{},
	}
}

// SetListener registers the listener notified on successful resolves.
func (r *Resolver) SetListener(l LocationListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = l
}

// State returns the current suggestion state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Snapshot returns a copy of the current query, suggestions and location.
func (r *Resolver) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		State:       r.state,
		Query:       r.query,
		Suggestions: append([]models.Suggestion(nil), r.suggestions...),
	}
	if snap.Suggestions == nil {
		snap.Suggestions = []models.Suggestion{}
	}
	if r.location != nil {
		loc := *r.location
		snap.Location = &loc
	}
	return snap
}

// Suggest schedules a debounced suggestion request for query and returns its
// handle. Queries of two characters or fewer clear the list without touching
// the network. A later Suggest or Resolve supersedes the returned call.
func (r *Resolver) Suggest(query string) *Call {
	trimmed := strings.TrimSpace(query)

	r.mu.Lock()
	defer r.mu.Unlock()

	token := r.nextLocked()
	r.abandonSuggestLocked()
	r.suggestToken = token
	r.query = query

	call := newCall(token)
	if utf8.RuneCountInString(trimmed) < minQueryLength {
		r.suggestions = []models.Suggestion{}
		r.state = StateIdle
		call.finish([]models.Suggestion{}, nil)
		return call
	}

	r.pending = call
	r.state = StateDebouncing
	r.timer = time.AfterFunc(r.cfg.Debounce, func() { r.fire(call, trimmed) })
	return call
}

// fire runs when the debounce window of call elapsed without a newer Suggest.
func (r *Resolver) fire(call *Call, query string) {
	r.mu.Lock()
	if call.token != r.suggestToken {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.RequestTimeout)
	r.cancelSuggest = cancel
	r.timer = nil
	r.state = StateRequesting
	r.mu.Unlock()
	defer cancel()

	suggestions, err := r.fetch(ctx, query)

	r.mu.Lock()
	defer r.mu.Unlock()

	if call.token != r.suggestToken {
		r.log.Debug("Discarding superseded suggestions", "query", query, "token", call.token)
		r.metrics.Superseded.Inc()
		call.finish(nil, ErrSuperseded)
		return
	}
	r.cancelSuggest = nil
	r.pending = nil

	switch {
	case err != nil:
		r.log.Warn("Address suggestions unavailable", "query", query, "error", err)
		r.metrics.ResolverOutcomes.WithLabelValues("suggest", "failed").Inc()
		r.state = StateFailed
		suggestions = []models.Suggestion{}
	case len(suggestions) == 0:
		r.metrics.ResolverOutcomes.WithLabelValues("suggest", "empty").Inc()
		r.state = StateEmpty
	default:
		r.metrics.ResolverOutcomes.WithLabelValues("suggest", "suggested").Inc()
		r.state = StateSuggested
	}

	r.suggestions = suggestions
	call.finish(suggestions, nil)
}

// Lookup runs the suggestion pipeline once, without debounce and without
// touching resolver state. Failures yield an empty list.
func (r *Resolver) Lookup(ctx context.Context, query string) []models.Suggestion {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < minQueryLength {
		return []models.Suggestion{}
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.RequestTimeout)
	defer cancel()

	suggestions, err := r.fetch(ctx, trimmed)
	if err != nil {
		r.log.WarnContext(ctx, "Address lookup failed", "query", trimmed, "error", err)
		r.metrics.ResolverOutcomes.WithLabelValues("lookup", "failed").Inc()
		return []models.Suggestion{}
	}

	r.metrics.ResolverOutcomes.WithLabelValues("lookup", "ok").Inc()
	return suggestions
}

func (r *Resolver) fetch(ctx context.Context, query string) ([]models.Suggestion, error) {
	results, err := r.provider.Search(ctx, geocoding.SearchRequest{
		Query:  query,
		Limit:  r.cfg.SuggestLimit,
		Dedupe: true,
	})
	if err != nil {
		return nil, err
	}
	return r.toSuggestions(results), nil
}

// Resolve geocodes query to a single location inside the configured country.
// It returns ErrNotFound when nothing matches, *Error on transport failures and
// ErrSuperseded when a newer Resolve was issued meanwhile. On success the
// location becomes current and the listener is notified.
func (r *Resolver) Resolve(ctx context.Context, query string) (models.ResolvedLocation, error) {
	trimmed := strings.TrimSpace(query)

	r.mu.Lock()
	token := r.nextLocked()
	if r.cancelResolve != nil {
		r.cancelResolve()
		r.cancelResolve = nil
	}
	r.resolveToken = token
	if trimmed == "" {
		r.mu.Unlock()
		return models.ResolvedLocation{}, ErrNotFound
	}
	r.abandonSuggestLocked()
	r.suggestToken = token
	r.query = query
	r.suggestions = []models.Suggestion{}
	r.state = StateIdle

	reqCtx, cancel := context.WithTimeout(ctx, r.cfg.RequestTimeout)
	r.cancelResolve = cancel
	r.mu.Unlock()
	defer cancel()

	results, err := r.provider.Search(reqCtx, geocoding.SearchRequest{Query: trimmed, Limit: 1})

	r.mu.Lock()
	defer r.mu.Unlock()

	if token != r.resolveToken {
		r.log.DebugContext(ctx, "Discarding superseded resolve", "query", trimmed, "token", token)
		r.metrics.Superseded.Inc()
		return models.ResolvedLocation{}, ErrSuperseded
	}
	r.cancelResolve = nil

	if err != nil {
		r.log.WarnContext(ctx, "Address resolve failed", "query", trimmed, "error", err)
		r.metrics.ResolverOutcomes.WithLabelValues("resolve", "failed").Inc()
		return models.ResolvedLocation{}, &Error{Kind: KindTransport, Query: trimmed, Err: err}
	}

	if len(results) == 0 || results[0].Address.CountryCode != r.cfg.CountryCode {
		r.log.InfoContext(ctx, "Address not found", "query", trimmed, "results", len(results))
		r.metrics.ResolverOutcomes.WithLabelValues("resolve", "not_found").Inc()
		return models.ResolvedLocation{}, ErrNotFound
	}

	loc := models.ResolvedLocation{
		Coordinates: results[0].Coordinates,
		Address:     results[0].DisplayName,
	}
	r.location = &loc
	r.metrics.ResolverOutcomes.WithLabelValues("resolve", "resolved").Inc()

	if r.listener != nil {
		r.listener.SetLocation(loc)
	}

	return loc, nil
}

// Close cancels pending timers and in-flight requests.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.abandonSuggestLocked()
	r.suggestToken = r.nextLocked()
	if r.cancelResolve != nil {
		r.cancelResolve()
		r.cancelResolve = nil
	}
	r.resolveToken = r.suggestToken
}

func (r *Resolver) nextLocked() uint64 {
	r.seq++
	return r.seq
}

// abandonSuggestLocked stops the debounce timer and cancels the in-flight
// suggestion request. A call whose timer was stopped never ran, so it is
// completed here.
func (r *Resolver) abandonSuggestLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.cancelSuggest != nil {
		r.cancelSuggest()
		r.cancelSuggest = nil
	}
	if r.pending != nil {
		r.pending.finish(nil, ErrSuperseded)
		r.pending = nil
	}
}
