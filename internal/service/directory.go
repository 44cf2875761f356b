package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/locator/internal/metrics"
	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/UnknownOlympus/locator/internal/repository"
)

// Broadcaster receives every refreshed firm set.
type Broadcaster interface {
	Broadcast(firms []models.LawFirm)
}

// Directory periodically reloads the active firms and hands them to the
// broadcaster, which re-ranks every open session.
type Directory struct {
	source   repository.FirmSource
	target   Broadcaster
	interval time.Duration
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// NewDirectory creates a Directory refreshing every interval.
func NewDirectory(
	source repository.FirmSource,
	target Broadcaster,
	interval time.Duration,
	log *slog.Logger,
	m *metrics.Metrics,
) *Directory {
	return &Directory{source: source, target: target, interval: interval, log: log, metrics: m}
}

// Refresh loads the active firms once and broadcasts them.
func (d *Directory) Refresh(ctx context.Context) error {
	firms, err := d.source.FetchActiveFirms(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh firm directory: %w", err)
	}

	d.metrics.DirectoryFirms.Set(float64(len(firms)))
	d.target.Broadcast(firms)
	d.log.DebugContext(ctx, "Firm directory refreshed", "firms", len(firms))
	return nil
}

// Run refreshes immediately and then on every tick until ctx is cancelled.
// A failed refresh keeps the previous firm set.
func (d *Directory) Run(ctx context.Context) {
	d.log.InfoContext(ctx, "Firm directory started...", "interval", d.interval)
	if err := d.Refresh(ctx); err != nil {
		d.log.ErrorContext(ctx, "Initial directory refresh failed", "error", err)
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.InfoContext(ctx, "Firm directory stopped.")
			return
		case <-ticker.C:
			if err := d.Refresh(ctx); err != nil {
				d.log.ErrorContext(ctx, "Directory refresh failed", "error", err)
			}
		}
	}
}
