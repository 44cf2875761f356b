package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/locator/internal/metrics"
	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/UnknownOlympus/locator/internal/repository"
)

const defaultBatchSize = 100

// FirmGeocoder backfills coordinates for active law firms whose address has
// not been geocoded yet, using a pool of workers per batch.
type FirmGeocoder struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	locator      *AddressLocator      // Geocodes firm addresses with fallbacks
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	numWorkers   int                  // Number of concurrent workers for processing
	pollInterval time.Duration        // Interval between batches
	batchSize    int                  // Maximum firms fetched per batch
}

// NewFirmGeocoder creates a new instance of FirmGeocoder.
func NewFirmGeocoder(
	log *slog.Logger,
	repo repository.Interface,
	locator *AddressLocator,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
) *FirmGeocoder {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &FirmGeocoder{
		log:          log,
		repo:         repo,
		locator:      locator,
		metrics:      metrics,
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
		batchSize:    defaultBatchSize,
	}
}

// Run starts the backfill, which periodically polls for firms without coordinates.
// It listens for a cancellation signal from the context to gracefully stop.
func (fg *FirmGeocoder) Run(ctx context.Context) {
	ticker := time.NewTicker(fg.pollInterval)
	defer ticker.Stop()

	fg.log.InfoContext(ctx, "Firm geocoder started...", "interval", fg.pollInterval, "workers", fg.numWorkers)

	for {
		select {
		case <-ctx.Done():
			fg.log.InfoContext(ctx, "Firm geocoder stopped.")
			return
		case <-ticker.C:
			fg.log.DebugContext(ctx, "Polling for law firms to geocode...")
			fg.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch fetches firms without coordinates, geocodes them with a worker
// pool and waits for every worker to finish. It returns how many were processed.
func (fg *FirmGeocoder) ProcessBatch(ctx context.Context) int {
	firms, err := fg.repo.FetchFirmsForGeocoding(ctx, fg.batchSize)
	if err != nil {
		fg.log.ErrorContext(ctx, "Failed to fetch law firms", "error", err)
		return 0
	}
	if len(firms) == 0 {
		fg.log.DebugContext(ctx, "No law firms to geocode.")
		return 0
	}

	fg.log.InfoContext(ctx, "Found law firms to geocode. Starting worker pool.",
		"jobs", len(firms),
		"num_workers", fg.numWorkers)

	jobs := make(chan models.LawFirm, len(firms))
	var wgr sync.WaitGroup

	for i := 1; i <= fg.numWorkers; i++ {
		wgr.Add(1)
		go fg.worker(ctx, i, &wgr, jobs)
	}

	for _, firm := range firms {
		jobs <- firm
	}
	close(jobs)

	wgr.Wait()
	fg.log.InfoContext(ctx, "Geocoding batch finished", "jobs", len(firms))
	return len(firms)
}

func (fg *FirmGeocoder) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.LawFirm) {
	defer wg.Done()
	for firm := range jobs {
		fg.metrics.ActiveWorkers.Inc()
		fg.process(ctx, idx, firm)
		fg.metrics.ActiveWorkers.Dec()
	}
}

func (fg *FirmGeocoder) process(ctx context.Context, idx int, firm models.LawFirm) {
	fg.log.DebugContext(ctx, "Processing law firm", "worker", idx, "firm", firm.ID)

	coords, err := fg.locator.Locate(ctx, firmAddress(firm))
	if err != nil {
		fg.log.ErrorContext(ctx, "Failed to geocode", "worker", idx, "firm", firm.ID, "error", err)
		fg.metrics.FirmsGeocoded.WithLabelValues("failure").Inc()

		if err = fg.repo.IncrementFailureCount(ctx, firm.ID, err.Error()); err != nil {
			fg.log.ErrorContext(ctx, "Could not update failure count for law firm",
				"worker", idx,
				"firm", firm.ID,
				"error", err)
		}
		return
	}

	fg.metrics.FirmsGeocoded.WithLabelValues("success").Inc()

	if err = fg.repo.UpdateFirmCoordinates(ctx, firm.ID, coords); err != nil {
		fg.log.ErrorContext(ctx, "Failed to update coordinates for law firm",
			"worker", idx,
			"firm", firm.ID,
			"error", err)
		return
	}
	fg.log.DebugContext(ctx, "Worker successfully geocoded the law firm", "worker", idx, "firm", firm.ID)
}
