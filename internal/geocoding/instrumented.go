package geocoding

import (
	"context"
	"time"

	"github.com/UnknownOlympus/locator/internal/metrics"
	"github.com/UnknownOlympus/locator/internal/models"
)

// InstrumentedProvider records request counts and latency for every search.
type InstrumentedProvider struct {
	next    Provider
	name    string
	metrics *metrics.Metrics
}

// NewInstrumentedProvider wraps next with prometheus instrumentation labelled by name.
func NewInstrumentedProvider(next Provider, name string, m *metrics.Metrics) *InstrumentedProvider {
	return &InstrumentedProvider{next: next, name: name, metrics: m}
}

func (ip *InstrumentedProvider) Search(ctx context.Context, req SearchRequest) ([]models.GeocodeResult, error) {
	startTime := time.Now()
	results, err := ip.next.Search(ctx, req)
	ip.metrics.RequestSeconds.WithLabelValues(ip.name).Observe(time.Since(startTime).Seconds())

	if err != nil {
		ip.metrics.ProviderRequests.WithLabelValues(ip.name, "failure").Inc()
		ip.metrics.APIErrors.Inc()
		return nil, err
	}

	ip.metrics.ProviderRequests.WithLabelValues(ip.name, "success").Inc()
	return results, nil
}
