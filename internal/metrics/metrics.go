package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ProviderRequests  *prometheus.CounterVec
	APIErrors         prometheus.Counter
	RequestSeconds    *prometheus.HistogramVec
	CacheLookups      *prometheus.CounterVec
	ResolverOutcomes  *prometheus.CounterVec
	Superseded        prometheus.Counter
	FirmsGeocoded     *prometheus.CounterVec
	ActiveWorkers     prometheus.Gauge
	ActiveSessions    prometheus.Gauge
	DirectoryFirms    prometheus.Gauge
	RankingsPublished prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		ProviderRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "locator_provider_requests_total",
			Help: "Total number of requests sent to the geocoding provider.",
		}, []string{"provider", "status"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "locator_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "locator_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		CacheLookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "locator_geocode_cache_lookups_total",
			Help: "Geocode cache lookups by result.",
		}, []string{"result"}),
		ResolverOutcomes: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "locator_resolver_outcomes_total",
			Help: "Address resolver outcomes by operation and result.",
		}, []string{"operation", "result"}),
		Superseded: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "locator_resolver_superseded_total",
			Help: "Resolver results discarded because a newer request was issued.",
		}),
		FirmsGeocoded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "locator_firms_geocoded_total",
			Help: "Total number of law firm addresses processed by the coordinate backfill.",
		}, []string{"status"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "locator_geocoding_active_workers",
			Help: "Current number of active workers geocoding firm addresses.",
		}),
		ActiveSessions: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "locator_active_sessions",
			Help: "Current number of open search sessions.",
		}),
		DirectoryFirms: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "locator_directory_firms",
			Help: "Number of active law firms in the last directory refresh.",
		}),
		RankingsPublished: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "locator_rankings_published_total",
			Help: "Ranked firm lists published to view surfaces.",
		}),
	}
}
