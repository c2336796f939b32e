package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// coordination service.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: method, status
	HTTPDuration *prometheus.HistogramVec // labels: method

	// Response cache metrics.
	CacheLookups *prometheus.CounterVec // labels: op, result={hit,miss}

	// Upstream gateway metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: op, outcome={data,no_data,error}
	UpstreamDuration *prometheus.HistogramVec // labels: op

	// Record store metrics.
	StoreMutations   *prometheus.CounterVec // labels: kind, action
	ResourcesIndexed prometheus.Gauge

	// Broadcast metrics.
	EventsPublished prometheus.Counter
	EventsDelivered prometheus.Counter
	EventsDropped   prometheus.Counter
	Subscribers     prometheus.Gauge

	// Event relay metrics.
	RelayPublishes *prometheus.CounterVec // labels: sink, outcome={ok,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.CacheLookups,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.StoreMutations,
		m.ResourcesIndexed,
		m.EventsPublished,
		m.EventsDelivered,
		m.EventsDropped,
		m.Subscribers,
		m.RelayPublishes,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reliefgrid",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "reliefgrid",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reliefgrid",
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by operation and result.",
		}, []string{"op", "result"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reliefgrid",
			Name:      "upstream_requests_total",
			Help:      "Upstream provider requests by operation and outcome.",
		}, []string{"op", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "reliefgrid",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"op"}),
		StoreMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reliefgrid",
			Name:      "store_mutations_total",
			Help:      "Committed record store mutations by kind and action.",
		}, []string{"kind", "action"}),
		ResourcesIndexed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "reliefgrid",
			Name:      "resources_indexed",
			Help:      "Resources currently held by the geospatial index.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reliefgrid",
			Name:      "events_published_total",
			Help:      "Mutation events handed to the broadcaster.",
		}),
		EventsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reliefgrid",
			Name:      "events_delivered_total",
			Help:      "Event deliveries into subscriber buffers.",
		}),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reliefgrid",
			Name:      "events_dropped_total",
			Help:      "Events dropped because a subscriber buffer was full.",
		}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "reliefgrid",
			Name:      "subscribers",
			Help:      "Currently connected broadcast subscribers.",
		}),
		RelayPublishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reliefgrid",
			Name:      "relay_publishes_total",
			Help:      "Mutation events forwarded to external sinks by outcome.",
		}, []string{"sink", "outcome"}),
	}
}
