package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	ErrorTotal      *prometheus.CounterVec

	// Content read path
	TableFetches      *prometheus.CounterVec
	TableLatency      *prometheus.HistogramVec
	FallbackDocuments *prometheus.CounterVec
	CacheLookups      *prometheus.CounterVec

	// Write path
	WriteOperations *prometheus.CounterVec
	UploadBytes     prometheus.Counter

	// Messaging
	EventsPublished *prometheus.CounterVec
	EventsHandled   *prometheus.CounterVec
}

// New creates and registers all application metrics on reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		RequestTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		ErrorTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP errors",
		}, []string{"method", "path", "type"}),

		TableFetches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "table_fetches_total",
			Help:      "Content table fetches by outcome",
		}, []string{"table", "outcome"}),
		TableLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "table_fetch_duration_seconds",
			Help:      "Duration of content table fetches",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"table"}),
		FallbackDocuments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "fallback_documents_total",
			Help:      "Content documents served from compiled-in defaults",
		}, []string{"reason"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "cache_lookups_total",
			Help:      "Content cache lookups by result",
		}, []string{"result"}),

		WriteOperations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "admin",
			Name:      "write_operations_total",
			Help:      "Admin write operations by section and status",
		}, []string{"section", "status"}),
		UploadBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "media",
			Name:      "upload_bytes_total",
			Help:      "Bytes accepted by media uploads",
		}),

		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Domain events published by type and status",
		}, []string{"type", "status"}),
		EventsHandled: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "handled_total",
			Help:      "Domain events handled by the worker by type and status",
		}, []string{"type", "status"}),
	}
}

// NewNop returns metrics registered on a private registry, for tests and tools.
func NewNop() *Metrics {
	return New("test", prometheus.NewRegistry())
}

// Status labels a result as ok or error.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
