// Package metrics provides Prometheus metrics for the foodie catalog service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the foodie service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Catalog Metrics - What the API is asked for and what it returns
	catalogRequests *prometheus.CounterVec
	catalogNotFound *prometheus.CounterVec
	catalogResults  *prometheus.HistogramVec
	paramRejections *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge

	// Store Metrics - SQLite query health
	storeReady        prometheus.Gauge
	storeQueryLatency *prometheus.HistogramVec
	storeQueryErrors  *prometheus.CounterVec
	storeQueryRows    *prometheus.CounterVec

	// Error Metrics
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "foodie",
		subsystem:        "catalog",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.catalogRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "requests_total",
			Help:        "Total number of catalog operations by operation and outcome",
			ConstLabels: m.constLabels,
		},
		[]string{"operation", "outcome"},
	)

	m.catalogNotFound = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "not_found_total",
			Help:        "Total number of detail lookups that matched no record",
			ConstLabels: m.constLabels,
		},
		[]string{"entity"},
	)

	m.catalogResults = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "result_size",
			Help:        "Number of records returned per catalog operation",
			Buckets:     []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
			ConstLabels: m.constLabels,
		},
		[]string{"operation"},
	)

	m.paramRejections = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "param_rejections_total",
			Help:        "Total number of requests rejected for a malformed parameter",
			ConstLabels: m.constLabels,
		},
		[]string{"param"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds (user experience)",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_in_flight",
		Help:        "Number of HTTP requests currently being served",
		ConstLabels: m.constLabels,
	})

	m.storeReady = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "store_ready",
		Help:        "1 when the database is open and answering, 0 otherwise",
		ConstLabels: m.constLabels,
	})

	m.storeQueryLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "store_query_latency_milliseconds",
			Help:        "SQLite query latency in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"query"},
	)

	m.storeQueryErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "store_query_errors_total",
			Help:        "Total number of failed SQLite queries",
			ConstLabels: m.constLabels,
		},
		[]string{"query"},
	)

	m.storeQueryRows = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "store_query_rows_total",
			Help:        "Total number of rows read from SQLite",
			ConstLabels: m.constLabels,
		},
		[]string{"query"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Total number of errors by endpoint",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: m.constLabels,
	})
}

// Catalog Metrics Functions.

// RecordCatalogRequest counts one catalog operation with its outcome
// (ok, not_found, bad_request, error).
func RecordCatalogRequest(operation, outcome string) {
	globalManager.catalogRequests.WithLabelValues(operation, outcome).Inc()
}

// RecordNotFound counts a detail lookup that matched nothing.
func RecordNotFound(entity string) {
	globalManager.catalogNotFound.WithLabelValues(entity).Inc()
}

// RecordResultSize records how many records an operation returned.
func RecordResultSize(operation string, n int) {
	globalManager.catalogResults.WithLabelValues(operation).Observe(float64(n))
}

// RecordParamRejection counts a request rejected because of param.
func RecordParamRejection(param string) {
	globalManager.paramRejections.WithLabelValues(param).Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// IncHTTPInFlight marks a request as started.
func IncHTTPInFlight() {
	globalManager.httpInFlight.Inc()
}

// DecHTTPInFlight marks a request as finished.
func DecHTTPInFlight() {
	globalManager.httpInFlight.Dec()
}

// Store Metrics Functions.

// SetStoreReady flips the store readiness gauge.
func SetStoreReady(ready bool) {
	if ready {
		globalManager.storeReady.Set(1)
		return
	}
	globalManager.storeReady.Set(0)
}

// RecordQueryLatency records a query latency in milliseconds.
func RecordQueryLatency(query string, latencyMs float64) {
	globalManager.storeQueryLatency.WithLabelValues(query).Observe(latencyMs)
}

// RecordQueryError increments the failed query counter.
func RecordQueryError(query string) {
	globalManager.storeQueryErrors.WithLabelValues(query).Inc()
}

// RecordQueryRows adds the number of rows a query read.
func RecordQueryRows(query string, rows int) {
	globalManager.storeQueryRows.WithLabelValues(query).Add(float64(rows))
}

// Error Metrics Functions.

// RecordErrorByEndpoint increments the error counter by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// Configure rebuilds the global manager from opts on a fresh registry.
// Call it at startup, before handlers capture GetRegistry or any
// goroutine records a metric.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
	customRegistry = registry
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
