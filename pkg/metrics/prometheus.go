// Package metrics provides Prometheus metrics for the cageside prediction service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager owns every metric the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Prediction metrics
	predictions       *prometheus.CounterVec
	predictionLatency prometheus.Histogram
	cardBouts         prometheus.Histogram
	classifierErrors  *prometheus.CounterVec

	// Resolver metrics
	resolverMatches *prometheus.CounterVec
	resolverMisses  prometheus.Counter

	// Snapshot metrics
	snapshotReloadDuration prometheus.Histogram
	snapshotLastUnix       prometheus.Gauge
	snapshotCount          prometheus.Counter
	snapshotReloadErrors   prometheus.Counter
	snapshotRecords        prometheus.Gauge
	snapshotRejected       prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "cageside",
		subsystem:        "predictor",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// RefreshInterval returns how often gauges should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.customLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.customLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.customLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: m.histogramBuckets, ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.predictions = m.counterVec("predictions_total", "Fight predictions by result", "result")
	m.predictionLatency = m.histogram("prediction_latency_milliseconds", "End to end prediction latency in milliseconds", m.histogramBuckets)
	m.cardBouts = m.histogram("card_bouts", "Number of bouts per card request", []float64{1, 2, 4, 6, 8, 10, 12, 15, 20})
	m.classifierErrors = m.counterVec("classifier_errors_total", "Classifier failures by backend", "backend")

	m.resolverMatches = m.counterVec("resolver_matches_total", "Resolved names by match kind", "kind")
	m.resolverMisses = m.counter("resolver_misses_total", "Queries that resolved to no fighter")

	m.snapshotReloadDuration = m.histogram("snapshot_reload_duration_milliseconds", "Roster snapshot reload duration in milliseconds", m.histogramBuckets)
	m.snapshotLastUnix = m.gauge("snapshot_last_unix", "Unix timestamp of the last published roster snapshot")
	m.snapshotCount = m.counter("snapshot_count_total", "Total number of roster snapshots published")
	m.snapshotReloadErrors = m.counter("snapshot_reload_errors_total", "Roster reloads that failed and kept the previous snapshot")
	m.snapshotRecords = m.gauge("snapshot_records", "Fighters in the current roster snapshot")
	m.snapshotRejected = m.counter("snapshot_rejected_rows_total", "Source rows dropped because they had no fighter name")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", "endpoint", "method", "status_code")

	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Total number of errors by component", "component", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total", "Total number of errors by type", "error_type", "severity")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Total number of errors by endpoint", "endpoint", "method", "error_type")
	m.errorLatency = m.histogramVec("error_latency_milliseconds", "Latency of operations that resulted in errors", "component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// Prediction metrics.

// RecordPrediction counts a prediction by result: blue, red, not_found, duplicate, error.
func RecordPrediction(result string) {
	globalManager.predictions.WithLabelValues(result).Inc()
}

// RecordPredictionLatency records end to end prediction latency.
func RecordPredictionLatency(latencyMs float64) {
	globalManager.predictionLatency.Observe(latencyMs)
}

// RecordCardBouts records the size of a card request.
func RecordCardBouts(n int) {
	globalManager.cardBouts.Observe(float64(n))
}

// RecordClassifierError counts a classifier failure.
func RecordClassifierError(backend string) {
	globalManager.classifierErrors.WithLabelValues(backend).Inc()
}

// Resolver metrics.

// RecordResolverMatch counts a resolved name by match kind.
func RecordResolverMatch(kind string) {
	globalManager.resolverMatches.WithLabelValues(kind).Inc()
}

// RecordResolverMiss counts a query with no candidate.
func RecordResolverMiss() {
	globalManager.resolverMisses.Inc()
}

// Snapshot metrics.

// RecordSnapshotReloadDuration records how long a reload took.
func RecordSnapshotReloadDuration(ms float64) {
	globalManager.snapshotReloadDuration.Observe(ms)
}

// UpdateSnapshotLastUnix sets the publish time of the current snapshot.
func UpdateSnapshotLastUnix(ts float64) {
	globalManager.snapshotLastUnix.Set(ts)
}

// IncrementSnapshotCount counts a published snapshot.
func IncrementSnapshotCount() {
	globalManager.snapshotCount.Inc()
}

// RecordSnapshotReloadError counts a failed reload.
func RecordSnapshotReloadError() {
	globalManager.snapshotReloadErrors.Inc()
}

// UpdateSnapshotRecords sets the fighter count of the current snapshot.
func UpdateSnapshotRecords(n int) {
	globalManager.snapshotRecords.Set(float64(n))
}

// RecordSnapshotRejected counts rows dropped while building a snapshot.
func RecordSnapshotRejected(n int) {
	globalManager.snapshotRejected.Add(float64(n))
}

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error metrics.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System metrics.

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

// RefreshInterval returns the sampling interval of the global manager.
func RefreshInterval() time.Duration { return globalManager.RefreshInterval() }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
