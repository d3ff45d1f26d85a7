// Package metrics provides Prometheus metrics for the activity sign-up service.
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

// Latency buckets in milliseconds. Store operations are in-memory and
// finish well below a millisecond.
var (
	defaultHTTPBuckets  = []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000}
	defaultStoreBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5}
)

// Manager manages all Prometheus metrics for the sign-up service.
type Manager struct {
	namespace        string
	subsystem        string
	httpBuckets     []float64
	storeBuckets    []float64
	enabled         bool
	refreshInterval time.Duration
	constLabels     map[string]string
	metricPrefix    string
	registry        prometheus.Registerer

	// Registry business metrics
	signups          prometheus.Counter
	duplicateSignups prometheus.Counter
	unregistrations  prometheus.Counter
	notFound         *prometheus.CounterVec

	// Registry state
	activityCount           prometheus.Gauge
	participantCount        prometheus.Gauge
	participantsPerActivity *prometheus.GaugeVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Repository latency
	repositoryUpdateLatency prometheus.Histogram
	repositoryQueryLatency  prometheus.Histogram

	// Error tracking
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegisterer(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
// Pass WithRegisterer with a fresh registry when creating more than
// one Manager in a process; the default registerer rejects duplicates.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "signup",
		subsystem:        "registry",
		httpBuckets:     defaultHTTPBuckets,
		storeBuckets:    defaultStoreBuckets,
		enabled:         true,
		refreshInterval: defaultRefreshInterval,
		constLabels:     make(map[string]string),
		metricPrefix:    "",
		registry:        prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.signups = auto.NewCounter(m.counterOpts("signups_total",
		"Total number of successful activity signups"))
	m.duplicateSignups = auto.NewCounter(m.counterOpts("signups_duplicate_total",
		"Total number of signups rejected because the email was already registered"))
	m.unregistrations = auto.NewCounter(m.counterOpts("unregistrations_total",
		"Total number of successful unregistrations"))
	m.notFound = auto.NewCounterVec(m.counterOpts("not_found_total",
		"Total number of operations rejected for an unknown activity or participant"),
		[]string{"operation"})

	m.activityCount = auto.NewGauge(m.gaugeOpts("activities",
		"Number of activities in the registry"))
	m.participantCount = auto.NewGauge(m.gaugeOpts("participants",
		"Number of registrations across all activities"))
	m.participantsPerActivity = auto.NewGaugeVec(m.gaugeOpts("activity_participants",
		"Number of registered participants per activity"),
		[]string{"activity"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.httpBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.repositoryUpdateLatency = auto.NewHistogram(m.histogramOpts("repository_update_latency_milliseconds",
		"Repository update operation latency in milliseconds", m.storeBuckets))
	m.repositoryQueryLatency = auto.NewHistogram(m.histogramOpts("repository_query_latency_milliseconds",
		"Repository query operation latency in milliseconds", m.storeBuckets))

	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total",
		"Total number of errors by type"),
		[]string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts("error_latency_milliseconds",
		"Latency of operations that resulted in errors", m.httpBuckets),
		[]string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes",
		"System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count",
		"Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RefreshInterval returns how often gauge updaters should run.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// RecordSignup increments the successful signups counter.
func (m *Manager) RecordSignup() {
	if m.enabled {
		m.signups.Inc()
	}
}

// RecordDuplicateSignup increments the rejected duplicate signups counter.
func (m *Manager) RecordDuplicateSignup() {
	if m.enabled {
		m.duplicateSignups.Inc()
	}
}

// RecordUnregistration increments the successful unregistrations counter.
func (m *Manager) RecordUnregistration() {
	if m.enabled {
		m.unregistrations.Inc()
	}
}

// RecordNotFound counts an operation rejected with a not-found outcome.
func (m *Manager) RecordNotFound(operation string) {
	if m.enabled {
		m.notFound.WithLabelValues(operation).Inc()
	}
}

// UpdateActivityCount sets the number of activities.
func (m *Manager) UpdateActivityCount(count int) {
	if m.enabled {
		m.activityCount.Set(float64(count))
	}
}

// UpdateParticipantCount sets the number of registrations across all activities.
func (m *Manager) UpdateParticipantCount(count int) {
	if m.enabled {
		m.participantCount.Set(float64(count))
	}
}

// UpdateActivityParticipants sets the participant count for one activity.
func (m *Manager) UpdateActivityParticipants(activity string, count int) {
	if m.enabled {
		m.participantsPerActivity.WithLabelValues(activity).Set(float64(count))
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if m.enabled {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// RecordRepositoryUpdateLatency records repository update operation latency.
func (m *Manager) RecordRepositoryUpdateLatency(latencyMs float64) {
	if m.enabled {
		m.repositoryUpdateLatency.Observe(latencyMs)
	}
}

// RecordRepositoryQueryLatency records repository query operation latency.
func (m *Manager) RecordRepositoryQueryLatency(latencyMs float64) {
	if m.enabled {
		m.repositoryQueryLatency.Observe(latencyMs)
	}
}

// RecordErrorByType records an error with type and severity labels.
func (m *Manager) RecordErrorByType(errorType, severity string) {
	if m.enabled {
		m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m.enabled {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func (m *Manager) RecordErrorLatency(component, errorType string, latencyMs float64) {
	if m.enabled {
		m.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
	}
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if m.enabled {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if m.enabled {
		m.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	if m.enabled {
		m.systemGCPauseTime.Observe(pauseMs)
	}
}

// Package-level helpers forward to the global manager.

// RecordSignup increments the successful signups counter.
func RecordSignup() { globalManager.RecordSignup() }

// RecordDuplicateSignup increments the rejected duplicate signups counter.
func RecordDuplicateSignup() { globalManager.RecordDuplicateSignup() }

// RecordUnregistration increments the successful unregistrations counter.
func RecordUnregistration() { globalManager.RecordUnregistration() }

// RecordNotFound counts an operation rejected with a not-found outcome.
func RecordNotFound(operation string) { globalManager.RecordNotFound(operation) }

// UpdateActivityCount sets the number of activities.
func UpdateActivityCount(count int) { globalManager.UpdateActivityCount(count) }

// UpdateParticipantCount sets the number of registrations across all activities.
func UpdateParticipantCount(count int) { globalManager.UpdateParticipantCount(count) }

// UpdateActivityParticipants sets the participant count for one activity.
func UpdateActivityParticipants(activity string, count int) {
	globalManager.UpdateActivityParticipants(activity, count)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, duration)
}

// RecordRepositoryUpdateLatency records repository update operation latency.
func RecordRepositoryUpdateLatency(latencyMs float64) {
	globalManager.RecordRepositoryUpdateLatency(latencyMs)
}

// RecordRepositoryQueryLatency records repository query operation latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.RecordRepositoryQueryLatency(latencyMs)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.RecordErrorByType(errorType, severity)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.RecordErrorLatency(component, errorType, latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { globalManager.UpdateSystemGoroutineCount(count) }

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.RecordSystemGCPauseTime(pauseMs) }

// RefreshInterval returns how often gauge updaters should run.
func RefreshInterval() time.Duration { return globalManager.RefreshInterval() }

// Configure replaces the global manager with one built from opts on a
// fresh registry. It must run before any handler or updater starts.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, WithRegisterer(registry))
	globalManager = NewManager(all...)
	customRegistry = registry
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
