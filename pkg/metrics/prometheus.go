package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Catalog tables reported by UpdateCatalogRecords.
const (
	TablePlanets      = "planets"
	TableExoplanets   = "exoplanets"
	TableTechnologies = "technologies"
	TableResources    = "resources"
)

// Tier policies.
const (
	PolicyColor   = "color"
	PolicyMessage = "message"
)

// scoreBuckets span the 0..100 score range in steps of ten.
var scoreBuckets = prometheus.LinearBuckets(0, 10, 11)

// DefaultLatencyBuckets are the millisecond buckets used by the latency
// histograms unless WithHistogramBuckets overrides them.
var DefaultLatencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500}

// Manager manages all Prometheus metrics for the habitability service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Scoring
	evaluations       *prometheus.CounterVec
	penalties         *prometheus.CounterVec
	tierAssignments   *prometheus.CounterVec
	scores            prometheus.Histogram
	evaluationLatency prometheus.Histogram

	// Technology eligibility
	technologyChecks *prometheus.CounterVec

	// Catalog and ranking
	catalogRecords *prometheus.GaugeVec
	rankedBodies   prometheus.Gauge
	catalogLookups *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// Process
	memoryAlloc *prometheus.GaugeVec
	goroutines  prometheus.Gauge
	gcPause     prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "habitat",
		subsystem:        "engine",
		histogramBuckets: DefaultLatencyBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.evaluations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_total",
		Help:      "Total number of parameter sets scored, by caller",
	}, []string{"source"})

	m.penalties = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "penalties_total",
		Help:      "Total number of rubric penalties applied, by rule",
	}, []string{"rule"})

	m.tierAssignments = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tier_assignments_total",
		Help:      "Total number of tier assignments, by policy and tier",
	}, []string{"policy", "tier"})

	m.scores = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score",
		Help:      "Distribution of habitability scores",
		Buckets:   scoreBuckets,
	})

	m.evaluationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_latency_milliseconds",
		Help:      "Time to evaluate one parameter set, including tiers and technologies",
		Buckets:   m.histogramBuckets,
	})

	m.technologyChecks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "technology_checks_total",
		Help:      "Total number of technology eligibility checks, by technology and result",
	}, []string{"technology", "available"})

	m.catalogRecords = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_records",
		Help:      "Number of records in each catalog table",
	}, []string{"table"})

	m.rankedBodies = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranked_bodies",
		Help:      "Number of bodies on the leaderboard",
	})

	m.catalogLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_lookups_total",
		Help:      "Total number of catalog lookups by name, by table and outcome",
	}, []string{"table", "found"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Total number of errors by component",
	}, []string{"component", "error_type"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total number of errors by endpoint",
	}, []string{"endpoint", "method", "error_type"})

	m.memoryAlloc = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "memory_bytes",
		Help:      "Go runtime memory in bytes, by kind",
	}, []string{"kind"})

	m.goroutines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "goroutines",
		Help:      "Number of goroutines",
	})

	m.gcPause = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gc_pause_milliseconds",
		Help:      "Average GC pause time in milliseconds per sample",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 25, 50, 100},
	})
}

// RecordEvaluation counts one scored parameter set and observes its score.
func (m *Manager) RecordEvaluation(source string, score int) {
	m.evaluations.WithLabelValues(source).Inc()
	m.scores.Observe(float64(score))
}

// RecordPenalty counts one applied rubric rule.
func (m *Manager) RecordPenalty(rule string) {
	m.penalties.WithLabelValues(rule).Inc()
}

// RecordTier counts one tier assignment under a policy.
func (m *Manager) RecordTier(policy, tier string) {
	m.tierAssignments.WithLabelValues(policy, tier).Inc()
}

// RecordEvaluationLatency observes evaluation latency in milliseconds.
func (m *Manager) RecordEvaluationLatency(latencyMs float64) {
	m.evaluationLatency.Observe(latencyMs)
}

// RecordTechnologyCheck counts one eligibility decision.
func (m *Manager) RecordTechnologyCheck(technology string, available bool) {
	m.technologyChecks.WithLabelValues(technology, strconv.FormatBool(available)).Inc()
}

// UpdateCatalogRecords sets the size of a catalog table.
func (m *Manager) UpdateCatalogRecords(table string, count int) error {
	switch table {
	case TablePlanets, TableExoplanets, TableTechnologies, TableResources:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	m.catalogRecords.WithLabelValues(table).Set(float64(count))
	return nil
}

// UpdateRankedBodies sets the leaderboard size.
func (m *Manager) UpdateRankedBodies(count int) {
	m.rankedBodies.Set(float64(count))
}

// RecordCatalogLookup counts one lookup by name.
func (m *Manager) RecordCatalogLookup(table string, found bool) {
	m.catalogLookups.WithLabelValues(table, strconv.FormatBool(found)).Inc()
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateMemory sets the runtime memory gauges from heap alloc and sys bytes.
func (m *Manager) UpdateMemory(alloc, sys uint64) {
	m.memoryAlloc.WithLabelValues("alloc").Set(float64(alloc))
	m.memoryAlloc.WithLabelValues("sys").Set(float64(sys))
}

// UpdateGoroutines sets the number of goroutines.
func (m *Manager) UpdateGoroutines(count int) {
	m.goroutines.Set(float64(count))
}

// RecordGCPause observes a GC pause time in milliseconds.
func (m *Manager) RecordGCPause(pauseMs float64) {
	m.gcPause.Observe(pauseMs)
}

// Package-level helpers record on the global manager.

// RecordEvaluation counts one scored parameter set and observes its score.
func RecordEvaluation(source string, score int) { globalManager.RecordEvaluation(source, score) }

// RecordPenalty counts one applied rubric rule.
func RecordPenalty(rule string) { globalManager.RecordPenalty(rule) }

// RecordTier counts one tier assignment under a policy.
func RecordTier(policy, tier string) { globalManager.RecordTier(policy, tier) }

// RecordEvaluationLatency observes evaluation latency in milliseconds.
func RecordEvaluationLatency(latencyMs float64) { globalManager.RecordEvaluationLatency(latencyMs) }

// RecordTechnologyCheck counts one eligibility decision.
func RecordTechnologyCheck(technology string, available bool) {
	globalManager.RecordTechnologyCheck(technology, available)
}

// UpdateCatalogRecords sets the size of a catalog table.
func UpdateCatalogRecords(table string, count int) error {
	return globalManager.UpdateCatalogRecords(table, count)
}

// UpdateRankedBodies sets the leaderboard size.
func UpdateRankedBodies(count int) { globalManager.UpdateRankedBodies(count) }

// RecordCatalogLookup counts one lookup by name.
func RecordCatalogLookup(table string, found bool) { globalManager.RecordCatalogLookup(table, found) }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateMemory sets the runtime memory gauges from heap alloc and sys bytes.
func UpdateMemory(alloc, sys uint64) { globalManager.UpdateMemory(alloc, sys) }

// UpdateGoroutines sets the number of goroutines.
func UpdateGoroutines(count int) { globalManager.UpdateGoroutines(count) }

// RecordGCPause observes a GC pause time in milliseconds.
func RecordGCPause(pauseMs float64) { globalManager.RecordGCPause(pauseMs) }

// Init rebuilds the global manager from opts on a fresh registry. Values
// recorded before Init are dropped. Call it once at startup, before serving.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
	customRegistry = registry
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
