package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the FRMS service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Engine Metrics
	ComplianceChecksTotal prometheus.CounterVec
	WhatIfChecksTotal     prometheus.CounterVec
	SectorsImportedTotal  prometheus.Counter
	SectorsSkippedTotal   prometheus.Counter
	EngineCalcDuration    prometheus.HistogramVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frms_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "frms_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "frms_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frms_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "frms_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frms_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frms_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Engine Metrics
		ComplianceChecksTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frms_compliance_checks_total",
				Help: "Total compliance checks by resulting status",
			},
			[]string{"status"},
		),
		WhatIfChecksTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frms_what_if_checks_total",
				Help: "Total what-if evaluations by resulting status",
			},
			[]string{"status"},
		),
		SectorsImportedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "frms_sectors_imported_total",
				Help: "Total flight sectors imported",
			},
		),
		SectorsSkippedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "frms_sectors_skipped_total",
				Help: "Total flight sectors skipped during import as already stored",
			},
		),
		EngineCalcDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "frms_engine_calc_duration_seconds",
				Help:    "Rule engine calculation time in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			},
			[]string{"operation"},
		),
	}
}
