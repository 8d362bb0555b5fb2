// Package metrics holds the process-wide Prometheus collectors. Label values
// are always drawn from fixed sets; caller-supplied names such as table names
// never become labels.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScanPagesTotal tracks pages fetched while loading a table
	ScanPagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bizday_scan_pages_total",
			Help: "Total number of scan pages fetched from the document store",
		},
	)

	// ScanErrorsTotal tracks aborted scans
	ScanErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizday_scan_errors_total",
			Help: "Total number of scans aborted by an error or a limit",
		},
		[]string{"reason"},
	)

	// HolidaysLoaded tracks the size of loaded holiday sets
	HolidaysLoaded = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bizday_holidays_loaded",
			Help:    "Number of holidays per loaded set",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// CalculationsTotal tracks business-day calculations by mode and outcome
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizday_calculations_total",
			Help: "Total number of business-day calculations",
		},
		[]string{"mode", "outcome"},
	)

	// CalculationLatency tracks end-to-end calculation latency, scan included
	CalculationLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bizday_calculation_latency_seconds",
			Help:    "Calculation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	// WriteAttemptsTotal tracks best-effort write attempts
	WriteAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizday_write_attempts_total",
			Help: "Total number of best-effort write attempts",
		},
		[]string{"outcome"},
	)

	// WritesDroppedTotal tracks records dropped after the retry ceiling or on shutdown
	WritesDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizday_writes_dropped_total",
			Help: "Total number of best-effort writes dropped",
		},
		[]string{"reason"},
	)

	// DBConnectionPoolUsage tracks DB connection pool usage percentage
	DBConnectionPoolUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bizday_db_connection_pool_usage",
			Help: "Database connection pool usage percentage",
		},
	)
)
