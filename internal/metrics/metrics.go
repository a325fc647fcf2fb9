// Package metrics exposes Prometheus instrumentation for the export pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "karobar_exports_total",
		Help: "Total number of export runs, labelled by scope and status.",
	}, []string{"scope", "status"})

	ExportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "karobar_export_duration_seconds",
		Help:    "End-to-end export run latency in seconds.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	TableFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "karobar_table_fetch_failures_total",
		Help: "Total number of per-table fetch failures, labelled by table.",
	}, []string{"table"})

	RecordsExported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "karobar_records_exported_total",
		Help: "Total number of records included in produced snapshots.",
	})

	ReportsRehydrated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "karobar_reports_rehydrated_total",
		Help: "Total number of uploaded documents re-hydrated into reports.",
	})
)
