package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ImportMetrics contains Prometheus metrics for bulk import operations.
type ImportMetrics struct {
	registry *prometheus.Registry

	rowsTotal     *prometheus.CounterVec
	batchesTotal  *prometheus.CounterVec
	batchDuration *prometheus.HistogramVec

	collectors []prometheus.Collector
}

// NewImportMetrics creates and registers new import metrics
func NewImportMetrics(registry *prometheus.Registry) (*ImportMetrics, error) {
	m := &ImportMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ImportMetrics) initMetrics() {
	m.rowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskradar_import_rows_total",
			Help: "Total number of bulk import rows by outcome",
		},
		[]string{"entity", "outcome"}, // entity: risk, signal; outcome: created, rejected
	)

	m.batchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskradar_import_batches_total",
			Help: "Total number of bulk import batches",
		},
		[]string{"entity"},
	)

	m.batchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "riskradar_import_batch_duration_seconds",
			Help:    "Time taken to process an import batch",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"entity"},
	)

	m.collectors = []prometheus.Collector{
		m.rowsTotal,
		m.batchesTotal,
		m.batchDuration,
	}
}

// Describe implements the Collector interface
func (m *ImportMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *ImportMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

// RecordRow records the outcome of a single import row.
func (m *ImportMetrics) RecordRow(entity, outcome string) {
	m.rowsTotal.WithLabelValues(entity, outcome).Inc()
}

// RecordBatch records a completed import batch and its duration.
func (m *ImportMetrics) RecordBatch(entity string, seconds float64) {
	m.batchesTotal.WithLabelValues(entity).Inc()
	m.batchDuration.WithLabelValues(entity).Observe(seconds)
}
