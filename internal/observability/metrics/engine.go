// Package metrics provides Prometheus collectors for the assessment engine,
// the bulk importer and the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics contains Prometheus metrics for assessment computation.
type EngineMetrics struct {
	registry *prometheus.Registry

	assessmentsTotal  *prometheus.CounterVec
	assessmentScores  prometheus.Histogram
	recomputeDuration *prometheus.HistogramVec

	collectors []prometheus.Collector
}

// NewEngineMetrics creates and registers new engine metrics
func NewEngineMetrics(registry *prometheus.Registry) (*EngineMetrics, error) {
	m := &EngineMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *EngineMetrics) initMetrics() {
	m.assessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskradar_assessments_total",
			Help: "Total number of assessments computed and persisted",
		},
		[]string{"trigger", "status"}, // trigger: single, batch, seed; status: success, error
	)

	m.assessmentScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "riskradar_assessment_score",
			Help:    "Distribution of computed risk scores",
			Buckets: prometheus.LinearBuckets(0, 0.5, 11), // 0.0 to 5.0
		},
	)

	m.recomputeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "riskradar_recompute_duration_seconds",
			Help:    "Time taken for recompute operations including persistence",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"trigger"},
	)

	m.collectors = []prometheus.Collector{
		m.assessmentsTotal,
		m.assessmentScores,
		m.recomputeDuration,
	}
}

// Describe implements the Collector interface
func (m *EngineMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *EngineMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

// RecordAssessment records a computed assessment and its score.
func (m *EngineMetrics) RecordAssessment(trigger string, score float64) {
	m.assessmentsTotal.WithLabelValues(trigger, "success").Inc()
	m.assessmentScores.Observe(score)
}

// RecordAssessmentError records a failed assessment attempt.
func (m *EngineMetrics) RecordAssessmentError(trigger string) {
	m.assessmentsTotal.WithLabelValues(trigger, "error").Inc()
}

// RecordRecomputeDuration records the duration of a recompute operation.
func (m *EngineMetrics) RecordRecomputeDuration(trigger string, seconds float64) {
	m.recomputeDuration.WithLabelValues(trigger).Observe(seconds)
}
