// Package middleware provides cross-cutting concerns for the grading engine.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-adgrader/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using Prometheus.
// It exposes grading run counts, evaluator faults, score distributions and
// operation latency.
type PrometheusMetrics struct {
	gradingRuns      *prometheus.CounterVec
	evaluatorFaults  *prometheus.CounterVec
	overallScore     prometheus.Gauge
	categoryScore    *prometheus.GaugeVec
	criterionScore   *prometheus.HistogramVec
	executionLatency *prometheus.HistogramVec
	operationCounter *prometheus.CounterVec
	systemGauges     *prometheus.GaugeVec
}

// scoreBuckets spans the 0-100 score range in steps of ten.
var scoreBuckets = prometheus.LinearBuckets(10, 10, 10)

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// all of its metrics with reg. Passing prometheus.DefaultRegisterer exposes
// them on the global registry; tests pass a fresh prometheus.NewRegistry().
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		// Grading-specific metrics.
		gradingRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adgrader_grading_runs_total",
				Help: "Total number of grading runs by outcome.",
			},
			[]string{"status"},
		),
		evaluatorFaults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adgrader_evaluator_faults_total",
				Help: "Criterion evaluations excluded because the evaluator failed.",
			},
			[]string{"category", "criterion"},
		),
		overallScore: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "adgrader_overall_score",
				Help: "Overall score of the most recent grading run.",
			},
		),
		categoryScore: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "adgrader_category_score",
				Help: "Category score of the most recent grading run.",
			},
			[]string{"category"},
		),
		criterionScore: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "adgrader_criterion_score",
				Help:    "Distribution of criterion scores.",
				Buckets: scoreBuckets,
			},
			[]string{"category"},
		),

		// General execution metrics.
		executionLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "adgrader_operation_duration_seconds",
				Help:    "Execution time of grading operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "category"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adgrader_operations_total",
				Help: "Total number of other counted operations.",
			},
			[]string{"operation", "status", "category"},
		),
		systemGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "adgrader_system_state",
				Help: "Other reported gauge values.",
			},
			[]string{"metric", "category"},
		),
	}
}

// category returns the category label, defaulting to "unknown".
func category(labels map[string]string) string {
	if c, ok := labels["category"]; ok && c != "" {
		return c
	}
	return "unknown"
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.executionLatency.WithLabelValues(operation, category(labels)).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case ports.MetricGradingRuns:
		status, ok := labels["status"]
		if !ok {
			status = "unknown"
		}
		pm.gradingRuns.WithLabelValues(status).Add(value)
	case ports.MetricEvaluatorFaults:
		criterion, ok := labels["criterion"]
		if !ok {
			criterion = "unknown"
		}
		pm.evaluatorFaults.WithLabelValues(category(labels), criterion).Add(value)
	default:
		status, ok := labels["status"]
		if !ok {
			status = "success"
		}
		pm.operationCounter.WithLabelValues(metric, status, category(labels)).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case ports.MetricOverallScore:
		pm.overallScore.Set(value)
	case ports.MetricCategoryScore:
		pm.categoryScore.WithLabelValues(category(labels)).Set(value)
	default:
		pm.systemGauges.WithLabelValues(metric, category(labels)).Set(value)
	}
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in a Prometheus histogram. Values other than criterion scores are
// recorded as operation durations in seconds.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	if metric == ports.MetricCriterionScore {
		pm.criterionScore.WithLabelValues(category(labels)).Observe(value)
		return
	}
	pm.executionLatency.WithLabelValues(metric, category(labels)).Observe(value)
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
