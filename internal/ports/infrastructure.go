package ports

import (
	"context"
	"io"
	"time"

	"github.com/ahrav/go-adgrader/internal/domain"
)

// MetricsCollector defines the interface for collecting operational metrics.
// Implementations should integrate with observability platforms like
// Prometheus, OpenTelemetry, or custom monitoring solutions.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	// This is useful for tracking events like grading runs and evaluator faults.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	// This is useful for tracking the latest category scores.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram.
	// This is useful for tracking distributions like criterion scores.
	RecordHistogram(metric string, value float64, labels map[string]string)
}

// ConfigLoader loads and validates grading configuration.
// Implementations overlay the supplied document on domain.DefaultConfig, so
// a document only needs the fields it changes.
type ConfigLoader interface {
	// LoadFromFile reads configuration from a file on disk.
	LoadFromFile(ctx context.Context, path string) (domain.Config, error)

	// LoadFromReader reads configuration from any reader.
	LoadFromReader(ctx context.Context, r io.Reader) (domain.Config, error)
}

// SnapshotLoader decodes metrics snapshots produced by the collector.
type SnapshotLoader interface {
	// LoadFromFile decodes a snapshot, choosing the format by extension.
	LoadFromFile(ctx context.Context, path string) (*domain.MetricsSnapshot, error)

	// LoadFromReader decodes a snapshot in the named format ("json" or "yaml").
	LoadFromReader(ctx context.Context, r io.Reader, format string) (*domain.MetricsSnapshot, error)
}

// Metric names the grader reports through a MetricsCollector.
// Labels used alongside them are "category", "criterion" and "status".
const (
	MetricGradingRuns     = "grading_runs_total"
	MetricEvaluatorFaults = "evaluator_faults_total"
	MetricOverallScore    = "overall_score"
	MetricCategoryScore   = "category_score"
	MetricCriterionScore  = "criterion_score"
)
