package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-adgrader/internal/domain"
	"github.com/ahrav/go-adgrader/internal/ports"
)

// MetricEvaluatorLatency is the histogram MetricsMiddleware reports
// evaluation time under, in seconds.
const MetricEvaluatorLatency = "evaluator_latency_seconds"

// tracedEvaluator wraps each evaluation in an OpenTelemetry span.
type tracedEvaluator struct {
	next   ports.CriterionEvaluator
	tracer trace.Tracer
}

var _ ports.CriterionEvaluator = (*tracedEvaluator)(nil)

// TracingMiddleware creates middleware that records one span per criterion
// evaluation, tagged with the category and criterion keys and the score.
// The tracer is taken from the global provider under serviceName.
func TracingMiddleware(serviceName string) ports.EvaluatorMiddleware {
	tracer := otel.Tracer(serviceName)
	return func(next ports.CriterionEvaluator) ports.CriterionEvaluator {
		return &tracedEvaluator{next: next, tracer: tracer}
	}
}

func (t *tracedEvaluator) Category() domain.CategoryKey   { return t.next.Category() }
func (t *tracedEvaluator) Criterion() domain.CriterionKey { return t.next.Criterion() }

// Evaluate runs the wrapped evaluator inside a span. Errors are recorded on
// the span and returned unchanged.
func (t *tracedEvaluator) Evaluate(
	ctx context.Context,
	snapshot *domain.MetricsSnapshot,
	cfg domain.Config,
) (domain.CriterionResult, error) {
	ctx, span := t.tracer.Start(ctx, "CriterionEvaluator.Evaluate",
		trace.WithAttributes(
			attribute.String("category.key", string(t.next.Category())),
			attribute.String("criterion.key", string(t.next.Criterion())),
		))
	defer span.End()

	res, err := t.next.Evaluate(ctx, snapshot, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}

	span.SetAttributes(
		attribute.Float64("criterion.score", res.Score),
		attribute.Int("criterion.recommendations", len(res.Recommendations)),
	)
	span.SetStatus(codes.Ok, "")
	return res, nil
}

// metricsEvaluator reports evaluation latency and outcome.
type metricsEvaluator struct {
	next      ports.CriterionEvaluator
	collector ports.MetricsCollector
}

var _ ports.CriterionEvaluator = (*metricsEvaluator)(nil)

// MetricsMiddleware creates middleware that records evaluation latency in
// the MetricEvaluatorLatency histogram. A nil collector makes it a
// pass-through.
func MetricsMiddleware(collector ports.MetricsCollector) ports.EvaluatorMiddleware {
	return func(next ports.CriterionEvaluator) ports.CriterionEvaluator {
		if collector == nil {
			return next
		}
		return &metricsEvaluator{next: next, collector: collector}
	}
}

func (m *metricsEvaluator) Category() domain.CategoryKey   { return m.next.Category() }
func (m *metricsEvaluator) Criterion() domain.CriterionKey { return m.next.Criterion() }

func (m *metricsEvaluator) Evaluate(
	ctx context.Context,
	snapshot *domain.MetricsSnapshot,
	cfg domain.Config,
) (domain.CriterionResult, error) {
	start := time.Now()
	res, err := m.next.Evaluate(ctx, snapshot, cfg)

	status := "success"
	if err != nil {
		status = "error"
	}
	m.collector.RecordHistogram(MetricEvaluatorLatency, time.Since(start).Seconds(), map[string]string{
		"category":  string(m.next.Category()),
		"criterion": string(m.next.Criterion()),
		"status":    status,
	})
	return res, err
}
