package ports

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-adgrader/internal/domain"
)

// Test that our interfaces can be implemented correctly

// mockEvaluator implements CriterionEvaluator.
type mockEvaluator struct {
	criterion domain.CriterionKey
	score     float64
}

func (m *mockEvaluator) Category() domain.CategoryKey   { return domain.CategoryQualityScore }
func (m *mockEvaluator) Criterion() domain.CriterionKey { return m.criterion }
func (m *mockEvaluator) Evaluate(context.Context, *domain.MetricsSnapshot, domain.Config) (domain.CriterionResult, error) {
	return domain.CriterionResult{Key: m.criterion, Score: m.score}, nil
}

// mockMetricsCollector implements MetricsCollector.
type mockMetricsCollector struct {
	latencies  []time.Duration
	counters   map[string]float64
	gauges     map[string]float64
	histograms map[string][]float64
}

// newMockMetricsCollector creates a new mock metrics collector for testing.
func newMockMetricsCollector() *mockMetricsCollector {
	return &mockMetricsCollector{
		latencies:  []time.Duration{},
		counters:   make(map[string]float64),
		gauges:     make(map[string]float64),
		histograms: make(map[string][]float64),
	}
}

func (m *mockMetricsCollector) RecordLatency(operation string, duration time.Duration, labels map[string]string) {
	m.latencies = append(m.latencies, duration)
}

func (m *mockMetricsCollector) RecordCounter(metric string, value float64, labels map[string]string) {
	m.counters[metric] += value
}

func (m *mockMetricsCollector) RecordGauge(metric string, value float64, labels map[string]string) {
	m.gauges[metric] = value
}

func (m *mockMetricsCollector) RecordHistogram(metric string, value float64, labels map[string]string) {
	m.histograms[metric] = append(m.histograms[metric], value)
}

// mockConfigLoader implements ConfigLoader.
type mockConfigLoader struct{ cfg domain.Config }

func (m *mockConfigLoader) LoadFromFile(ctx context.Context, path string) (domain.Config, error) {
	if path == "" {
		return domain.Config{}, NewConfigError(path, ErrConfigNotFound)
	}
	return m.cfg.Clone(), nil
}

func (m *mockConfigLoader) LoadFromReader(ctx context.Context, r io.Reader) (domain.Config, error) {
	return m.cfg.Clone(), nil
}

// mockSnapshotLoader implements SnapshotLoader.
type mockSnapshotLoader struct{}

func (m *mockSnapshotLoader) LoadFromFile(ctx context.Context, path string) (*domain.MetricsSnapshot, error) {
	return nil, NewSnapshotError(path, ErrInvalidSnapshot)
}

func (m *mockSnapshotLoader) LoadFromReader(ctx context.Context, r io.Reader, format string) (*domain.MetricsSnapshot, error) {
	return &domain.MetricsSnapshot{Account: domain.AccountInfo{ID: "1"}}, nil
}

func TestInterfaces_Implementation(t *testing.T) {
	var _ CriterionEvaluator = (*mockEvaluator)(nil)
	var _ MetricsCollector = (*mockMetricsCollector)(nil)
	var _ ConfigLoader = (*mockConfigLoader)(nil)
	var _ SnapshotLoader = (*mockSnapshotLoader)(nil)
}

func TestEvaluatorMiddleware_Chains(t *testing.T) {
	var order []string
	named := func(name string) EvaluatorMiddleware {
		return func(next CriterionEvaluator) CriterionEvaluator {
			order = append(order, name)
			return next
		}
	}

	base := &mockEvaluator{criterion: domain.CriterionExpectedCTR, score: 70}
	var ev CriterionEvaluator = base
	for _, mw := range []EvaluatorMiddleware{named("inner"), named("outer")} {
		ev = mw(ev)
	}

	res, err := ev.Evaluate(context.Background(), &domain.MetricsSnapshot{}, domain.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 70.0, res.Score)
	assert.Equal(t, []string{"inner", "outer"}, order)
}

func TestMetricsCollector_Recording(t *testing.T) {
	collector := newMockMetricsCollector()

	collector.RecordLatency("grade", 25*time.Millisecond, map[string]string{"status": "success"})
	collector.RecordCounter(MetricGradingRuns, 1, map[string]string{"status": "success"})
	collector.RecordCounter(MetricGradingRuns, 1, map[string]string{"status": "error"})
	collector.RecordGauge(MetricOverallScore, 82.5, nil)
	collector.RecordHistogram(MetricCriterionScore, 70, map[string]string{"category": "qualityscore"})
	collector.RecordHistogram(MetricCriterionScore, 90, map[string]string{"category": "qualityscore"})

	assert.Len(t, collector.latencies, 1)
	assert.Equal(t, 2.0, collector.counters[MetricGradingRuns])
	assert.Equal(t, 82.5, collector.gauges[MetricOverallScore])
	assert.Equal(t, []float64{70, 90}, collector.histograms[MetricCriterionScore])
}

func TestConfigLoader_Operations(t *testing.T) {
	loader := &mockConfigLoader{cfg: domain.DefaultConfig()}
	ctx := context.Background()

	cfg, err := loader.LoadFromFile(ctx, "grading.yaml")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig().CategoryWeights, cfg.CategoryWeights)

	cfg.CategoryWeights[domain.CategoryQualityScore] = 0
	again, err := loader.LoadFromFile(ctx, "grading.yaml")
	require.NoError(t, err)
	assert.NotZero(t, again.CategoryWeights[domain.CategoryQualityScore], "loaders hand out copies")

	_, err = loader.LoadFromFile(ctx, "")
	assert.ErrorIs(t, err, ErrConfigNotFound)
}
