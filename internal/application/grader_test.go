package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-adgrader/internal/domain"
	"github.com/ahrav/go-adgrader/internal/ports"
	"github.com/ahrav/go-adgrader/internal/testutils"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestGrader(t *testing.T, registry ports.EvaluatorRegistry, opts ...Option) *AccountGrader {
	t.Helper()

	if registry == nil {
		r, err := NewDefaultEvaluatorRegistry()
		require.NoError(t, err)
		registry = r
	}
	opts = append([]Option{WithLogger(quietLogger)}, opts...)
	g, err := NewAccountGrader(domain.DefaultConfig(), registry, opts...)
	require.NoError(t, err)
	return g
}

// recordingMetrics captures everything the grader reports.
type recordingMetrics struct {
	mu         sync.Mutex
	counters   map[string]float64
	gauges     map[string]int
	histograms map[string]int
	latencies  []string
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		counters:   make(map[string]float64),
		gauges:     make(map[string]int),
		histograms: make(map[string]int),
	}
}

func (m *recordingMetrics) RecordLatency(op string, _ time.Duration, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latencies = append(m.latencies, op+":"+labels["status"])
}

func (m *recordingMetrics) RecordCounter(metric string, value float64, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[metric+":"+labels["status"]] += value
}

func (m *recordingMetrics) RecordGauge(metric string, _ float64, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[metric]++
}

func (m *recordingMetrics) RecordHistogram(metric string, _ float64, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histograms[metric]++
}

func TestAccountGrader_PerfectAccount(t *testing.T) {
	g := newTestGrader(t, testutils.NewStubRegistry(100))

	res, err := g.Grade(context.Background(), testutils.SampleSnapshot())
	require.NoError(t, err)

	assert.Equal(t, 100.0, res.Overall.Score)
	assert.Equal(t, domain.GradeA, res.Overall.Letter)
	require.Len(t, res.Categories, 10)
	for _, cat := range res.Categories {
		assert.Equal(t, 100.0, cat.Score, cat.Key)
		assert.Equal(t, domain.GradeA, cat.Letter, cat.Key)
	}
	assert.Empty(t, res.Warnings)
	assert.NotNil(t, res.Recommendations)
	assert.Empty(t, res.Recommendations)
	assert.Equal(t, domain.CategoryKeys(domain.DefaultCategories()), res.CategoryOrder)
	assert.Equal(t, "123-456-7890", res.Account.ID)
}

func TestAccountGrader_OverallIsWeightedMean(t *testing.T) {
	registry := testutils.NewStubRegistry(100)
	for _, c := range domain.DefaultCategories()[1].Criteria {
		registry.Stub(c.Key).Score = 0
	}
	g := newTestGrader(t, registry)

	res, err := g.Grade(context.Background(), testutils.SampleSnapshot())
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Categories[domain.CategoryConversionTracking].Score)
	assert.Equal(t, domain.GradeF, res.Categories[domain.CategoryConversionTracking].Letter)
	assert.InDelta(t, 85, res.Overall.Score, 1e-9)
	assert.Equal(t, domain.GradeB, res.Overall.Letter)
}

func TestAccountGrader_CustomWeights(t *testing.T) {
	registry := testutils.NewStubRegistry(100)
	for _, c := range domain.DefaultCategories()[0].Criteria {
		registry.Stub(c.Key).Score = 50
	}

	cfg := domain.DefaultConfig()
	cfg.CategoryWeights[domain.CategoryCampaignOrganization] = 20
	cfg.CategoryWeights[domain.CategoryConversionTracking] = 5

	g, err := NewAccountGrader(cfg, registry, WithLogger(quietLogger))
	require.NoError(t, err)

	res, err := g.Grade(context.Background(), testutils.SampleSnapshot())
	require.NoError(t, err)

	assert.InDelta(t, 90, res.Overall.Score, 1e-9)
	assert.Equal(t, 20.0, res.Categories[domain.CategoryCampaignOrganization].Weight)
}

func TestAccountGrader_EvaluatorFaults(t *testing.T) {
	tests := []struct {
		name  string
		fault func(*testutils.StubEvaluator)
	}{
		{"panic", func(s *testutils.StubEvaluator) { s.Panic = true }},
		{"error", func(s *testutils.StubEvaluator) { s.Err = errors.New("boom") }},
		{"score above range", func(s *testutils.StubEvaluator) { s.Score = 140 }},
		{"negative score", func(s *testutils.StubEvaluator) { s.Score = -1 }},
		{"nan score", func(s *testutils.StubEvaluator) { s.Score = math.NaN() }},
		{"infinite score", func(s *testutils.StubEvaluator) { s.Score = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := testutils.NewStubRegistry(80)
			registry.Stub(domain.CriterionRemarketing).Score = 20
			registry.Stub(domain.CriterionCustomerMatch).Score = 40
			tt.fault(registry.Stub(domain.CriterionRemarketing))
			metrics := newRecordingMetrics()
			g := newTestGrader(t, registry, WithMetrics(metrics))

			res, err := g.Grade(context.Background(), testutils.SampleSnapshot())
			require.NoError(t, err)

			require.Len(t, res.Warnings, 1)
			w := res.Warnings[0]
			assert.Equal(t, domain.WarningEvaluatorFault, w.Kind)
			assert.Equal(t, domain.CategoryAudienceStrategy, w.Category)
			assert.Equal(t, domain.CriterionRemarketing, w.Criterion)

			cat := res.Categories[domain.CategoryAudienceStrategy]
			assert.NotContains(t, cat.Criteria, domain.CriterionRemarketing)
			assert.Len(t, cat.Criteria, 3)
			// (40*25 + 80*25 + 80*15) / 65
			assert.InDelta(t, 4200.0/65, cat.Score, 1e-9)
			assert.Equal(t, 1.0, metrics.counters[ports.MetricEvaluatorFaults+":"])
		})
	}
}

func TestAccountGrader_EmptyCategory(t *testing.T) {
	registry := testutils.NewStubRegistry(100)
	for _, c := range domain.DefaultCategories()[9].Criteria {
		registry.Stub(c.Key).Err = errors.New("no data source")
	}
	g := newTestGrader(t, registry)

	res, err := g.Grade(context.Background(), testutils.SampleSnapshot())
	require.NoError(t, err)

	cat := res.Categories[domain.CategoryCompetitiveAnalysis]
	assert.Equal(t, 0.0, cat.Score)
	assert.Empty(t, cat.Criteria)

	var kinds []domain.WarningKind
	for _, w := range res.Warnings {
		kinds = append(kinds, w.Kind)
	}
	assert.Equal(t, []domain.WarningKind{
		domain.WarningEvaluatorFault,
		domain.WarningEvaluatorFault,
		domain.WarningEvaluatorFault,
		domain.WarningEvaluatorFault,
		domain.WarningEmptyCategory,
	}, kinds)
	assert.InDelta(t, 93, res.Overall.Score, 1e-9)
}

func TestAccountGrader_Preconditions(t *testing.T) {
	g := newTestGrader(t, nil)

	tests := []struct {
		name    string
		snap    *domain.MetricsSnapshot
		wantErr error
	}{
		{"nil snapshot", nil, domain.ErrNilSnapshot},
		{"empty snapshot", &domain.MetricsSnapshot{}, domain.ErrEmptySnapshot},
		{"version only", &domain.MetricsSnapshot{SchemaVersion: "1"}, domain.ErrEmptySnapshot},
		{
			"future schema",
			&domain.MetricsSnapshot{SchemaVersion: "2", Account: domain.AccountInfo{ID: "1"}},
			domain.ErrUnsupportedSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := g.Grade(context.Background(), tt.snap)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, domain.GradingResult{}, res)
		})
	}

	_, err := g.Grade(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrPrecondition)
}

func TestAccountGrader_ZeroStructureIsFinite(t *testing.T) {
	g := newTestGrader(t, nil)

	res, err := g.Grade(context.Background(), testutils.EmptyStructureSnapshot())
	require.NoError(t, err)

	assert.Empty(t, res.Warnings)
	assertScoresInRange(t, res)
}

func TestAccountGrader_RealEvaluators(t *testing.T) {
	g := newTestGrader(t, nil)

	t.Run("healthy account", func(t *testing.T) {
		res, err := g.Grade(context.Background(), testutils.SampleSnapshot())
		require.NoError(t, err)

		assertScoresInRange(t, res)
		assert.Empty(t, res.Warnings)
		assert.GreaterOrEqual(t, res.Overall.Score, 70.0)
	})

	t.Run("neglected account", func(t *testing.T) {
		res, err := g.Grade(context.Background(), testutils.NeglectedSnapshot())
		require.NoError(t, err)

		assertScoresInRange(t, res)
		assert.Less(t, res.Overall.Score, 60.0)
		assert.Equal(t, domain.GradeF, res.Overall.Letter)
		assert.Greater(t, len(res.Recommendations), domain.DefaultReportLimit)
		assert.Len(t, res.TopRecommendations(domain.DefaultReportLimit), domain.DefaultReportLimit)
	})

	t.Run("healthy beats neglected", func(t *testing.T) {
		healthy, err := g.Grade(context.Background(), testutils.SampleSnapshot())
		require.NoError(t, err)
		neglected, err := g.Grade(context.Background(), testutils.NeglectedSnapshot())
		require.NoError(t, err)

		assert.Greater(t, healthy.Overall.Score, neglected.Overall.Score)
		assert.False(t, neglected.Overall.Letter.Better(healthy.Overall.Letter))
	})
}

func TestAccountGrader_GeneratedSnapshots(t *testing.T) {
	g := newTestGrader(t, nil)
	cfg := domain.DefaultConfig()

	for seed := uint64(1); seed <= 50; seed++ {
		res, err := g.Grade(context.Background(), testutils.GenerateSnapshot(seed))
		require.NoError(t, err, "seed %d", seed)

		assertScoresInRange(t, res)
		assert.Empty(t, res.Warnings, "seed %d", seed)
		assert.Equal(t, cfg.GradeThresholds.Grade(res.Overall.Score), res.Overall.Letter)
		for _, cat := range res.Categories {
			assert.Equal(t, cfg.GradeThresholds.Grade(cat.Score), cat.Letter)
		}
	}
}

func TestAccountGrader_Deterministic(t *testing.T) {
	sequential := newTestGrader(t, nil, WithConcurrency(1))
	parallel := newTestGrader(t, nil, WithConcurrency(8))

	for _, snap := range []*domain.MetricsSnapshot{
		testutils.SampleSnapshot(),
		testutils.NeglectedSnapshot(),
		testutils.GenerateSnapshot(7),
	} {
		first, err := sequential.Grade(context.Background(), snap)
		require.NoError(t, err)
		second, err := parallel.Grade(context.Background(), snap)
		require.NoError(t, err)
		third, err := parallel.Grade(context.Background(), snap)
		require.NoError(t, err)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		c, err := json.Marshal(third)
		require.NoError(t, err)

		assert.JSONEq(t, string(a), string(b))
		assert.Equal(t, b, c)
	}
}

func TestAccountGrader_DoesNotModifySnapshot(t *testing.T) {
	g := newTestGrader(t, nil)
	snap := testutils.SampleSnapshot()

	_, err := g.Grade(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, testutils.SampleSnapshot(), snap)
}

func TestAccountGrader_RecommendationsPrioritized(t *testing.T) {
	registry := testutils.NewStubRegistry(70)
	registry.Stub(domain.CriterionStructure).Recommendations = []domain.Recommendation{
		{Category: domain.CategoryCampaignOrganization, Text: "Split the catch-all campaign by theme", Impact: 0.6},
	}
	registry.Stub(domain.CriterionKeywordResearch).Recommendations = []domain.Recommendation{
		{Category: domain.CategoryKeywordStrategy, Text: "Add negative keywords", Impact: 0.8},
	}
	registry.Stub(domain.CriterionQueryMining).Recommendations = []domain.Recommendation{
		{Category: domain.CategoryNegativeKeywords, Text: "Add negative keywords", Impact: 0.9},
	}
	registry.Stub(domain.CriterionGoalAlignment).Recommendations = []domain.Recommendation{
		{Category: domain.CategoryBiddingStrategy, Text: "Move campaigns to Target CPA bidding", Impact: 0.6},
	}
	g := newTestGrader(t, registry)

	res, err := g.Grade(context.Background(), testutils.SampleSnapshot())
	require.NoError(t, err)

	require.Len(t, res.Recommendations, 3)
	assert.Equal(t, domain.CategoryNegativeKeywords, res.Recommendations[0].Category)
	assert.Equal(t, domain.CategoryCampaignOrganization, res.Recommendations[1].Category)
	assert.Equal(t, domain.CategoryBiddingStrategy, res.Recommendations[2].Category)

	// Category views keep their own copies, duplicates included.
	assert.Len(t, res.Categories[domain.CategoryKeywordStrategy].Recommendations, 1)
}

func TestAccountGrader_CancelledContext(t *testing.T) {
	registry := testutils.NewStubRegistry(90)
	metrics := newRecordingMetrics()
	g := newTestGrader(t, registry, WithMetrics(metrics))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := g.Grade(ctx, testutils.SampleSnapshot())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.GradingResult{}, res)
	assert.Equal(t, int64(0), registry.Stub(domain.CriterionStructure).Calls())
	assert.Equal(t, 1.0, metrics.counters[ports.MetricGradingRuns+":error"])
}

func TestAccountGrader_CancelDuringRun(t *testing.T) {
	registry := testutils.NewStubRegistry(90)
	ctx, cancel := context.WithCancel(context.Background())
	registry.Set(&cancellingEvaluator{
		StubEvaluator: testutils.StubEvaluator{Cat: domain.CategoryCampaignOrganization, Crit: domain.CriterionStructure, Score: 90},
		cancel:        cancel,
	})
	g := newTestGrader(t, registry, WithConcurrency(1))

	res, err := g.Grade(ctx, testutils.SampleSnapshot())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.GradingResult{}, res)
}

// cancellingEvaluator cancels the run from inside an evaluation.
type cancellingEvaluator struct {
	testutils.StubEvaluator
	cancel context.CancelFunc
}

func (c *cancellingEvaluator) Evaluate(ctx context.Context, s *domain.MetricsSnapshot, cfg domain.Config) (domain.CriterionResult, error) {
	c.cancel()
	return c.StubEvaluator.Evaluate(ctx, s, cfg)
}

func TestAccountGrader_Middleware(t *testing.T) {
	var calls atomic.Int64
	var order []string
	var mu sync.Mutex

	tag := func(name string) ports.EvaluatorMiddleware {
		return func(next ports.CriterionEvaluator) ports.CriterionEvaluator {
			return &observedEvaluator{CriterionEvaluator: next, before: func() {
				calls.Add(1)
				if next.Criterion() == domain.CriterionStructure {
					mu.Lock()
					order = append(order, name)
					mu.Unlock()
				}
			}}
		}
	}

	g := newTestGrader(t, testutils.NewStubRegistry(75), WithEvaluatorMiddleware(tag("outer"), tag("inner")))
	res, err := g.Grade(context.Background(), testutils.SampleSnapshot())
	require.NoError(t, err)

	assert.Equal(t, 75.0, res.Overall.Score)
	assert.Equal(t, int64(2*37), calls.Load())
	assert.Equal(t, []string{"outer", "inner"}, order)
}

type observedEvaluator struct {
	ports.CriterionEvaluator
	before func()
}

func (o *observedEvaluator) Evaluate(ctx context.Context, s *domain.MetricsSnapshot, cfg domain.Config) (domain.CriterionResult, error) {
	o.before()
	return o.CriterionEvaluator.Evaluate(ctx, s, cfg)
}

func TestAccountGrader_Metrics(t *testing.T) {
	metrics := newRecordingMetrics()
	g := newTestGrader(t, testutils.NewStubRegistry(88), WithMetrics(metrics))

	_, err := g.Grade(context.Background(), testutils.SampleSnapshot())
	require.NoError(t, err)

	assert.Equal(t, 1.0, metrics.counters[ports.MetricGradingRuns+":success"])
	assert.Equal(t, 10, metrics.gauges[ports.MetricCategoryScore])
	assert.Equal(t, 1, metrics.gauges[ports.MetricOverallScore])
	assert.Equal(t, 37, metrics.histograms[ports.MetricCriterionScore])
	assert.Equal(t, []string{"grade:success"}, metrics.latencies)
}

func TestNewAccountGrader_Errors(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		cfg := domain.DefaultConfig()
		cfg.CategoryWeights[domain.CategoryAdCreative] = 30

		_, err := NewAccountGrader(cfg, testutils.NewStubRegistry(50))
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("invalid catalog", func(t *testing.T) {
		defs := domain.DefaultCategories()
		defs[3].Criteria[0].Weight = 1

		_, err := NewAccountGrader(domain.DefaultConfig(), testutils.NewStubRegistry(50), WithCategories(defs))
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})

	t.Run("missing evaluator", func(t *testing.T) {
		registry := testutils.NewStubRegistry(50)
		registry.Remove(domain.CriterionABTesting)

		_, err := NewAccountGrader(domain.DefaultConfig(), registry)
		assert.ErrorIs(t, err, ports.ErrEvaluatorNotFound)
	})

	t.Run("evaluator in wrong category", func(t *testing.T) {
		registry := testutils.NewStubRegistry(50)
		registry.Set(&testutils.StubEvaluator{Cat: domain.CategoryQualityScore, Crit: domain.CriterionABTesting})

		_, err := NewAccountGrader(domain.DefaultConfig(), registry)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrUnknownCategory)
	})

	t.Run("evaluator in unknown category", func(t *testing.T) {
		registry := testutils.NewStubRegistry(50)
		registry.Set(&testutils.StubEvaluator{Cat: "brandsafety", Crit: domain.CriterionABTesting})

		_, err := NewAccountGrader(domain.DefaultConfig(), registry)
		assert.ErrorIs(t, err, domain.ErrUnknownCategory)
		assert.Contains(t, err.Error(), "brandsafety")
	})

	t.Run("nil registry", func(t *testing.T) {
		_, err := NewAccountGrader(domain.DefaultConfig(), nil)
		assert.Error(t, err)
	})
}

func TestAccountGrader_ConfigIsCopied(t *testing.T) {
	cfg := domain.DefaultConfig()
	g, err := NewAccountGrader(cfg, testutils.NewStubRegistry(50), WithLogger(quietLogger))
	require.NoError(t, err)

	cfg.CategoryWeights[domain.CategoryQualityScore] = 70
	got := g.Config()
	assert.Equal(t, 10.0, got.CategoryWeights[domain.CategoryQualityScore])

	got.CategoryWeights[domain.CategoryQualityScore] = 70
	assert.Equal(t, 10.0, g.Config().CategoryWeights[domain.CategoryQualityScore])
	assert.Len(t, g.Categories(), 10)
}

func TestAccountGrader_ConcurrentGrades(t *testing.T) {
	g := newTestGrader(t, nil)
	want, err := g.Grade(context.Background(), testutils.SampleSnapshot())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]domain.GradingResult, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = g.Grade(context.Background(), testutils.SampleSnapshot())
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want.Overall, got.Overall)
	}
}

func assertScoresInRange(t *testing.T, res domain.GradingResult) {
	t.Helper()

	inRange := func(v float64) bool { return !math.IsNaN(v) && v >= 0 && v <= 100 }
	assert.True(t, inRange(res.Overall.Score), "overall %v", res.Overall.Score)
	for _, cat := range res.Categories {
		assert.True(t, inRange(cat.Score), "%s: %v", cat.Key, cat.Score)
		for _, c := range cat.Criteria {
			assert.True(t, inRange(c.Score), "%s: %v", c.Key, c.Score)
		}
	}
	for i := 1; i < len(res.Recommendations); i++ {
		assert.GreaterOrEqual(t, res.Recommendations[i-1].Impact, res.Recommendations[i].Impact)
	}
}
