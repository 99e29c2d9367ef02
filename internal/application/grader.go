package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-adgrader/internal/domain"
	"github.com/ahrav/go-adgrader/internal/ports"
)

// Option configures an AccountGrader.
type Option func(*AccountGrader)

// WithLogger sets the structured logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *AccountGrader) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithMetrics sets the collector that receives run, fault and score metrics.
func WithMetrics(metrics ports.MetricsCollector) Option {
	return func(g *AccountGrader) { g.metrics = metrics }
}

// WithTracer sets the tracer used for grading spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(g *AccountGrader) {
		if tracer != nil {
			g.tracer = tracer
		}
	}
}

// WithConcurrency bounds the number of categories scored in parallel.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(g *AccountGrader) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// WithEvaluatorMiddleware wraps every evaluator. The first middleware is
// the outermost.
func WithEvaluatorMiddleware(mw ...ports.EvaluatorMiddleware) Option {
	return func(g *AccountGrader) { g.middleware = append(g.middleware, mw...) }
}

// WithCategories replaces the default category catalog. Category weights
// still come from the configuration.
func WithCategories(defs []domain.CategoryDefinition) Option {
	return func(g *AccountGrader) { g.catalog = defs }
}

// AccountGrader turns a metrics snapshot into a GradingResult.
// All configuration is checked once in NewAccountGrader; Grade never fails
// on configuration. An AccountGrader is safe for concurrent use.
type AccountGrader struct {
	cfg         domain.Config
	catalog     []domain.CategoryDefinition
	categories  []domain.CategoryDefinition
	evaluators  map[domain.CriterionKey]ports.CriterionEvaluator
	aggregator  *CategoryAggregator
	prioritizer *RecommendationPrioritizer

	logger      *slog.Logger
	metrics     ports.MetricsCollector
	tracer      trace.Tracer
	concurrency int
	middleware  []ports.EvaluatorMiddleware
}

// NewAccountGrader validates cfg and the category catalog and resolves an
// evaluator for every criterion. Configuration problems are returned as a
// *domain.ValidationError; a criterion without an evaluator yields
// ports.ErrEvaluatorNotFound.
func NewAccountGrader(cfg domain.Config, registry ports.EvaluatorRegistry, opts ...Option) (*AccountGrader, error) {
	if registry == nil {
		return nil, fmt.Errorf("evaluator registry cannot be nil")
	}

	g := &AccountGrader{
		cfg:         cfg.Clone(),
		catalog:     domain.DefaultCategories(),
		logger:      slog.Default(),
		tracer:      otel.Tracer("account-grader"),
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := ValidateConfig(g.cfg); err != nil {
		return nil, err
	}
	g.categories = g.cfg.ResolveCategories(g.catalog)
	if err := ValidateCategories(g.categories); err != nil {
		return nil, err
	}
	if err := g.checkWeights(); err != nil {
		return nil, err
	}
	if err := g.resolveEvaluators(registry); err != nil {
		return nil, err
	}

	g.aggregator = NewCategoryAggregator(g.cfg.GradeThresholds)
	g.prioritizer = NewRecommendationPrioritizer(g.cfg.Prioritization)
	return g, nil
}

// checkWeights verifies that the configured weights and the catalog name
// the same categories.
func (g *AccountGrader) checkWeights() error {
	verr := domain.NewValidationError("category_weights")
	seen := make(map[domain.CategoryKey]struct{}, len(g.categories))
	for _, def := range g.categories {
		seen[def.Key] = struct{}{}
		if _, ok := g.cfg.CategoryWeights[def.Key]; !ok {
			verr.AddErrorf("no weight configured for category %q", def.Key)
		}
	}
	for key := range g.cfg.CategoryWeights {
		if _, ok := seen[key]; !ok {
			verr.AddErrorf("weight configured for %q, which is not in the catalog", key)
		}
	}
	return verr.ErrOrNil()
}

// resolveEvaluators looks up and wraps the evaluator of every criterion.
// An evaluator reporting a category outside the catalog yields
// domain.ErrUnknownCategory.
func (g *AccountGrader) resolveEvaluators(registry ports.EvaluatorRegistry) error {
	known := make(map[domain.CategoryKey]struct{}, len(g.categories))
	for _, def := range g.categories {
		known[def.Key] = struct{}{}
	}

	g.evaluators = make(map[domain.CriterionKey]ports.CriterionEvaluator)
	for _, def := range g.categories {
		for _, c := range def.Criteria {
			ev, ok := registry.Lookup(c.Key)
			if !ok {
				return fmt.Errorf("%w: %s", ports.ErrEvaluatorNotFound, c.Key)
			}
			if _, ok := known[ev.Category()]; !ok {
				return fmt.Errorf("evaluator for %s: %w: %q", c.Key, domain.ErrUnknownCategory, ev.Category())
			}
			if ev.Category() != def.Key {
				return fmt.Errorf("evaluator for %s belongs to %q, want %q", c.Key, ev.Category(), def.Key)
			}
			for i := len(g.middleware) - 1; i >= 0; i-- {
				ev = g.middleware[i](ev)
			}
			g.evaluators[c.Key] = ev
		}
	}
	return nil
}

// Config returns a copy of the configuration the grader was built with.
func (g *AccountGrader) Config() domain.Config { return g.cfg.Clone() }

// Categories returns the resolved category definitions in declaration order.
func (g *AccountGrader) Categories() []domain.CategoryDefinition {
	return g.cfg.ResolveCategories(g.categories)
}

// categoryOutcome is the per-category slot filled by a worker.
type categoryOutcome struct {
	result   domain.CategoryResult
	warnings []domain.Warning
}

// Grade scores every category of the snapshot, combines them into an
// overall grade and prioritizes the recommendations.
//
// A nil snapshot fails with domain.ErrNilSnapshot and a snapshot without
// any data with domain.ErrEmptySnapshot. Evaluator faults do not fail the
// run: the criterion is left out of its category and a Warning is attached.
// If ctx is cancelled before the run completes no partial result is
// returned.
func (g *AccountGrader) Grade(ctx context.Context, snap *domain.MetricsSnapshot) (domain.GradingResult, error) {
	start := time.Now()
	ctx, span := g.tracer.Start(ctx, "AccountGrader.Grade",
		trace.WithAttributes(attribute.Int("grader.categories", len(g.categories))))
	defer span.End()

	result, err := g.grade(ctx, snap)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.recordRun("error", start)
		g.logger.ErrorContext(ctx, "grading failed", "error", err)
		return domain.GradingResult{}, err
	}

	span.SetAttributes(
		attribute.String("account.id", result.Account.ID),
		attribute.Float64("grade.score", result.Overall.Score),
		attribute.String("grade.letter", result.Overall.Letter.String()),
		attribute.Int("grade.recommendations", len(result.Recommendations)),
		attribute.Int("grade.warnings", len(result.Warnings)),
	)
	span.SetStatus(codes.Ok, "")
	g.recordRun("success", start)
	g.logger.InfoContext(ctx, "account graded",
		"account_id", result.Account.ID,
		"grade", domain.FormatScore(result.Overall.Letter, result.Overall.Score),
		"recommendations", len(result.Recommendations),
		"warnings", len(result.Warnings),
		"duration", time.Since(start))
	return result, nil
}

func (g *AccountGrader) grade(ctx context.Context, snap *domain.MetricsSnapshot) (domain.GradingResult, error) {
	if snap == nil {
		return domain.GradingResult{}, domain.ErrNilSnapshot
	}
	if snap.IsEmpty() {
		return domain.GradingResult{}, domain.ErrEmptySnapshot
	}
	if v := snap.SchemaVersion; v != "" && v != domain.CurrentSchemaVersion {
		return domain.GradingResult{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedSchema, v)
	}
	if err := ctx.Err(); err != nil {
		return domain.GradingResult{}, err
	}

	slots := make([]categoryOutcome, len(g.categories))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for i, def := range g.categories {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			slots[i] = g.scoreCategory(egCtx, def, snap)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return domain.GradingResult{}, err
	}
	// Evaluators ignore cancellation, so a run that raced a cancel still
	// fails as a whole.
	if err := ctx.Err(); err != nil {
		return domain.GradingResult{}, err
	}

	result := domain.GradingResult{
		Account:       snap.Account,
		Categories:    make(map[domain.CategoryKey]domain.CategoryResult, len(slots)),
		CategoryOrder: make([]domain.CategoryKey, 0, len(slots)),
	}

	var all []domain.Recommendation
	var weighted, weightSum float64
	for _, slot := range slots {
		cat := slot.result
		result.Categories[cat.Key] = cat
		result.CategoryOrder = append(result.CategoryOrder, cat.Key)
		result.Warnings = append(result.Warnings, slot.warnings...)
		all = append(all, cat.Recommendations...)

		weighted += cat.Score * cat.Weight
		weightSum += cat.Weight

		g.record(ports.MetricCategoryScore, cat.Score, map[string]string{"category": string(cat.Key)})
	}

	result.Overall.Score = clampScore(domain.SafeRatio(weighted, weightSum))
	result.Overall.Letter = g.cfg.GradeThresholds.Grade(result.Overall.Score)
	result.Recommendations = g.prioritizer.Prioritize(all)

	g.record(ports.MetricOverallScore, result.Overall.Score, nil)
	return result, nil
}

// scoreCategory runs the evaluators of one category in declaration order
// and aggregates their results.
func (g *AccountGrader) scoreCategory(
	ctx context.Context,
	def domain.CategoryDefinition,
	snap *domain.MetricsSnapshot,
) categoryOutcome {
	ctx, span := g.tracer.Start(ctx, "AccountGrader.scoreCategory",
		trace.WithAttributes(attribute.String("category", string(def.Key))))
	defer span.End()

	results := make(map[domain.CriterionKey]domain.CriterionResult, len(def.Criteria))
	var warnings []domain.Warning
	for _, c := range def.Criteria {
		res, err := g.evaluate(ctx, g.evaluators[c.Key], snap)
		if err != nil {
			fault := domain.NewEvaluatorFaultError(def.Key, c.Key, err)
			span.RecordError(fault)
			g.logger.WarnContext(ctx, "criterion excluded",
				"category", def.Key, "criterion", c.Key, "error", err)
			g.count(ports.MetricEvaluatorFaults, map[string]string{
				"category": string(def.Key), "criterion": string(c.Key),
			})
			warnings = append(warnings, domain.Warning{
				Kind:      domain.WarningEvaluatorFault,
				Category:  def.Key,
				Criterion: c.Key,
				Message:   fault.Error(),
			})
			continue
		}
		res.Key = c.Key
		results[c.Key] = res
		g.histogram(ports.MetricCriterionScore, res.Score, map[string]string{
			"category": string(def.Key), "criterion": string(c.Key),
		})
	}

	out, aggWarnings := g.aggregator.Aggregate(def, results)
	warnings = append(warnings, aggWarnings...)
	span.SetAttributes(
		attribute.Float64("category.score", out.Score),
		attribute.Int("category.criteria", len(out.Criteria)),
	)
	return categoryOutcome{result: out, warnings: warnings}
}

// evaluate calls ev and converts panics, errors and scores outside [0,100]
// into an error.
func (g *AccountGrader) evaluate(
	ctx context.Context,
	ev ports.CriterionEvaluator,
	snap *domain.MetricsSnapshot,
) (res domain.CriterionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	res, err = ev.Evaluate(ctx, snap, g.cfg)
	if err != nil {
		return domain.CriterionResult{}, err
	}
	if math.IsNaN(res.Score) || math.IsInf(res.Score, 0) {
		return domain.CriterionResult{}, errors.New("score is not finite")
	}
	if res.Score < 0 || res.Score > 100 {
		return domain.CriterionResult{}, fmt.Errorf("score %g outside [0,100]", res.Score)
	}
	return res, nil
}

func (g *AccountGrader) recordRun(status string, start time.Time) {
	if g.metrics == nil {
		return
	}
	g.metrics.RecordLatency("grade", time.Since(start), map[string]string{"status": status})
	g.metrics.RecordCounter(ports.MetricGradingRuns, 1, map[string]string{"status": status})
}

func (g *AccountGrader) record(metric string, value float64, labels map[string]string) {
	if g.metrics != nil {
		g.metrics.RecordGauge(metric, value, labels)
	}
}

func (g *AccountGrader) count(metric string, labels map[string]string) {
	if g.metrics != nil {
		g.metrics.RecordCounter(metric, 1, labels)
	}
}

func (g *AccountGrader) histogram(metric string, value float64, labels map[string]string) {
	if g.metrics != nil {
		g.metrics.RecordHistogram(metric, value, labels)
	}
}

// clampScore limits a score to [0,100].
func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
