// Package evaluators provides the criterion evaluators that implement
// ports.CriterionEvaluator for the ten grading categories.
//
// Every evaluator is a piecewise-threshold policy: bands are checked top-down,
// the first matching band wins, boundary values belong to the better band and
// a catch-all band always exists. Ratios go through domain.SafeRatio so a zero
// denominator yields 0 rather than NaN.
package evaluators

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ahrav/go-adgrader/internal/domain"
	"github.com/ahrav/go-adgrader/internal/ports"
)

var _ ports.CriterionEvaluator = (*Evaluator)(nil)

// ErrNilSnapshot is returned when Evaluate is called without a snapshot.
var ErrNilSnapshot = errors.New("evaluator called with nil snapshot")

// scoreFunc computes a criterion score and records details and
// recommendations on the outcome.
type scoreFunc func(s *domain.MetricsSnapshot, cfg domain.Config, o *outcome) float64

// Evaluator scores a single criterion with a fixed banding policy.
// It is stateless and safe for concurrent use.
type Evaluator struct {
	category  domain.CategoryKey
	criterion domain.CriterionKey
	score     scoreFunc
}

func newEvaluator(category domain.CategoryKey, criterion domain.CriterionKey, fn scoreFunc) *Evaluator {
	return &Evaluator{category: category, criterion: criterion, score: fn}
}

// Category returns the category the criterion belongs to.
func (e *Evaluator) Category() domain.CategoryKey { return e.category }

// Criterion returns the criterion this evaluator scores.
func (e *Evaluator) Criterion() domain.CriterionKey { return e.criterion }

// Evaluate runs the banding policy against the snapshot. Name and Weight
// of the result are left for the aggregator to fill from the definition.
func (e *Evaluator) Evaluate(_ context.Context, s *domain.MetricsSnapshot, cfg domain.Config) (domain.CriterionResult, error) {
	if s == nil {
		return domain.CriterionResult{}, ErrNilSnapshot
	}

	o := &outcome{
		category:        e.category,
		criterion:       e.criterion,
		details:         make(map[string]any),
		recommendations: make([]domain.Recommendation, 0, 2),
	}
	score := e.score(s, cfg, o)

	return domain.CriterionResult{
		Key:             e.criterion,
		Score:           score,
		Details:         o.details,
		Recommendations: o.recommendations,
	}, nil
}

// outcome accumulates the details and recommendations of one evaluation.
type outcome struct {
	category        domain.CategoryKey
	criterion       domain.CriterionKey
	details         map[string]any
	recommendations []domain.Recommendation
}

func (o *outcome) detail(key string, value any) { o.details[key] = value }

func (o *outcome) recommend(impact float64, format string, args ...any) {
	o.recommendations = append(o.recommendations, domain.Recommendation{
		Category:  o.category,
		Criterion: o.criterion,
		Text:      fmt.Sprintf(format, args...),
		Impact:    impact,
	})
}

// percent renders a fraction as a whole percentage, e.g. 0.456 -> "46%".
func percent(fraction float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(fraction*100)))
}

// ratio is domain.SafeRatio for integer operands.
func ratio[N int | int64](num, den N) float64 {
	return domain.SafeRatio(float64(num), float64(den))
}

// clamp01 limits a ratio to [0,1]; collectors sometimes report overlapping
// counts that push a share above one.
func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// All returns one evaluator per criterion of the default catalog, in
// category and criterion declaration order.
func All() []ports.CriterionEvaluator {
	groups := [][]*Evaluator{
		campaignOrganization(),
		conversionTracking(),
		keywordStrategy(),
		negativeKeywords(),
		biddingStrategy(),
		adCreative(),
		qualityScore(),
		audienceStrategy(),
		landingPage(),
		competitiveAnalysis(),
	}

	var out []ports.CriterionEvaluator
	for _, g := range groups {
		for _, e := range g {
			out = append(out, e)
		}
	}
	return out
}
