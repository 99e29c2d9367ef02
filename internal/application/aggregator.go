package application

import (
	"fmt"

	"github.com/ahrav/go-adgrader/internal/domain"
)

// CategoryAggregator folds criterion results into a category result.
type CategoryAggregator struct {
	thresholds domain.GradeThresholds
}

// NewCategoryAggregator creates an aggregator that letters category scores
// with the given thresholds.
func NewCategoryAggregator(thresholds domain.GradeThresholds) *CategoryAggregator {
	return &CategoryAggregator{thresholds: thresholds}
}

// Aggregate computes the weighted mean of the criteria present in results,
// using the weights declared in def. Criteria missing from results take no
// part in either the numerator or the denominator, so a partial category is
// scored on what it has rather than diluted by what it lacks.
//
// Results that belong to no criterion of def are ignored. Recommendations
// are concatenated in criterion declaration order. When no criterion is
// present the score is 0 and an empty_category warning is returned.
func (a *CategoryAggregator) Aggregate(
	def domain.CategoryDefinition,
	results map[domain.CriterionKey]domain.CriterionResult,
) (domain.CategoryResult, []domain.Warning) {
	out := domain.CategoryResult{
		Key:             def.Key,
		Name:            def.Name,
		Weight:          def.Weight,
		Criteria:        make(map[domain.CriterionKey]domain.CriterionResult, len(def.Criteria)),
		Recommendations: []domain.Recommendation{},
	}

	var weighted, weightSum float64
	for _, c := range def.Criteria {
		res, ok := results[c.Key]
		if !ok {
			continue
		}
		res.Name = c.Name
		res.Weight = c.Weight
		if res.Recommendations == nil {
			res.Recommendations = []domain.Recommendation{}
		}

		weighted += res.Score * c.Weight
		weightSum += c.Weight
		out.Criteria[c.Key] = res
		out.Recommendations = append(out.Recommendations, res.Recommendations...)
	}

	var warnings []domain.Warning
	if weightSum > 0 {
		out.Score = clampScore(weighted / weightSum)
	} else {
		warnings = append(warnings, domain.Warning{
			Kind:     domain.WarningEmptyCategory,
			Category: def.Key,
			Message:  fmt.Sprintf("no criterion of %q produced a score; category scored 0", def.Name),
		})
	}
	out.Letter = a.thresholds.Grade(out.Score)

	return out, warnings
}
