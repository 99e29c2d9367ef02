package domain

// Recommendation is one remediation suggestion. Text is self-contained and
// embeds the figures it refers to. Impact is the evaluator's hand-tuned
// estimate of leverage in [0,1].
type Recommendation struct {
	Category  CategoryKey  `json:"category"`
	Criterion CriterionKey `json:"criterion"`
	Text      string       `json:"text"`
	Impact    float64      `json:"impact"`
}

// Severity returns the display label for the recommendation's impact.
func (r Recommendation) Severity() Severity { return SeverityForImpact(r.Impact) }

// CriterionResult is the output of a single criterion evaluator.
// Details carries the raw and derived figures behind the score for reporting;
// it never feeds back into scoring.
type CriterionResult struct {
	Key             CriterionKey     `json:"key"`
	Name            string           `json:"name"`
	Weight          float64          `json:"weight"`
	Score           float64          `json:"score"`
	Details         map[string]any   `json:"details,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
}

// CategoryResult aggregates the criteria of one category.
// Criteria holds only the criteria that produced a result; Recommendations
// is the concatenation of their recommendations in declaration order.
type CategoryResult struct {
	Key             CategoryKey                      `json:"key"`
	Name            string                           `json:"name"`
	Weight          float64                          `json:"weight"`
	Score           float64                          `json:"score"`
	Letter          Grade                            `json:"letter"`
	Criteria        map[CriterionKey]CriterionResult `json:"criteria"`
	Recommendations []Recommendation                 `json:"recommendations"`
}

// OverallGrade is the weighted mean of the category scores and its letter.
type OverallGrade struct {
	Score  float64 `json:"score"`
	Letter Grade   `json:"letter"`
}

// WarningKind classifies a non-fatal problem found during grading.
type WarningKind string

// Warning kinds attached to a GradingResult.
const (
	// WarningEvaluatorFault marks a criterion excluded because its evaluator failed.
	WarningEvaluatorFault WarningKind = "evaluator_fault"

	// WarningEmptyCategory marks a category with no scored criteria; its score is 0.
	WarningEmptyCategory WarningKind = "empty_category"
)

// Warning is a data-quality problem surfaced alongside an otherwise
// complete result.
type Warning struct {
	Kind      WarningKind  `json:"kind"`
	Category  CategoryKey  `json:"category"`
	Criterion CriterionKey `json:"criterion,omitempty"`
	Message   string       `json:"message"`
}

// GradingResult is everything a grading run hands to reporting.
// CategoryOrder lists the category keys in declaration order so that
// renderers do not depend on map iteration order.
type GradingResult struct {
	Account         AccountInfo                    `json:"account"`
	Overall         OverallGrade                   `json:"overall_grade"`
	Categories      map[CategoryKey]CategoryResult `json:"category_results"`
	CategoryOrder   []CategoryKey                  `json:"category_order"`
	Recommendations []Recommendation               `json:"prioritized_recommendations"`
	Warnings        []Warning                      `json:"warnings,omitempty"`
}

// OrderedCategories returns the category results in declaration order.
func (r *GradingResult) OrderedCategories() []CategoryResult {
	out := make([]CategoryResult, 0, len(r.CategoryOrder))
	for _, key := range r.CategoryOrder {
		if cat, ok := r.Categories[key]; ok {
			out = append(out, cat)
		}
	}
	return out
}

// TopRecommendations returns a copy of the first n prioritized
// recommendations. The full list is left untouched.
func (r *GradingResult) TopRecommendations(n int) []Recommendation {
	return TopN(r.Recommendations, n)
}

// TopN returns a newly allocated copy of at most n leading elements of recs.
// A non-positive n yields an empty slice.
func TopN(recs []Recommendation, n int) []Recommendation {
	if n <= 0 {
		return []Recommendation{}
	}
	if n > len(recs) {
		n = len(recs)
	}
	out := make([]Recommendation, n)
	copy(out, recs[:n])
	return out
}
