package application

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/ahrav/go-adgrader/internal/domain"
)

// RecommendationPrioritizer orders the recommendations of a grading run by
// impact and removes near-duplicates. It holds no mutable state and is safe
// for concurrent use.
type RecommendationPrioritizer struct {
	// similarity is the Levenshtein similarity at or above which a later
	// recommendation is dropped as a duplicate of an earlier one.
	similarity float64
}

// NewRecommendationPrioritizer creates a prioritizer from the
// prioritization settings of a configuration.
func NewRecommendationPrioritizer(cfg domain.PrioritizationConfig) *RecommendationPrioritizer {
	return &RecommendationPrioritizer{similarity: cfg.DedupSimilarity}
}

// Prioritize returns a new slice holding recs sorted by impact, highest
// first. The sort is stable, so equal impacts keep their input order.
// After sorting, a recommendation whose case-folded text is at least as
// similar as the configured threshold to an already kept one is dropped.
// The input slice is never modified or aliased.
func (p *RecommendationPrioritizer) Prioritize(recs []domain.Recommendation) []domain.Recommendation {
	sorted := slices.Clone(recs)
	if sorted == nil {
		sorted = []domain.Recommendation{}
	}
	slices.SortStableFunc(sorted, func(a, b domain.Recommendation) int {
		return cmp.Compare(b.Impact, a.Impact)
	})

	fold := cases.Fold()
	kept := make([]domain.Recommendation, 0, len(sorted))
	keptTexts := make([]string, 0, len(sorted))
	for _, rec := range sorted {
		text := fold.String(rec.Text)
		if p.isDuplicate(text, keptTexts) {
			continue
		}
		kept = append(kept, rec)
		keptTexts = append(keptTexts, text)
	}
	return kept
}

func (p *RecommendationPrioritizer) isDuplicate(text string, kept []string) bool {
	for _, k := range kept {
		if Similarity(text, k) >= p.similarity {
			return true
		}
	}
	return false
}

// Top returns a bounded copy of the first n prioritized recommendations,
// for example 10 for the report and 5 for the e-mail digest.
func (p *RecommendationPrioritizer) Top(recs []domain.Recommendation, n int) []domain.Recommendation {
	return domain.TopN(recs, n)
}

// Similarity returns 1 - distance/maxLen for the Levenshtein distance of
// s1 and s2, measured in runes. Identical strings, including two empty
// ones, have similarity 1.
func Similarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	maxLen := max(utf8.RuneCountInString(s1), utf8.RuneCountInString(s2))
	distance := levenshtein.ComputeDistance(s1, s2)

	return max(0, 1.0-float64(distance)/float64(maxLen))
}
