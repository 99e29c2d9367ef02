package domain

import "maps"

// Config is the immutable grading configuration. It is passed by value into
// the grader; nothing in the engine writes to it after construction.
type Config struct {
	// GradeThresholds are the inclusive lower bounds of grades A through D.
	GradeThresholds GradeThresholds `yaml:"grade_thresholds" json:"grade_thresholds"`

	// BestPractices are numeric targets used inside evaluators.
	BestPractices BestPractices `yaml:"best_practices" json:"best_practices"`

	// IndustryBenchmarks are comparison baselines for performance figures.
	IndustryBenchmarks IndustryBenchmarks `yaml:"industry_benchmarks" json:"industry_benchmarks"`

	// CategoryWeights assigns each category its share of the overall score.
	// The ten weights must sum to 100.
	CategoryWeights map[CategoryKey]float64 `yaml:"category_weights" json:"category_weights" validate:"required,len=10,weightsum,dive,keys,category_key,endkeys,gt=0,max=100"`

	// Prioritization controls recommendation deduplication and view sizes.
	Prioritization PrioritizationConfig `yaml:"prioritization" json:"prioritization"`
}

// BestPractices are the targets evaluators measure accounts against.
type BestPractices struct {
	KeywordsPerAdGroup int     `yaml:"keywords_per_ad_group" json:"keywords_per_ad_group" validate:"min=1"`
	AdsPerAdGroup      int     `yaml:"ads_per_ad_group" json:"ads_per_ad_group" validate:"min=1"`
	MinExtensionTypes  int     `yaml:"min_extension_types" json:"min_extension_types" validate:"min=1"`
	MinQualityScore    float64 `yaml:"min_quality_score" json:"min_quality_score" validate:"min=1,max=10"`
}

// IndustryBenchmarks are cross-industry search averages. CTR and
// ConversionRate are percentages; CPC is in account currency.
type IndustryBenchmarks struct {
	CTR            float64 `yaml:"ctr" json:"ctr" validate:"gt=0,max=100"`
	ConversionRate float64 `yaml:"conversion_rate" json:"conversion_rate" validate:"gt=0,max=100"`
	CPC            float64 `yaml:"cpc" json:"cpc" validate:"gt=0"`
	QualityScore   float64 `yaml:"quality_score" json:"quality_score" validate:"gt=0,max=10"`
}

// PrioritizationConfig tunes the recommendation prioritizer.
type PrioritizationConfig struct {
	// DedupSimilarity is the normalized Levenshtein similarity at or above
	// which a later recommendation is treated as a duplicate of an earlier
	// one. 1 removes exact (case-insensitive) duplicates only.
	DedupSimilarity float64 `yaml:"dedup_similarity" json:"dedup_similarity" validate:"gt=0,max=1"`

	// ReportLimit is the size of the report view.
	ReportLimit int `yaml:"report_limit" json:"report_limit" validate:"min=1"`

	// DigestLimit is the size of the e-mail digest view.
	DigestLimit int `yaml:"digest_limit" json:"digest_limit" validate:"min=1"`
}

// Default view sizes for the report and the e-mail digest.
const (
	DefaultReportLimit = 10
	DefaultDigestLimit = 5
)

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	weights := make(map[CategoryKey]float64, 10)
	for _, def := range DefaultCategories() {
		weights[def.Key] = def.Weight
	}

	return Config{
		GradeThresholds: DefaultGradeThresholds(),
		BestPractices: BestPractices{
			KeywordsPerAdGroup: 20,
			AdsPerAdGroup:      3,
			MinExtensionTypes:  4,
			MinQualityScore:    7,
		},
		IndustryBenchmarks: IndustryBenchmarks{
			CTR:            3.17,
			ConversionRate: 3.75,
			CPC:            2.69,
			QualityScore:   6,
		},
		CategoryWeights: weights,
		Prioritization: PrioritizationConfig{
			DedupSimilarity: 0.92,
			ReportLimit:     DefaultReportLimit,
			DigestLimit:     DefaultDigestLimit,
		},
	}
}

// Clone returns a deep copy so callers can derive variants without sharing
// the weight map.
func (c Config) Clone() Config {
	out := c
	out.CategoryWeights = maps.Clone(c.CategoryWeights)
	return out
}

// ResolveCategories returns fresh category definitions with weights taken
// from the configuration.
func (c Config) ResolveCategories(defs []CategoryDefinition) []CategoryDefinition {
	out := make([]CategoryDefinition, len(defs))
	for i, d := range defs {
		d.Criteria = append([]CriterionDefinition(nil), d.Criteria...)
		if w, ok := c.CategoryWeights[d.Key]; ok {
			d.Weight = w
		}
		out[i] = d
	}
	return out
}
