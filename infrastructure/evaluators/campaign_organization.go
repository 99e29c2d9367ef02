package evaluators

import (
	"regexp"

	"github.com/ahrav/go-adgrader/internal/domain"
)

// namingPatterns are the conventions a campaign name can follow: location,
// offering and intent. Matches are whole words only. A campaign counts
// toward the first pattern it matches.
var namingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(north|south|east|west|regional|local|national|global)\b`),
	regexp.MustCompile(`(?i)\b(product|service|category|brand)\b`),
	regexp.MustCompile(`(?i)\b(brand|non-brand|generic|competitor|display|search|shopping)\b`),
}

func campaignOrganization() []*Evaluator {
	c := domain.CategoryCampaignOrganization
	return []*Evaluator{
		newEvaluator(c, domain.CriterionStructure, scoreStructure),
		newEvaluator(c, domain.CriterionNaming, scoreNaming),
		newEvaluator(c, domain.CriterionInternalCompetition, scoreInternalCompetition),
	}
}

// scoreStructure averages a keywords-per-ad-group sub-score and an
// ad-groups-per-campaign sub-score.
func scoreStructure(s *domain.MetricsSnapshot, cfg domain.Config, o *outcome) float64 {
	kw := s.KeywordsPerAdGroup()
	ag := s.AdGroupsPerCampaign()
	target := float64(cfg.BestPractices.KeywordsPerAdGroup)

	var kwScore float64
	switch {
	case kw > 2*target:
		kwScore = 50
		o.recommend(0.8, "Ad groups average %.1f keywords, more than twice the target of %d. Split them into tighter themes.",
			kw, cfg.BestPractices.KeywordsPerAdGroup)
	case kw > target:
		kwScore = 75
		o.recommend(0.6, "Ad groups average %.1f keywords against a target of %d. Tighten ad group themes.",
			kw, cfg.BestPractices.KeywordsPerAdGroup)
	default:
		kwScore = 100
	}

	var agScore float64
	switch {
	case ag < 2:
		agScore = 70
		o.recommend(0.5, "Campaigns average only %.1f ad groups. Break keywords out into more specific ad groups.", ag)
	case ag > 20:
		agScore = 80
		o.recommend(0.4, "Campaigns average %.1f ad groups. Split oversized campaigns into focused ones.", ag)
	default:
		agScore = 100
	}

	o.detail("average_keywords_per_ad_group", kw)
	o.detail("average_ad_groups_per_campaign", ag)
	o.detail("keyword_density_score", kwScore)
	o.detail("ad_group_density_score", agScore)

	return (kwScore + agScore) / 2
}

func scoreNaming(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	counts := make([]int, len(namingPatterns))
	types := make(map[string]struct{})
	for _, c := range s.Campaigns {
		for i, re := range namingPatterns {
			if re.MatchString(c.Name) {
				counts[i]++
				break
			}
		}
		if c.Type != "" {
			types[c.Type] = struct{}{}
		}
	}

	best := 0
	for _, n := range counts {
		best = max(best, n)
	}
	consistent := ratio(best, len(s.Campaigns))

	var score float64
	switch {
	case consistent >= 0.8:
		score = 90
	case consistent >= 0.6:
		score = 75
		o.recommend(0.6, "Only %s of campaigns follow a consistent naming convention. Standardize names to include location, product or intent.",
			percent(consistent))
	default:
		score = 50
		o.recommend(0.7, "Campaign names follow no consistent convention (%s consistent). Adopt one naming scheme for every campaign.",
			percent(consistent))
	}

	if len(types) < 2 && len(s.Campaigns) > 5 {
		score -= 10
		o.recommend(0.5, "All %d campaigns share one campaign type. Segment by network or goal such as Search, Shopping and Display.",
			len(s.Campaigns))
	}

	o.detail("consistent_naming_percentage", consistent)
	o.detail("campaign_type_count", len(types))
	o.detail("campaign_count", len(s.Campaigns))

	return score
}

func scoreInternalCompetition(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	dup := ratio(s.Structure.DuplicateKeywordCount, s.Structure.KeywordCount)
	o.detail("duplicate_keyword_percentage", dup)
	o.detail("duplicate_keyword_count", s.Structure.DuplicateKeywordCount)

	switch {
	case dup <= 0.05:
		return 90
	case dup <= 0.1:
		o.recommend(0.6, "%s of keywords are duplicated across ad groups. Remove duplicates so ad groups stop bidding against each other.",
			percent(dup))
		return 75
	default:
		o.recommend(0.8, "Heavy keyword duplication (%s) makes ad groups compete in the same auctions. Consolidate duplicates and add cross-negatives.",
			percent(dup))
		return 50
	}
}
