package evaluators

import "github.com/ahrav/go-adgrader/internal/domain"

func keywordStrategy() []*Evaluator {
	c := domain.CategoryKeywordStrategy
	return []*Evaluator{
		newEvaluator(c, domain.CriterionKeywordResearch, scoreKeywordResearch),
		newEvaluator(c, domain.CriterionMatchTypes, scoreMatchTypes),
		newEvaluator(c, domain.CriterionBrandSegmentation, scoreBrandSegmentation),
		newEvaluator(c, domain.CriterionKeywordOptimization, scoreKeywordOptimization),
	}
}

func scoreKeywordResearch(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	dist := s.Keywords.LengthDistribution
	count := s.Structure.KeywordCount
	if count == 0 {
		count = dist.Short + dist.Medium + dist.Long
	}
	longTail := ratio(dist.Medium+dist.Long, count)

	o.detail("keyword_count", count)
	o.detail("long_tail_percentage", longTail)

	switch {
	case count >= 500 && longTail >= 0.7:
		return 90
	case count >= 200 && longTail >= 0.5:
		if longTail < 0.7 {
			o.recommend(0.6, "Only %s of keywords are medium or long-tail phrases. Expand long-tail coverage.", percent(longTail))
		}
		return 75
	case count >= 100:
		o.recommend(0.7, "Expand keyword research: %d keywords with %s long-tail coverage leave relevant demand uncovered.",
			count, percent(longTail))
		return 60
	default:
		o.recommend(0.8, "Keyword coverage is limited (%d keywords). Research more relevant search terms.", count)
		return 40
	}
}

func scoreMatchTypes(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	d := s.Keywords.MatchTypeDistribution
	total := d.Total()
	exact := ratio(d.Exact, total)
	phrase := ratio(d.Phrase, total)
	broad := ratio(d.Broad, total)

	o.detail("exact_percentage", exact)
	o.detail("phrase_percentage", phrase)
	o.detail("broad_percentage", broad)

	switch {
	case exact >= 0.3 && phrase >= 0.2 && broad >= 0.2:
		return 90
	case exact >= 0.2 && phrase+broad >= 0.3:
		if exact < 0.3 {
			o.recommend(0.6, "Raise exact match share from %s to at least 30%% for tighter traffic control.", percent(exact))
		}
		return 75
	case total > 0:
		if exact < 0.2 {
			o.recommend(0.7, "Exact match share is low (%s). Add exact match versions of core terms.", percent(exact))
		}
		if broad > 0.7 {
			o.recommend(0.7, "Broad match dominates the account (%s). Balance it with exact and phrase match.", percent(broad))
		}
		return 60
	default:
		return 0
	}
}

func scoreBrandSegmentation(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	k := s.Keywords
	o.detail("has_brand_campaigns", k.HasBrandCampaigns)
	o.detail("brand_keyword_percentage", k.BrandKeywordPercentage)

	switch {
	case k.HasBrandCampaigns && k.BrandKeywordPercentage <= 0.3:
		return 90
	case k.HasBrandCampaigns:
		o.recommend(0.5, "Brand terms make up %s of keywords. Shift investment toward non-brand growth.",
			percent(k.BrandKeywordPercentage))
		return 75
	case k.BrandKeywordPercentage > 0:
		o.recommend(0.7, "Brand keywords are mixed into generic campaigns. Move them into dedicated brand campaigns.")
		return 60
	default:
		o.recommend(0.6, "No brand campaign found. Create one to protect branded searches at low cost.")
		return 50
	}
}

func scoreKeywordOptimization(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	lowQ := s.Keywords.LowQualityKeywordPercentage
	nonConv := s.Keywords.NonConvertingKeywordPercentage
	o.detail("low_quality_keyword_percentage", lowQ)
	o.detail("non_converting_keyword_percentage", nonConv)

	switch {
	case lowQ <= 0.1 && nonConv <= 0.2:
		return 90
	case lowQ <= 0.2 && nonConv <= 0.3:
		if lowQ > 0.1 {
			o.recommend(0.6, "Improve or pause the %s of keywords with low quality scores.", percent(lowQ))
		}
		return 75
	default:
		if nonConv > 0.3 {
			o.recommend(0.8, "Review the %s of keywords that get clicks but never convert.", percent(nonConv))
		}
		if lowQ > 0.2 {
			o.recommend(0.7, "A high share of keywords (%s) have low quality scores. Pause or rework them.", percent(lowQ))
		}
		return 50
	}
}
