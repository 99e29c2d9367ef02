package evaluators

import "github.com/ahrav/go-adgrader/internal/domain"

func negativeKeywords() []*Evaluator {
	c := domain.CategoryNegativeKeywords
	return []*Evaluator{
		newEvaluator(c, domain.CriterionQueryMining, scoreQueryMining),
		newEvaluator(c, domain.CriterionNegativeLists, scoreNegativeLists),
		newEvaluator(c, domain.CriterionBalancedExclusion, scoreBalancedExclusion),
	}
}

func scoreQueryMining(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	n := s.NegativeKeywords.Count
	perCampaign := ratio(n, s.CampaignTotal())
	o.detail("negative_keyword_count", n)
	o.detail("negatives_per_campaign", perCampaign)

	switch {
	case perCampaign >= 30:
		return 90
	case perCampaign >= 15:
		o.recommend(0.6, "Mine search terms more often: %d negatives is %.1f per campaign.", n, perCampaign)
		return 75
	case n > 0:
		o.recommend(0.8, "Negative keyword coverage is thin (%.1f per campaign). Review search term reports every week.", perCampaign)
		return 50
	default:
		o.recommend(0.9, "No negative keywords found. Add negatives from search term reports to stop wasted spend.")
		return 20
	}
}

func scoreNegativeLists(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	nk := s.NegativeKeywords
	o.detail("shared_set_count", nk.SharedSetCount)
	o.detail("campaign_level_count", nk.CampaignLevelCount)
	o.detail("ad_group_level_count", nk.AdGroupLevelCount)

	switch {
	case nk.SharedSetCount >= 3 && nk.CampaignLevelCount > 0 && nk.AdGroupLevelCount > 0:
		return 90
	case nk.SharedSetCount >= 1 && (nk.CampaignLevelCount > 0 || nk.AdGroupLevelCount > 0):
		if nk.CampaignLevelCount == 0 || nk.AdGroupLevelCount == 0 {
			o.recommend(0.5, "Apply negatives at both campaign and ad group level to build a clear exclusion hierarchy.")
		}
		return 75
	case nk.Count > 0:
		if nk.SharedSetCount == 0 {
			o.recommend(0.7, "Create shared negative keyword lists to apply common exclusions across campaigns.")
		}
		return 60
	default:
		return 0
	}
}

func scoreBalancedExclusion(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	nk := s.NegativeKeywords
	hasExact := nk.ExactCount > 0
	hasPhrase := nk.PhraseCount > 0
	exactShare := ratio(nk.ExactCount, nk.Count)

	o.detail("exact_negative_percentage", exactShare)
	o.detail("phrase_negative_percentage", ratio(nk.PhraseCount, nk.Count))

	switch {
	case hasExact && hasPhrase:
		if exactShare < 0.2 {
			o.recommend(0.5, "Only %s of negatives use exact match. Prefer exact negatives where broader ones could block good traffic.",
				percent(exactShare))
		}
		return 90
	case hasPhrase:
		o.recommend(0.6, "Add exact match negatives for precise exclusions that leave related queries alone.")
		return 70
	case hasExact:
		o.recommend(0.7, "Add phrase match negatives to cover query variants.")
		return 60
	case nk.Count > 0:
		o.recommend(0.7, "Negatives use broad match only, which risks blocking converting queries. Mix in phrase and exact match.")
		return 50
	default:
		return 0
	}
}
