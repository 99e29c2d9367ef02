package evaluators

import "github.com/ahrav/go-adgrader/internal/domain"

func audienceStrategy() []*Evaluator {
	c := domain.CategoryAudienceStrategy
	return []*Evaluator{
		newEvaluator(c, domain.CriterionRemarketing, scoreRemarketing),
		newEvaluator(c, domain.CriterionCustomerMatch, scoreCustomerMatch),
		newEvaluator(c, domain.CriterionInMarket, scoreInMarket),
		newEvaluator(c, domain.CriterionPersonalization, scorePersonalization),
	}
}

func scoreRemarketing(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	a := s.Audiences
	share := clamp01(ratio(a.ActiveRemarketingCampaigns, s.CampaignTotal()))
	o.detail("remarketing_list_count", a.RemarketingListCount)
	o.detail("remarketing_campaign_percentage", share)

	switch {
	case a.RemarketingListCount >= 3 && share >= 0.5:
		return 90
	case a.RemarketingListCount >= 1 && a.ActiveRemarketingCampaigns >= 1:
		if a.RemarketingListCount < 3 {
			o.recommend(0.7, "Build more remarketing lists (%d today) such as cart abandoners, converters and engaged visitors.",
				a.RemarketingListCount)
		}
		if share < 0.5 {
			o.recommend(0.6, "Only %s of campaigns use remarketing audiences. Apply them more widely.", percent(share))
		}
		return 70
	case a.RemarketingListCount >= 1:
		o.recommend(0.8, "Remarketing lists exist but no campaign uses them. Add them to campaigns in observation mode.")
		return 50
	default:
		o.recommend(0.9, "No remarketing lists found. Create them to re-engage past visitors.")
		return 20
	}
}

func scoreCustomerMatch(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	a := s.Audiences
	o.detail("has_customer_match", a.HasCustomerMatch)
	o.detail("customer_match_list_count", a.CustomerMatchListCount)

	switch {
	case a.HasCustomerMatch && a.CustomerMatchListCount >= 2:
		return 90
	case a.HasCustomerMatch:
		o.recommend(0.6, "Upload more customer match segments (%d today), for example high-value and lapsed customers.",
			a.CustomerMatchListCount)
		return 70
	default:
		o.recommend(0.8, "Customer match is not used. Upload first-party customer lists to target and exclude known customers.")
		return 30
	}
}

func scoreInMarket(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	a := s.Audiences
	o.detail("has_in_market_audiences", a.HasInMarketAudiences)
	o.detail("has_affinity_audiences", a.HasAffinityAudiences)

	switch {
	case a.HasInMarketAudiences && a.HasAffinityAudiences:
		return 90
	case a.HasInMarketAudiences || a.HasAffinityAudiences:
		if !a.HasInMarketAudiences {
			o.recommend(0.7, "Add in-market audiences to reach users actively researching your products.")
		}
		if !a.HasAffinityAudiences {
			o.recommend(0.6, "Add affinity audiences to reach users with related interests.")
		}
		return 70
	default:
		o.recommend(0.8, "No in-market or affinity audiences in use. Layer them on for targeting and insight.")
		return 40
	}
}

func scorePersonalization(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	has := s.Bidding.HasAudienceBidAdjustments
	share := s.Audiences.AudienceBidAdjustmentPercentage
	o.detail("has_audience_bid_adjustments", has)
	o.detail("audience_bid_adjustment_percentage", share)

	switch {
	case has && share >= 0.7:
		return 90
	case has:
		o.recommend(0.6, "Only %s of audiences carry bid adjustments. Adjust bids for every audience with a clear performance gap.",
			percent(share))
		return 70
	default:
		o.recommend(0.7, "No audience bid adjustments in use. Bid differently for audiences that convert above or below average.")
		return 40
	}
}
