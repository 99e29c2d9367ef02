package evaluators

import "github.com/ahrav/go-adgrader/internal/domain"

func biddingStrategy() []*Evaluator {
	c := domain.CategoryBiddingStrategy
	return []*Evaluator{
		newEvaluator(c, domain.CriterionGoalAlignment, scoreGoalAlignment),
		newEvaluator(c, domain.CriterionAutomatedBidding, scoreAutomatedBidding),
		newEvaluator(c, domain.CriterionBidAdjustments, scoreBidAdjustments),
		newEvaluator(c, domain.CriterionBudgetManagement, scoreBudgetManagement),
	}
}

func scoreGoalAlignment(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	tracksConversions := s.ConversionTracking.ActionCount > 0
	tracksValue := s.ConversionTracking.ValueTrackingCount > 0
	usesROAS := s.Bidding.Strategies.TargetROAS > 0
	usesCPA := s.Bidding.Strategies.TargetCPA > 0

	o.detail("tracks_conversions", tracksConversions)
	o.detail("tracks_conversion_value", tracksValue)
	o.detail("target_roas_campaigns", s.Bidding.Strategies.TargetROAS)
	o.detail("target_cpa_campaigns", s.Bidding.Strategies.TargetCPA)

	switch {
	case tracksValue && usesROAS:
		return 90
	case tracksConversions && usesCPA:
		if tracksValue {
			o.recommend(0.7, "Conversion values are tracked but no campaign bids on them. Test Target ROAS.")
		}
		return 80
	case tracksConversions:
		o.recommend(0.8, "Conversion tracking is in place but bidding ignores it. Move to Target CPA or Target ROAS.")
		return 60
	default:
		o.recommend(1.0, "Bidding cannot align with business goals without conversion tracking. Set it up first.")
		return 30
	}
}

func scoreAutomatedBidding(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	smart := clamp01(ratio(s.Bidding.Strategies.Smart(), s.CampaignTotal()))
	o.detail("smart_bidding_percentage", smart)

	switch {
	case smart >= 0.8:
		return 90
	case smart >= 0.5:
		o.recommend(0.7, "Increase smart bidding adoption from %s to at least 80%% of campaigns.", percent(smart))
		return 75
	case smart > 0:
		o.recommend(0.8, "Only %s of campaigns use smart bidding. Move campaigns with enough conversion data to automated strategies.",
			percent(smart))
		return 50
	default:
		o.recommend(0.9, "No campaign uses smart bidding. Start with Maximize Conversions on the highest-volume campaigns.")
		return 20
	}
}

func scoreBidAdjustments(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	b := s.Bidding
	used := 0
	for _, on := range []bool{
		b.HasMobileBidAdjustments,
		b.HasLocationBidAdjustments,
		b.HasAudienceBidAdjustments,
		b.HasAdScheduleBidAdjustments,
	} {
		if on {
			used++
		}
	}
	o.detail("adjustment_types_used", used)

	switch {
	case used >= 3:
		return 90
	case used >= 2:
		if !b.HasMobileBidAdjustments {
			o.recommend(0.6, "Add device bid adjustments based on mobile performance.")
		}
		if !b.HasLocationBidAdjustments {
			o.recommend(0.6, "Add location bid adjustments for your strongest and weakest regions.")
		}
		return 75
	case used >= 1:
		o.recommend(0.7, "Only %d type of bid adjustment is in use. Layer device, location, audience and schedule adjustments.", used)
		return 60
	default:
		o.recommend(0.8, "No bid adjustments in use. Adjust bids by device, location, audience and time of day.")
		return 40
	}
}

// scoreBudgetManagement looks at impression share lost to budget and to
// ad rank across search campaigns.
func scoreBudgetManagement(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	budgetLost := s.Bidding.BudgetLostImpressionShare
	rankLost := s.Bidding.RankLostImpressionShare
	o.detail("budget_lost_impression_share", budgetLost)
	o.detail("rank_lost_impression_share", rankLost)

	switch {
	case budgetLost <= 0.1 && rankLost <= 0.2:
		return 90
	case budgetLost <= 0.2:
		if budgetLost > 0.1 {
			o.recommend(0.6, "Campaigns lose %s of impression share to budget. Move budget toward limited, profitable campaigns.",
				percent(budgetLost))
		}
		if rankLost > 0.2 {
			o.recommend(0.6, "Campaigns lose %s of impression share to ad rank. Improve quality scores or bid targets.",
				percent(rankLost))
		}
		return 75
	case budgetLost <= 0.4:
		o.recommend(0.8, "Budget caps cost %s of available impressions. Raise budgets or narrow targeting on constrained campaigns.",
			percent(budgetLost))
		return 55
	default:
		o.recommend(0.9, "Budgets severely limit reach (%s of impression share lost). Rebalance budgets before adding campaigns.",
			percent(budgetLost))
		return 35
	}
}
