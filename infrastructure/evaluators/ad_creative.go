package evaluators

import "github.com/ahrav/go-adgrader/internal/domain"

func adCreative() []*Evaluator {
	c := domain.CategoryAdCreative
	return []*Evaluator{
		newEvaluator(c, domain.CriterionAdCopy, scoreAdCopy),
		newEvaluator(c, domain.CriterionAdTesting, scoreAdTesting),
		newEvaluator(c, domain.CriterionExtensions, scoreExtensions),
		newEvaluator(c, domain.CriterionAdCompliance, scoreAdCompliance),
	}
}

func scoreAdCopy(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	a := s.Ads
	o.detail("rsa_percentage", a.RSAPercentage)
	o.detail("average_headlines_per_rsa", a.AverageHeadlinesPerRSA)
	o.detail("average_descriptions_per_rsa", a.AverageDescriptionsPerRSA)

	switch {
	case a.RSAPercentage >= 0.9 && a.AverageHeadlinesPerRSA >= 12 && a.AverageDescriptionsPerRSA >= 4:
		return 95
	case a.RSAPercentage >= 0.8 && a.AverageHeadlinesPerRSA >= 10 && a.AverageDescriptionsPerRSA >= 3:
		if a.AverageHeadlinesPerRSA < 12 {
			o.recommend(0.6, "Responsive search ads average %.1f headlines. Use 12 to 15 headlines per ad.", a.AverageHeadlinesPerRSA)
		}
		if a.AverageDescriptionsPerRSA < 4 {
			o.recommend(0.5, "Responsive search ads average %.1f descriptions. Fill all 4 description slots.", a.AverageDescriptionsPerRSA)
		}
		return 80
	case a.RSAPercentage >= 0.6:
		o.recommend(0.8, "Raise responsive search ad adoption from %s to at least 90%% of ad groups.", percent(a.RSAPercentage))
		return 60
	default:
		o.recommend(0.9, "Only %s of ad groups run responsive search ads. Add one to every ad group.", percent(a.RSAPercentage))
		return 40
	}
}

func scoreAdTesting(s *domain.MetricsSnapshot, cfg domain.Config, o *outcome) float64 {
	a := s.Ads
	target := cfg.BestPractices.AdsPerAdGroup
	o.detail("average_ads_per_ad_group", a.AverageAdsPerAdGroup)
	o.detail("single_ad_ad_group_percentage", a.SingleAdAdGroupPercentage)

	switch {
	case a.AverageAdsPerAdGroup >= float64(target) && a.SingleAdAdGroupPercentage <= 0.05:
		return 90
	case a.AverageAdsPerAdGroup >= 2 && a.SingleAdAdGroupPercentage <= 0.2:
		if a.AverageAdsPerAdGroup < float64(target) {
			o.recommend(0.7, "Ad groups average %.1f ads. Run at least %d ads per ad group to keep testing.", a.AverageAdsPerAdGroup, target)
		}
		return 75
	default:
		o.recommend(0.8, "%s of ad groups have a single ad. Add at least one more ad to each so creative can be tested.",
			percent(a.SingleAdAdGroupPercentage))
		return 50
	}
}

func scoreExtensions(s *domain.MetricsSnapshot, cfg domain.Config, o *outcome) float64 {
	types := s.Extensions.TypeCount
	minTypes := cfg.BestPractices.MinExtensionTypes
	coverage := clamp01(ratio(s.Extensions.ImpressionsWithExtensions, s.Performance.Impressions))
	o.detail("extension_type_count", types)
	o.detail("impressions_with_extensions_percentage", coverage)

	switch {
	case types >= minTypes && coverage >= 0.7:
		return 90
	case types >= 3 && coverage >= 0.5:
		if types < minTypes {
			o.recommend(0.7, "Only %d extension types are in use. Add sitelinks, callouts, structured snippets or calls to reach at least %d.",
				types, minTypes)
		}
		return 75
	case types >= 1:
		o.recommend(0.8, "Only %s of impressions show extensions. Add more extension types and keep them eligible to serve.",
			percent(coverage))
		return 50
	default:
		o.recommend(0.9, "No ad extensions found. Add sitelinks, callouts and structured snippets to every campaign.")
		return 20
	}
}

// scoreAdCompliance penalizes disapproved and policy-limited ads.
func scoreAdCompliance(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	disapproved := s.Ads.DisapprovedPercentage
	limited := s.Ads.LimitedByPolicyPercentage
	o.detail("disapproved_percentage", disapproved)
	o.detail("limited_by_policy_percentage", limited)

	switch {
	case disapproved == 0 && limited <= 0.05:
		return 95
	case disapproved <= 0.02 && limited <= 0.1:
		if disapproved > 0 {
			o.recommend(0.6, "%s of ads are disapproved. Fix the policy issues so every ad group keeps serving.", percent(disapproved))
		}
		if limited > 0.05 {
			o.recommend(0.5, "%s of ads are limited by policy. Review the flagged claims and destinations.", percent(limited))
		}
		return 80
	case disapproved <= 0.05:
		o.recommend(0.8, "Policy problems limit delivery: %s of ads disapproved and %s limited. Resolve them in the policy manager.",
			percent(disapproved), percent(limited))
		return 60
	default:
		o.recommend(0.9, "A large share of ads (%s) are disapproved. Fix policy violations before they put the account at risk.",
			percent(disapproved))
		return 30
	}
}
