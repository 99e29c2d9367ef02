package evaluators

import "github.com/ahrav/go-adgrader/internal/domain"

func landingPage() []*Evaluator {
	c := domain.CategoryLandingPage
	return []*Evaluator{
		newEvaluator(c, domain.CriterionMessageMatch, scoreMessageMatch),
		newEvaluator(c, domain.CriterionConversionDesign, scoreConversionDesign),
		newEvaluator(c, domain.CriterionMobileExperience, scoreMobileExperience),
		newEvaluator(c, domain.CriterionABTesting, scoreABTesting),
	}
}

func scoreMessageMatch(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	good := s.QualityScore.GoodLandingPagePercentage
	poor := s.QualityScore.PoorLandingPagePercentage
	o.detail("good_landing_page_percentage", good)
	o.detail("poor_landing_page_percentage", poor)

	switch {
	case good >= 0.7 && poor <= 0.1:
		return 90
	case good >= 0.5:
		o.recommend(0.7, "Improve message match on the pages behind the %s of keywords rated below average for landing page relevance.",
			percent(poor))
		return 70
	default:
		o.recommend(0.8, "Only %s of keywords land on pages rated above average. Match page headlines and offers to the ad.",
			percent(good))
		return 50
	}
}

// landingConversionRate prefers the landing page figure and falls back to
// the account conversion rate.
func landingConversionRate(s *domain.MetricsSnapshot) float64 {
	if s.LandingPage.ConversionRate > 0 {
		return s.LandingPage.ConversionRate
	}
	return domain.SafeRatio(s.Performance.Conversions, float64(s.Performance.Clicks)) * 100
}

func scoreConversionDesign(s *domain.MetricsSnapshot, cfg domain.Config, o *outcome) float64 {
	speed := s.LandingPage.PageSpeedScore
	cvr := landingConversionRate(s)
	bench := cfg.IndustryBenchmarks.ConversionRate
	o.detail("page_speed_score", speed)
	o.detail("conversion_rate", cvr)
	o.detail("benchmark_conversion_rate", bench)

	switch {
	case speed >= 80 && cvr >= bench*1.2:
		return 90
	case speed >= 70 && cvr >= bench*0.8:
		if speed < 80 {
			o.recommend(0.7, "Page speed score is %.0f. Compress images and trim scripts to reach 80 or more.", speed)
		}
		if cvr < bench {
			o.recommend(0.8, "Landing page conversion rate (%.2f%%) trails the industry average (%.2f%%). Test layouts and calls to action.",
				cvr, bench)
		}
		return 70
	default:
		o.recommend(0.9, "Landing pages underperform on speed (%.0f) or conversion rate (%.2f%% against %.2f%%). Prioritize a conversion-focused redesign.",
			speed, cvr, bench)
		return 50
	}
}

func scoreMobileExperience(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	lp := s.LandingPage
	parity := domain.SafeRatio(lp.MobileConversionRate, lp.DesktopConversionRate)
	o.detail("is_mobile_friendly", lp.IsMobileFriendly)
	o.detail("mobile_desktop_ratio", parity)

	switch {
	case lp.IsMobileFriendly && parity >= 0.9:
		return 90
	case lp.IsMobileFriendly && parity >= 0.7:
		o.recommend(0.7, "Mobile converts at %s of the desktop rate. Simplify mobile forms and checkout.", percent(parity))
		return 70
	case lp.IsMobileFriendly:
		o.recommend(0.8, "Mobile conversion rate is only %s of desktop. Audit the mobile experience end to end.", percent(parity))
		return 50
	default:
		o.recommend(0.9, "Landing pages are not mobile friendly. Make them responsive before scaling mobile traffic.")
		return 30
	}
}

func scoreABTesting(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	lp := s.LandingPage
	o.detail("is_ab_testing_implemented", lp.IsABTestingImplemented)
	o.detail("ab_test_count", lp.ABTestCount)

	switch {
	case lp.IsABTestingImplemented && lp.ABTestCount >= 3:
		return 90
	case lp.IsABTestingImplemented:
		o.recommend(0.6, "Run more landing page tests (%d so far) to keep lifting conversion rate.", lp.ABTestCount)
		return 70
	default:
		o.recommend(0.8, "No landing page A/B testing found. Test headlines, forms and layouts systematically.")
		return 40
	}
}
