package evaluators

import "github.com/ahrav/go-adgrader/internal/domain"

func qualityScore() []*Evaluator {
	c := domain.CategoryQualityScore
	return []*Evaluator{
		newEvaluator(c, domain.CriterionQSMonitoring, scoreQSMonitoring),
		newEvaluator(c, domain.CriterionAdRelevance, scoreAdRelevance),
		newEvaluator(c, domain.CriterionExpectedCTR, scoreExpectedCTR),
		newEvaluator(c, domain.CriterionLandingPageExperience, scoreLandingPageExperience),
	}
}

// qsBuckets splits the quality score histogram into low (1-4), medium (5-6)
// and high (7-10) shares.
func qsBuckets(byScore map[int]int) (low, medium, high float64) {
	var lowN, medN, highN int
	for score, n := range byScore {
		switch {
		case score >= 1 && score <= 4:
			lowN += n
		case score >= 5 && score <= 6:
			medN += n
		case score >= 7 && score <= 10:
			highN += n
		}
	}
	total := lowN + medN + highN
	return ratio(lowN, total), ratio(medN, total), ratio(highN, total)
}

// scoreQSMonitoring averages an average-quality-score sub-score and a
// distribution sub-score.
func scoreQSMonitoring(s *domain.MetricsSnapshot, cfg domain.Config, o *outcome) float64 {
	avg := s.QualityScore.AverageQualityScore
	minQS := cfg.BestPractices.MinQualityScore

	var avgScore float64
	switch {
	case avg >= minQS+1:
		avgScore = 90
	case avg >= minQS:
		avgScore = 80
		o.recommend(0.6, "Average quality score is %.1f. Keep improving ad relevance and landing pages to push it past %.0f.",
			avg, minQS+1)
	case avg >= 5:
		avgScore = 60
		o.recommend(0.8, "Raise the average quality score from %.1f to at least %.0f to lower CPCs and improve ad position.", avg, minQS)
	default:
		avgScore = 40
		o.recommend(0.9, "Average quality score of %.1f is far below the minimum of %.0f. Fix ad relevance and landing page experience first.",
			avg, minQS)
	}

	low, medium, high := qsBuckets(s.QualityScore.KeywordsByScore)

	var distScore float64
	switch {
	case high >= 0.7 && low <= 0.1:
		distScore = 90
	case high >= 0.5 && low <= 0.2:
		distScore = 75
		o.recommend(0.7, "Improve the %s of keywords with quality scores of 1-4 with more relevant ads and pages.", percent(low))
	case high >= 0.3:
		distScore = 60
		o.recommend(0.8, "Only %s of keywords have quality scores of 7-10. Rework the weakest ad groups.", percent(high))
	default:
		distScore = 40
		o.recommend(0.9, "Quality score distribution is poor: %s of keywords score 1-4. Pause the worst performers and restructure.",
			percent(low))
	}

	o.detail("average_quality_score", avg)
	o.detail("quality_score_vs_benchmark", domain.SafeRatio(avg, cfg.IndustryBenchmarks.QualityScore))
	o.detail("low_quality_score_percentage", low)
	o.detail("medium_quality_score_percentage", medium)
	o.detail("high_quality_score_percentage", high)

	return (avgScore + distScore) / 2
}

func scoreAdRelevance(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	good := s.QualityScore.GoodAdRelevancePercentage
	poor := s.QualityScore.PoorAdRelevancePercentage
	o.detail("good_ad_relevance_percentage", good)
	o.detail("poor_ad_relevance_percentage", poor)

	switch {
	case good >= 0.7 && poor <= 0.1:
		return 90
	case good >= 0.5 && poor <= 0.2:
		o.recommend(0.7, "Improve ad relevance for the %s of keywords rated below average.", percent(poor))
		return 75
	default:
		o.recommend(0.8, "Only %s of keywords have above average ad relevance. Write ads that echo the keywords in each ad group.",
			percent(good))
		return 50
	}
}

func scoreExpectedCTR(s *domain.MetricsSnapshot, cfg domain.Config, o *outcome) float64 {
	good := s.QualityScore.GoodExpectedCTRPercentage
	poor := s.QualityScore.PoorExpectedCTRPercentage
	ctr := domain.SafeRatio(float64(s.Performance.Clicks), float64(s.Performance.Impressions)) * 100
	o.detail("good_expected_ctr_percentage", good)
	o.detail("poor_expected_ctr_percentage", poor)
	o.detail("account_ctr", ctr)
	o.detail("benchmark_ctr", cfg.IndustryBenchmarks.CTR)

	switch {
	case good >= 0.7 && poor <= 0.1:
		return 90
	case good >= 0.5 && poor <= 0.2:
		o.recommend(0.7, "Improve expected CTR for the %s of keywords rated below average with stronger headlines and offers.",
			percent(poor))
		return 75
	default:
		o.recommend(0.8, "Only %s of keywords have above average expected CTR. Test more compelling headlines and calls to action.",
			percent(good))
		return 50
	}
}

func scoreLandingPageExperience(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	good := s.QualityScore.GoodLandingPagePercentage
	poor := s.QualityScore.PoorLandingPagePercentage
	speed := s.LandingPage.PageSpeedScore
	o.detail("good_landing_page_percentage", good)
	o.detail("poor_landing_page_percentage", poor)
	o.detail("page_speed_score", speed)

	switch {
	case good >= 0.7 && poor <= 0.1 && speed >= 80:
		return 90
	case good >= 0.5 && speed >= 70:
		if poor > 0.1 {
			o.recommend(0.7, "Improve landing pages for the %s of keywords with below average landing page experience.", percent(poor))
		}
		return 75
	default:
		if good < 0.3 {
			o.recommend(0.8, "Only %s of keywords have above average landing page experience. Align pages with keyword intent.",
				percent(good))
		}
		if speed > 0 && speed < 70 {
			o.recommend(0.7, "Landing page speed score is %.0f. Bring it to at least 70.", speed)
		}
		return 50
	}
}
