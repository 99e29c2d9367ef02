package evaluators

import "github.com/ahrav/go-adgrader/internal/domain"

func competitiveAnalysis() []*Evaluator {
	c := domain.CategoryCompetitiveAnalysis
	return []*Evaluator{
		newEvaluator(c, domain.CriterionAuctionInsights, scoreAuctionInsights),
		newEvaluator(c, domain.CriterionCompetitorKeywords, scoreCompetitorKeywords),
		newEvaluator(c, domain.CriterionBenchmarking, scoreBenchmarking),
		newEvaluator(c, domain.CriterionAdaptiveStrategy, scoreAdaptiveStrategy),
	}
}

func scoreAuctionInsights(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	c := s.Competitive
	o.detail("has_auction_insights_data", c.HasAuctionInsightsData)
	o.detail("impression_share", c.ImpressionShare)
	o.detail("top_impression_share", c.TopImpressionShare)
	o.detail("absolute_top_impression_share", c.AbsoluteTopImpressionShare)

	switch {
	case c.HasAuctionInsightsData && c.ImpressionShare >= 0.7:
		return 90
	case c.HasAuctionInsightsData && c.ImpressionShare >= 0.5:
		o.recommend(0.7, "Impression share is %s. Raise bids or budgets on profitable terms to win more auctions.",
			percent(c.ImpressionShare))
		return 75
	case c.HasAuctionInsightsData:
		o.recommend(0.8, "Impression share is low at %s. Competitors win most auctions for your terms.", percent(c.ImpressionShare))
		return 60
	default:
		o.recommend(0.9, "Auction insights data is unavailable. Review it regularly to track competitor overlap.")
		return 30
	}
}

func scoreCompetitorKeywords(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	c := s.Competitive
	o.detail("has_competitor_campaigns", c.HasCompetitorCampaigns)
	o.detail("competitor_keyword_count", c.CompetitorKeywordCount)

	switch {
	case c.HasCompetitorCampaigns && c.CompetitorKeywordCount >= 50:
		return 90
	case c.HasCompetitorCampaigns:
		o.recommend(0.7, "Competitor campaigns cover only %d keywords. Expand competitor term coverage selectively.",
			c.CompetitorKeywordCount)
		return 70
	default:
		o.recommend(0.8, "No competitor campaigns found. Test bidding on key competitor terms.")
		return 40
	}
}

// scoreBenchmarking compares account CTR, conversion rate and CPC against
// the configured industry benchmarks.
func scoreBenchmarking(s *domain.MetricsSnapshot, cfg domain.Config, o *outcome) float64 {
	p := s.Performance
	b := cfg.IndustryBenchmarks

	if p.Impressions == 0 {
		o.detail("has_performance_data", false)
		o.recommend(0.7, "No performance data for the lookback window, so the account cannot be compared with industry benchmarks.")
		return 30
	}

	ctr := ratio(p.Clicks, p.Impressions) * 100
	cvr := domain.SafeRatio(p.Conversions, float64(p.Clicks)) * 100
	cpc := domain.SafeRatio(p.Cost, float64(p.Clicks))

	ctrOK := ctr >= b.CTR
	cvrOK := cvr >= b.ConversionRate
	cpcOK := p.Clicks > 0 && cpc <= b.CPC

	beaten := 0
	for _, ok := range []bool{ctrOK, cvrOK, cpcOK} {
		if ok {
			beaten++
		}
	}

	o.detail("has_performance_data", true)
	o.detail("account_ctr", ctr)
	o.detail("account_conversion_rate", cvr)
	o.detail("account_cpc", cpc)
	o.detail("benchmarks_beaten", beaten)

	missed := func() {
		if !ctrOK {
			o.recommend(0.6, "Account CTR (%.2f%%) is below the industry average (%.2f%%). Sharpen ad copy and keyword relevance.",
				ctr, b.CTR)
		}
		if !cvrOK {
			o.recommend(0.7, "Account conversion rate (%.2f%%) is below the industry average (%.2f%%). Review landing pages and offers.",
				cvr, b.ConversionRate)
		}
		if !cpcOK {
			o.recommend(0.5, "Average CPC (%.2f) is above the industry average (%.2f). Lift quality scores to bring costs down.",
				cpc, b.CPC)
		}
	}

	switch {
	case beaten == 3:
		return 90
	case beaten == 2:
		missed()
		return 75
	case beaten == 1:
		missed()
		return 60
	default:
		o.recommend(0.8, "The account trails industry benchmarks on CTR, conversion rate and CPC. Review targeting, ads and landing pages together.")
		return 40
	}
}

func scoreAdaptiveStrategy(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	c := s.Competitive
	o.detail("has_competitive_ad_copy_analysis", c.HasCompetitiveAdCopyAnalysis)
	o.detail("competitive_messaging_score", c.CompetitiveMessagingScore)

	switch {
	case c.HasCompetitiveAdCopyAnalysis && c.CompetitiveMessagingScore >= 80:
		return 90
	case c.HasCompetitiveAdCopyAnalysis:
		o.recommend(0.6, "Competitive messaging scores %.0f out of 100. Sharpen differentiators in ad copy.", c.CompetitiveMessagingScore)
		return 70
	default:
		o.recommend(0.7, "Competitor ad copy is not being reviewed. Track competitor messaging and adapt offers.")
		return 40
	}
}
