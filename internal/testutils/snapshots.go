package testutils

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/ahrav/go-adgrader/internal/domain"
)

// SampleSnapshot returns a well-run search account with data in every
// section. It grades in the B to A range with the default configuration.
func SampleSnapshot() *domain.MetricsSnapshot {
	return &domain.MetricsSnapshot{
		SchemaVersion: domain.CurrentSchemaVersion,
		Account: domain.AccountInfo{
			ID:           "123-456-7890",
			Name:         "Acme Outdoor",
			CurrencyCode: "USD",
			TimeZone:     "America/Denver",
			IsEcommerce:  true,
		},
		Structure: domain.StructureMetrics{
			CampaignCount: 6,
			AdGroupCount:  42,
			KeywordCount:  760,
		},
		Campaigns: []domain.CampaignMetrics{
			{Name: "Brand | Exact | US", Type: "SEARCH", Status: "ENABLED", Impressions: 40000, Clicks: 4800, Cost: 3100, Conversions: 410, ImpressionShare: 0.92},
			{Name: "Generic | Tents | US", Type: "SEARCH", Status: "ENABLED", Impressions: 120000, Clicks: 5200, Cost: 14200, Conversions: 190, ImpressionShare: 0.55},
			{Name: "Generic | Sleeping Bags | US", Type: "SEARCH", Status: "ENABLED", Impressions: 90000, Clicks: 3600, Cost: 9800, Conversions: 140, ImpressionShare: 0.51},
			{Name: "Competitor | Conquest | US", Type: "SEARCH", Status: "ENABLED", Impressions: 30000, Clicks: 700, Cost: 2900, Conversions: 18, ImpressionShare: 0.22},
			{Name: "Product | All Items", Type: "SHOPPING", Status: "ENABLED", Impressions: 210000, Clicks: 6300, Cost: 8100, Conversions: 260, ImpressionShare: 0.48},
			{Name: "Remarketing | Cart Abandoners", Type: "DISPLAY", Status: "ENABLED", Impressions: 60000, Clicks: 400, Cost: 700, Conversions: 35, ImpressionShare: 0.3},
		},
		Keywords: domain.KeywordMetrics{
			LengthDistribution:             domain.KeywordLengthDistribution{Short: 180, Medium: 380, Long: 200},
			MatchTypeDistribution:          domain.MatchTypeDistribution{Exact: 330, Phrase: 300, Broad: 130},
			HasBrandCampaigns:              true,
			BrandKeywordPercentage:         0.12,
			LowQualityKeywordPercentage:    0.08,
			NonConvertingKeywordPercentage: 0.2,
		},
		NegativeKeywords: domain.NegativeKeywordMetrics{
			Count:              640,
			CampaignLevelCount: 320,
			AdGroupLevelCount:  120,
			SharedSetCount:     4,
			ExactCount:         260,
			PhraseCount:        300,
			BroadCount:         80,
		},
		Bidding: domain.BiddingMetrics{
			Strategies:                  domain.BiddingStrategyCounts{TargetCPA: 2, TargetROAS: 1, MaximizeConversions: 2, ManualCPC: 1},
			HasMobileBidAdjustments:     true,
			HasLocationBidAdjustments:   true,
			HasAudienceBidAdjustments:   true,
			HasAdScheduleBidAdjustments: false,
			BudgetLostImpressionShare:   0.06,
			RankLostImpressionShare:     0.21,
		},
		Ads: domain.AdMetrics{
			RSAPercentage:             0.95,
			AverageHeadlinesPerRSA:    12,
			AverageDescriptionsPerRSA: 4,
			AverageAdsPerAdGroup:      3,
			SingleAdAdGroupPercentage: 0.05,
			DisapprovedPercentage:     0.01,
			LimitedByPolicyPercentage: 0.02,
		},
		Extensions: domain.ExtensionMetrics{
			TypeCount:                 6,
			ImpressionsWithExtensions: 480000,
		},
		Performance: domain.PerformanceMetrics{
			Impressions: 550000,
			Clicks:      21000,
			Cost:        38800,
			Conversions: 1053,
		},
		QualityScore: domain.QualityScoreMetrics{
			AverageQualityScore:       7.4,
			KeywordsByScore:           map[int]int{3: 20, 5: 90, 6: 110, 7: 210, 8: 200, 9: 90, 10: 40},
			GoodAdRelevancePercentage: 0.68,
			PoorAdRelevancePercentage: 0.07,
			GoodExpectedCTRPercentage: 0.55,
			PoorExpectedCTRPercentage: 0.12,
			GoodLandingPagePercentage: 0.62,
			PoorLandingPagePercentage: 0.08,
		},
		ConversionTracking: domain.ConversionMetrics{
			ActionCount:              5,
			ValueTrackingCount:       4,
			HasPhoneCallTracking:     true,
			HasImportedConversions:   false,
			HasEnhancedConversions:   true,
			HasDataDrivenAttribution: true,
		},
		Audiences: domain.AudienceMetrics{
			RemarketingListCount:            8,
			ActiveRemarketingCampaigns:      1,
			HasCustomerMatch:                true,
			CustomerMatchListCount:          2,
			HasInMarketAudiences:            true,
			HasAffinityAudiences:            false,
			AudienceBidAdjustmentPercentage: 0.4,
		},
		LandingPage: domain.LandingPageMetrics{
			ConversionRate:         5.1,
			PageSpeedScore:         78,
			IsMobileFriendly:       true,
			MobileConversionRate:   4.2,
			DesktopConversionRate:  5.6,
			IsABTestingImplemented: true,
			ABTestCount:            2,
		},
		Competitive: domain.CompetitiveMetrics{
			HasAuctionInsightsData:       true,
			ImpressionShare:              0.52,
			TopImpressionShare:           0.41,
			AbsoluteTopImpressionShare:   0.18,
			HasCompetitorCampaigns:       true,
			CompetitorKeywordCount:       35,
			HasCompetitiveAdCopyAnalysis: false,
		},
	}
}

// NeglectedSnapshot returns an account with traffic but almost no setup:
// no conversion tracking, no negatives, manual bidding and a flat
// structure. It produces many recommendations.
func NeglectedSnapshot() *domain.MetricsSnapshot {
	return &domain.MetricsSnapshot{
		Account: domain.AccountInfo{ID: "999-000-1111", Name: "Neglected Plumbing"},
		Structure: domain.StructureMetrics{
			CampaignCount: 1,
			AdGroupCount:  1,
			KeywordCount:  240,
		},
		Campaigns: []domain.CampaignMetrics{
			{Name: "Campaign #1", Type: "SEARCH", Status: "ENABLED", Impressions: 30000, Clicks: 450, Cost: 1900},
		},
		Keywords: domain.KeywordMetrics{
			LengthDistribution:             domain.KeywordLengthDistribution{Short: 220, Medium: 20},
			MatchTypeDistribution:          domain.MatchTypeDistribution{Broad: 240},
			LowQualityKeywordPercentage:    0.55,
			NonConvertingKeywordPercentage: 0.9,
		},
		Bidding: domain.BiddingMetrics{
			Strategies:                domain.BiddingStrategyCounts{ManualCPC: 1},
			BudgetLostImpressionShare: 0.35,
			RankLostImpressionShare:   0.4,
		},
		Ads: domain.AdMetrics{
			AverageAdsPerAdGroup:      1,
			SingleAdAdGroupPercentage: 1,
			DisapprovedPercentage:     0.2,
		},
		Performance: domain.PerformanceMetrics{Impressions: 30000, Clicks: 450, Cost: 1900},
		QualityScore: domain.QualityScoreMetrics{
			AverageQualityScore:       3.8,
			KeywordsByScore:           map[int]int{2: 60, 3: 80, 4: 60, 6: 40},
			PoorAdRelevancePercentage: 0.5,
			PoorExpectedCTRPercentage: 0.6,
			PoorLandingPagePercentage: 0.45,
		},
		LandingPage: domain.LandingPageMetrics{PageSpeedScore: 31},
	}
}

// EmptyStructureSnapshot returns a snapshot whose structure counts are all
// zero while other sections carry data, so every structure ratio has a zero
// denominator.
func EmptyStructureSnapshot() *domain.MetricsSnapshot {
	return &domain.MetricsSnapshot{
		Account:     domain.AccountInfo{ID: "000-000-0000", Name: "New Account"},
		Performance: domain.PerformanceMetrics{Impressions: 10},
	}
}

// GenerateSnapshot returns a random but field-valid snapshot. The same seed
// always yields the same snapshot.
func GenerateSnapshot(seed uint64) *domain.MetricsSnapshot {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	count := func(n int) int { return rng.IntN(n + 1) }
	frac := func() float64 { return math.Round(rng.Float64()*1000) / 1000 }
	pct := func() float64 { return math.Round(rng.Float64()*1000) / 10 }
	flag := func() bool { return rng.IntN(2) == 1 }

	campaigns := make([]domain.CampaignMetrics, count(5))
	for i := range campaigns {
		impressions := int64(count(100000))
		clicks := int64(rng.Float64() * float64(impressions) * 0.1)
		campaigns[i] = domain.CampaignMetrics{
			Name:            fmt.Sprintf("Campaign %d", i+1),
			Type:            "SEARCH",
			Status:          "ENABLED",
			Impressions:     impressions,
			Clicks:          clicks,
			Cost:            float64(clicks) * rng.Float64() * 5,
			Conversions:     float64(count(int(clicks/10) + 1)),
			ImpressionShare: frac(),
		}
	}

	impressions := int64(count(1000000))
	clicks := int64(rng.Float64() * float64(impressions) * 0.1)
	scores := make(map[int]int)
	for qs := 1; qs <= 10; qs++ {
		if flag() {
			scores[qs] = count(100)
		}
	}

	return &domain.MetricsSnapshot{
		SchemaVersion: domain.CurrentSchemaVersion,
		Account:       domain.AccountInfo{ID: fmt.Sprintf("gen-%d", seed), Name: "Generated"},
		Structure: domain.StructureMetrics{
			CampaignCount:         count(20),
			AdGroupCount:          count(200),
			KeywordCount:          count(5000),
			DuplicateKeywordCount: count(50),
		},
		Campaigns: campaigns,
		Keywords: domain.KeywordMetrics{
			LengthDistribution:             domain.KeywordLengthDistribution{Short: count(500), Medium: count(500), Long: count(500)},
			MatchTypeDistribution:          domain.MatchTypeDistribution{Exact: count(500), Phrase: count(500), Broad: count(500)},
			HasBrandCampaigns:              flag(),
			BrandKeywordPercentage:         frac(),
			LowQualityKeywordPercentage:    frac(),
			NonConvertingKeywordPercentage: frac(),
		},
		NegativeKeywords: domain.NegativeKeywordMetrics{
			Count:              count(1000),
			CampaignLevelCount: count(500),
			AdGroupLevelCount:  count(500),
			SharedSetCount:     count(6),
			ExactCount:         count(400),
			PhraseCount:        count(400),
			BroadCount:         count(400),
		},
		Bidding: domain.BiddingMetrics{
			Strategies: domain.BiddingStrategyCounts{
				TargetCPA: count(4), TargetROAS: count(4), MaximizeConversions: count(4),
				MaximizeConversionValue: count(4), ManualCPC: count(4), Other: count(2),
			},
			HasMobileBidAdjustments:     flag(),
			HasLocationBidAdjustments:   flag(),
			HasAudienceBidAdjustments:   flag(),
			HasAdScheduleBidAdjustments: flag(),
			BudgetLostImpressionShare:   frac(),
			RankLostImpressionShare:     frac(),
		},
		Ads: domain.AdMetrics{
			RSAPercentage:             frac(),
			AverageHeadlinesPerRSA:    float64(count(15)),
			AverageDescriptionsPerRSA: float64(count(4)),
			AverageAdsPerAdGroup:      float64(count(6)),
			SingleAdAdGroupPercentage: frac(),
			DisapprovedPercentage:     frac(),
			LimitedByPolicyPercentage: frac(),
		},
		Extensions: domain.ExtensionMetrics{
			TypeCount:                 count(10),
			ImpressionsWithExtensions: int64(count(int(impressions))),
		},
		Performance: domain.PerformanceMetrics{
			Impressions: impressions,
			Clicks:      clicks,
			Cost:        float64(clicks) * rng.Float64() * 4,
			Conversions: float64(count(int(clicks/20) + 1)),
		},
		QualityScore: domain.QualityScoreMetrics{
			AverageQualityScore:       math.Round(rng.Float64()*100) / 10,
			KeywordsByScore:           scores,
			GoodAdRelevancePercentage: frac(),
			PoorAdRelevancePercentage: frac(),
			GoodExpectedCTRPercentage: frac(),
			PoorExpectedCTRPercentage: frac(),
			GoodLandingPagePercentage: frac(),
			PoorLandingPagePercentage: frac(),
		},
		ConversionTracking: domain.ConversionMetrics{
			ActionCount:              count(10),
			ValueTrackingCount:       count(10),
			HasPhoneCallTracking:     flag(),
			HasImportedConversions:   flag(),
			HasEnhancedConversions:   flag(),
			HasDataDrivenAttribution: flag(),
		},
		Audiences: domain.AudienceMetrics{
			RemarketingListCount:            count(20),
			ActiveRemarketingCampaigns:      count(5),
			HasCustomerMatch:                flag(),
			CustomerMatchListCount:          count(5),
			HasInMarketAudiences:            flag(),
			HasAffinityAudiences:            flag(),
			AudienceBidAdjustmentPercentage: frac(),
		},
		LandingPage: domain.LandingPageMetrics{
			ConversionRate:         pct() / 5,
			PageSpeedScore:         pct(),
			IsMobileFriendly:       flag(),
			MobileConversionRate:   pct() / 5,
			DesktopConversionRate:  pct() / 5,
			IsABTestingImplemented: flag(),
			ABTestCount:            count(5),
		},
		Competitive: domain.CompetitiveMetrics{
			HasAuctionInsightsData:       flag(),
			ImpressionShare:              frac(),
			TopImpressionShare:           frac(),
			AbsoluteTopImpressionShare:   frac(),
			HasCompetitorCampaigns:       flag(),
			CompetitorKeywordCount:       count(100),
			HasCompetitiveAdCopyAnalysis: flag(),
			CompetitiveMessagingScore:    pct(),
		},
	}
}
