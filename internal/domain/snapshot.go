package domain

import (
	"math"
	"reflect"
)

// CurrentSchemaVersion is the snapshot schema version this engine reads.
// An empty version on input is treated as the current one.
const CurrentSchemaVersion = "1"

// MetricsSnapshot is the normalized account data handed to the grader by the
// collector. It is read-only for the duration of a grading run.
//
// Every field has a neutral zero value. Fields named *Percentage hold a
// fraction in [0,1]; fields named *Rate hold a percentage (3.75 means 3.75%).
// Missing data is never an error.
type MetricsSnapshot struct {
	SchemaVersion string `yaml:"schema_version" json:"schema_version" validate:"omitempty,oneof=1"`

	Account            AccountInfo            `yaml:"account" json:"account"`
	Structure          StructureMetrics       `yaml:"structure" json:"structure"`
	Campaigns          []CampaignMetrics      `yaml:"campaigns" json:"campaigns" validate:"dive"`
	Keywords           KeywordMetrics         `yaml:"keywords" json:"keywords"`
	NegativeKeywords   NegativeKeywordMetrics `yaml:"negative_keywords" json:"negative_keywords"`
	Bidding            BiddingMetrics         `yaml:"bidding" json:"bidding"`
	Ads                AdMetrics              `yaml:"ads" json:"ads"`
	Extensions         ExtensionMetrics       `yaml:"extensions" json:"extensions"`
	Performance        PerformanceMetrics     `yaml:"performance" json:"performance"`
	QualityScore       QualityScoreMetrics    `yaml:"quality_score" json:"quality_score"`
	ConversionTracking ConversionMetrics      `yaml:"conversion_tracking" json:"conversion_tracking"`
	Audiences          AudienceMetrics        `yaml:"audiences" json:"audiences"`
	LandingPage        LandingPageMetrics     `yaml:"landing_page" json:"landing_page"`
	Competitive        CompetitiveMetrics     `yaml:"competitive" json:"competitive"`
}

// AccountInfo identifies the graded account.
type AccountInfo struct {
	ID           string `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	CurrencyCode string `yaml:"currency_code" json:"currency_code"`
	TimeZone     string `yaml:"time_zone" json:"time_zone"`
	IsEcommerce  bool   `yaml:"is_ecommerce" json:"is_ecommerce"`
}

// StructureMetrics describes the campaign / ad group / keyword hierarchy.
type StructureMetrics struct {
	CampaignCount              int     `yaml:"campaign_count" json:"campaign_count" validate:"min=0"`
	AdGroupCount               int     `yaml:"ad_group_count" json:"ad_group_count" validate:"min=0"`
	KeywordCount               int     `yaml:"keyword_count" json:"keyword_count" validate:"min=0"`
	AverageKeywordsPerAdGroup  float64 `yaml:"average_keywords_per_ad_group" json:"average_keywords_per_ad_group" validate:"min=0"`
	AverageAdGroupsPerCampaign float64 `yaml:"average_ad_groups_per_campaign" json:"average_ad_groups_per_campaign" validate:"min=0"`
	DuplicateKeywordCount      int     `yaml:"duplicate_keyword_count" json:"duplicate_keyword_count" validate:"min=0"`
}

// CampaignMetrics is the per-campaign slice of the snapshot.
type CampaignMetrics struct {
	Name            string  `yaml:"name" json:"name"`
	Type            string  `yaml:"type" json:"type"`
	Status          string  `yaml:"status" json:"status"`
	Impressions     int64   `yaml:"impressions" json:"impressions" validate:"min=0"`
	Clicks          int64   `yaml:"clicks" json:"clicks" validate:"min=0"`
	Cost            float64 `yaml:"cost" json:"cost" validate:"min=0"`
	Conversions     float64 `yaml:"conversions" json:"conversions" validate:"min=0"`
	ImpressionShare float64 `yaml:"impression_share" json:"impression_share" validate:"min=0,max=1"`
}

// KeywordLengthDistribution buckets keywords by word count: short (1-2),
// medium (3-4) and long (5+).
type KeywordLengthDistribution struct {
	Short  int `yaml:"short" json:"short" validate:"min=0"`
	Medium int `yaml:"medium" json:"medium" validate:"min=0"`
	Long   int `yaml:"long" json:"long" validate:"min=0"`
}

// MatchTypeDistribution counts positive keywords per match type.
type MatchTypeDistribution struct {
	Exact  int `yaml:"exact" json:"exact" validate:"min=0"`
	Phrase int `yaml:"phrase" json:"phrase" validate:"min=0"`
	Broad  int `yaml:"broad" json:"broad" validate:"min=0"`
}

// Total returns the number of keywords across all match types.
func (d MatchTypeDistribution) Total() int { return d.Exact + d.Phrase + d.Broad }

// KeywordMetrics describes the positive keyword inventory.
type KeywordMetrics struct {
	LengthDistribution             KeywordLengthDistribution `yaml:"length_distribution" json:"length_distribution"`
	MatchTypeDistribution          MatchTypeDistribution     `yaml:"match_type_distribution" json:"match_type_distribution"`
	HasBrandCampaigns              bool                      `yaml:"has_brand_campaigns" json:"has_brand_campaigns"`
	BrandKeywordPercentage         float64                   `yaml:"brand_keyword_percentage" json:"brand_keyword_percentage" validate:"min=0,max=1"`
	LowQualityKeywordPercentage    float64                   `yaml:"low_quality_keyword_percentage" json:"low_quality_keyword_percentage" validate:"min=0,max=1"`
	NonConvertingKeywordPercentage float64                   `yaml:"non_converting_keyword_percentage" json:"non_converting_keyword_percentage" validate:"min=0,max=1"`
}

// NegativeKeywordMetrics describes negative keyword coverage.
type NegativeKeywordMetrics struct {
	Count              int `yaml:"count" json:"count" validate:"min=0"`
	CampaignLevelCount int `yaml:"campaign_level_count" json:"campaign_level_count" validate:"min=0"`
	AdGroupLevelCount  int `yaml:"ad_group_level_count" json:"ad_group_level_count" validate:"min=0"`
	SharedSetCount     int `yaml:"shared_set_count" json:"shared_set_count" validate:"min=0"`
	ExactCount         int `yaml:"exact_count" json:"exact_count" validate:"min=0"`
	PhraseCount        int `yaml:"phrase_count" json:"phrase_count" validate:"min=0"`
	BroadCount         int `yaml:"broad_count" json:"broad_count" validate:"min=0"`
}

// BiddingStrategyCounts counts campaigns per bidding strategy.
type BiddingStrategyCounts struct {
	TargetCPA               int `yaml:"target_cpa" json:"target_cpa" validate:"min=0"`
	TargetROAS              int `yaml:"target_roas" json:"target_roas" validate:"min=0"`
	MaximizeConversions     int `yaml:"maximize_conversions" json:"maximize_conversions" validate:"min=0"`
	MaximizeConversionValue int `yaml:"maximize_conversion_value" json:"maximize_conversion_value" validate:"min=0"`
	ManualCPC               int `yaml:"manual_cpc" json:"manual_cpc" validate:"min=0"`
	Other                   int `yaml:"other" json:"other" validate:"min=0"`
}

// Smart returns the number of campaigns on a conversion-based automated strategy.
func (c BiddingStrategyCounts) Smart() int {
	return c.TargetCPA + c.TargetROAS + c.MaximizeConversions + c.MaximizeConversionValue
}

// BiddingMetrics describes bid strategies, bid adjustments and budget pressure.
type BiddingMetrics struct {
	Strategies                  BiddingStrategyCounts `yaml:"strategies" json:"strategies"`
	HasMobileBidAdjustments     bool                  `yaml:"has_mobile_bid_adjustments" json:"has_mobile_bid_adjustments"`
	HasLocationBidAdjustments   bool                  `yaml:"has_location_bid_adjustments" json:"has_location_bid_adjustments"`
	HasAudienceBidAdjustments   bool                  `yaml:"has_audience_bid_adjustments" json:"has_audience_bid_adjustments"`
	HasAdScheduleBidAdjustments bool                  `yaml:"has_ad_schedule_bid_adjustments" json:"has_ad_schedule_bid_adjustments"`
	BudgetLostImpressionShare   float64               `yaml:"budget_lost_impression_share" json:"budget_lost_impression_share" validate:"min=0,max=1"`
	RankLostImpressionShare     float64               `yaml:"rank_lost_impression_share" json:"rank_lost_impression_share" validate:"min=0,max=1"`
}

// AdMetrics describes ad formats, ad rotation and policy status.
type AdMetrics struct {
	RSAPercentage             float64 `yaml:"rsa_percentage" json:"rsa_percentage" validate:"min=0,max=1"`
	AverageHeadlinesPerRSA    float64 `yaml:"average_headlines_per_rsa" json:"average_headlines_per_rsa" validate:"min=0"`
	AverageDescriptionsPerRSA float64 `yaml:"average_descriptions_per_rsa" json:"average_descriptions_per_rsa" validate:"min=0"`
	AverageAdsPerAdGroup      float64 `yaml:"average_ads_per_ad_group" json:"average_ads_per_ad_group" validate:"min=0"`
	SingleAdAdGroupPercentage float64 `yaml:"single_ad_ad_group_percentage" json:"single_ad_ad_group_percentage" validate:"min=0,max=1"`
	DisapprovedPercentage     float64 `yaml:"disapproved_percentage" json:"disapproved_percentage" validate:"min=0,max=1"`
	LimitedByPolicyPercentage float64 `yaml:"limited_by_policy_percentage" json:"limited_by_policy_percentage" validate:"min=0,max=1"`
}

// ExtensionMetrics describes ad extension (asset) usage.
type ExtensionMetrics struct {
	TypeCount                 int   `yaml:"type_count" json:"type_count" validate:"min=0"`
	ImpressionsWithExtensions int64 `yaml:"impressions_with_extensions" json:"impressions_with_extensions" validate:"min=0"`
}

// PerformanceMetrics holds account totals for the lookback window.
type PerformanceMetrics struct {
	Impressions int64   `yaml:"impressions" json:"impressions" validate:"min=0"`
	Clicks      int64   `yaml:"clicks" json:"clicks" validate:"min=0"`
	Cost        float64 `yaml:"cost" json:"cost" validate:"min=0"`
	Conversions float64 `yaml:"conversions" json:"conversions" validate:"min=0"`
}

// QualityScoreMetrics holds quality score figures and component ratings.
// KeywordsByScore maps a quality score (1-10) to the number of keywords
// carrying it.
type QualityScoreMetrics struct {
	AverageQualityScore       float64     `yaml:"average_quality_score" json:"average_quality_score" validate:"min=0,max=10"`
	KeywordsByScore           map[int]int `yaml:"keywords_by_score" json:"keywords_by_score"`
	GoodAdRelevancePercentage float64     `yaml:"good_ad_relevance_percentage" json:"good_ad_relevance_percentage" validate:"min=0,max=1"`
	PoorAdRelevancePercentage float64     `yaml:"poor_ad_relevance_percentage" json:"poor_ad_relevance_percentage" validate:"min=0,max=1"`
	GoodExpectedCTRPercentage float64     `yaml:"good_expected_ctr_percentage" json:"good_expected_ctr_percentage" validate:"min=0,max=1"`
	PoorExpectedCTRPercentage float64     `yaml:"poor_expected_ctr_percentage" json:"poor_expected_ctr_percentage" validate:"min=0,max=1"`
	GoodLandingPagePercentage float64     `yaml:"good_landing_page_percentage" json:"good_landing_page_percentage" validate:"min=0,max=1"`
	PoorLandingPagePercentage float64     `yaml:"poor_landing_page_percentage" json:"poor_landing_page_percentage" validate:"min=0,max=1"`
}

// ConversionMetrics describes the conversion tracking setup.
type ConversionMetrics struct {
	ActionCount              int  `yaml:"action_count" json:"action_count" validate:"min=0"`
	ValueTrackingCount       int  `yaml:"value_tracking_count" json:"value_tracking_count" validate:"min=0"`
	HasPhoneCallTracking     bool `yaml:"has_phone_call_tracking" json:"has_phone_call_tracking"`
	HasImportedConversions   bool `yaml:"has_imported_conversions" json:"has_imported_conversions"`
	HasEnhancedConversions   bool `yaml:"has_enhanced_conversions" json:"has_enhanced_conversions"`
	HasDataDrivenAttribution bool `yaml:"has_data_driven_attribution" json:"has_data_driven_attribution"`
}

// AudienceMetrics describes audience lists and targeting.
type AudienceMetrics struct {
	RemarketingListCount            int     `yaml:"remarketing_list_count" json:"remarketing_list_count" validate:"min=0"`
	ActiveRemarketingCampaigns      int     `yaml:"active_remarketing_campaigns" json:"active_remarketing_campaigns" validate:"min=0"`
	HasCustomerMatch                bool    `yaml:"has_customer_match" json:"has_customer_match"`
	CustomerMatchListCount          int     `yaml:"customer_match_list_count" json:"customer_match_list_count" validate:"min=0"`
	HasInMarketAudiences            bool    `yaml:"has_in_market_audiences" json:"has_in_market_audiences"`
	HasAffinityAudiences            bool    `yaml:"has_affinity_audiences" json:"has_affinity_audiences"`
	AudienceBidAdjustmentPercentage float64 `yaml:"audience_bid_adjustment_percentage" json:"audience_bid_adjustment_percentage" validate:"min=0,max=1"`
}

// LandingPageMetrics describes landing page performance.
type LandingPageMetrics struct {
	ConversionRate         float64 `yaml:"conversion_rate" json:"conversion_rate" validate:"min=0,max=100"`
	PageSpeedScore         float64 `yaml:"page_speed_score" json:"page_speed_score" validate:"min=0,max=100"`
	IsMobileFriendly       bool    `yaml:"is_mobile_friendly" json:"is_mobile_friendly"`
	MobileConversionRate   float64 `yaml:"mobile_conversion_rate" json:"mobile_conversion_rate" validate:"min=0,max=100"`
	DesktopConversionRate  float64 `yaml:"desktop_conversion_rate" json:"desktop_conversion_rate" validate:"min=0,max=100"`
	IsABTestingImplemented bool    `yaml:"is_ab_testing_implemented" json:"is_ab_testing_implemented"`
	ABTestCount            int     `yaml:"ab_test_count" json:"ab_test_count" validate:"min=0"`
}

// CompetitiveMetrics holds auction insights and competitor research signals.
type CompetitiveMetrics struct {
	HasAuctionInsightsData       bool    `yaml:"has_auction_insights_data" json:"has_auction_insights_data"`
	ImpressionShare              float64 `yaml:"impression_share" json:"impression_share" validate:"min=0,max=1"`
	TopImpressionShare           float64 `yaml:"top_impression_share" json:"top_impression_share" validate:"min=0,max=1"`
	AbsoluteTopImpressionShare   float64 `yaml:"absolute_top_impression_share" json:"absolute_top_impression_share" validate:"min=0,max=1"`
	HasCompetitorCampaigns       bool    `yaml:"has_competitor_campaigns" json:"has_competitor_campaigns"`
	CompetitorKeywordCount       int     `yaml:"competitor_keyword_count" json:"competitor_keyword_count" validate:"min=0"`
	HasCompetitiveAdCopyAnalysis bool    `yaml:"has_competitive_ad_copy_analysis" json:"has_competitive_ad_copy_analysis"`
	CompetitiveMessagingScore    float64 `yaml:"competitive_messaging_score" json:"competitive_messaging_score" validate:"min=0,max=100"`
}

// IsEmpty reports whether the snapshot carries no data at all. A collector
// that failed upstream produces such a snapshot.
func (s *MetricsSnapshot) IsEmpty() bool {
	if s == nil {
		return true
	}
	probe := *s
	probe.SchemaVersion = ""
	return reflect.ValueOf(probe).IsZero()
}

// CampaignTotal returns the number of campaigns, preferring the structure
// count and falling back to the campaign list.
func (s *MetricsSnapshot) CampaignTotal() int {
	if s.Structure.CampaignCount > 0 {
		return s.Structure.CampaignCount
	}
	return len(s.Campaigns)
}

// KeywordsPerAdGroup returns the collector's average or, when absent,
// derives it from the keyword and ad group counts.
func (s *MetricsSnapshot) KeywordsPerAdGroup() float64 {
	if s.Structure.AverageKeywordsPerAdGroup > 0 {
		return s.Structure.AverageKeywordsPerAdGroup
	}
	return SafeRatio(float64(s.Structure.KeywordCount), float64(s.Structure.AdGroupCount))
}

// AdGroupsPerCampaign returns the collector's average or, when absent,
// derives it from the ad group and campaign counts.
func (s *MetricsSnapshot) AdGroupsPerCampaign() float64 {
	if s.Structure.AverageAdGroupsPerCampaign > 0 {
		return s.Structure.AverageAdGroupsPerCampaign
	}
	return SafeRatio(float64(s.Structure.AdGroupCount), float64(s.CampaignTotal()))
}

// SafeRatio divides num by den and returns 0 when den is 0 or either
// operand is not finite.
func SafeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
