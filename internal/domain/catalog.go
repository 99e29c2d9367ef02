package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CategoryKey identifies one of the ten grading categories. The value is the
// category display name lower-cased with all whitespace removed, which lets
// reporting code map a key back to its definition.
type CategoryKey string

// The ten grading categories in declaration order.
const (
	CategoryCampaignOrganization CategoryKey = "campaignorganization"
	CategoryConversionTracking   CategoryKey = "conversiontracking"
	CategoryKeywordStrategy      CategoryKey = "keywordstrategy"
	CategoryNegativeKeywords     CategoryKey = "negativekeywords"
	CategoryBiddingStrategy      CategoryKey = "biddingstrategy"
	CategoryAdCreative           CategoryKey = "adcreative&extensions"
	CategoryQualityScore         CategoryKey = "qualityscore"
	CategoryAudienceStrategy     CategoryKey = "audiencestrategy"
	CategoryLandingPage          CategoryKey = "landingpageoptimization"
	CategoryCompetitiveAnalysis  CategoryKey = "competitiveanalysis"
)

// CriterionKey identifies a single criterion. Keys are fixed at definition
// time and are never derived from display names.
type CriterionKey string

// Campaign Organization criteria.
const (
	CriterionStructure           CriterionKey = "campaign_organization.structure"
	CriterionNaming              CriterionKey = "campaign_organization.naming"
	CriterionInternalCompetition CriterionKey = "campaign_organization.internal_competition"
)

// Conversion Tracking criteria.
const (
	CriterionConversionCoverage       CriterionKey = "conversion_tracking.coverage"
	CriterionConversionImplementation CriterionKey = "conversion_tracking.implementation"
	CriterionEnhancedConversions      CriterionKey = "conversion_tracking.enhanced"
)

// Keyword Strategy criteria.
const (
	CriterionKeywordResearch     CriterionKey = "keyword_strategy.research"
	CriterionMatchTypes          CriterionKey = "keyword_strategy.match_types"
	CriterionBrandSegmentation   CriterionKey = "keyword_strategy.brand_segmentation"
	CriterionKeywordOptimization CriterionKey = "keyword_strategy.optimization"
)

// Negative Keywords criteria.
const (
	CriterionQueryMining       CriterionKey = "negative_keywords.query_mining"
	CriterionNegativeLists     CriterionKey = "negative_keywords.lists"
	CriterionBalancedExclusion CriterionKey = "negative_keywords.balanced_exclusion"
)

// Bidding Strategy criteria.
const (
	CriterionGoalAlignment    CriterionKey = "bidding_strategy.goal_alignment"
	CriterionAutomatedBidding CriterionKey = "bidding_strategy.automated_bidding"
	CriterionBidAdjustments   CriterionKey = "bidding_strategy.bid_adjustments"
	CriterionBudgetManagement CriterionKey = "bidding_strategy.budget_management"
)

// Ad Creative & Extensions criteria.
const (
	CriterionAdCopy       CriterionKey = "ad_creative.ad_copy"
	CriterionAdTesting    CriterionKey = "ad_creative.ad_testing"
	CriterionExtensions   CriterionKey = "ad_creative.extensions"
	CriterionAdCompliance CriterionKey = "ad_creative.ad_compliance"
)

// Quality Score criteria.
const (
	CriterionQSMonitoring          CriterionKey = "quality_score.monitoring"
	CriterionAdRelevance           CriterionKey = "quality_score.ad_relevance"
	CriterionExpectedCTR           CriterionKey = "quality_score.expected_ctr"
	CriterionLandingPageExperience CriterionKey = "quality_score.landing_page_experience"
)

// Audience Strategy criteria.
const (
	CriterionRemarketing     CriterionKey = "audience_strategy.remarketing"
	CriterionCustomerMatch   CriterionKey = "audience_strategy.customer_match"
	CriterionInMarket        CriterionKey = "audience_strategy.in_market"
	CriterionPersonalization CriterionKey = "audience_strategy.personalization"
)

// Landing Page Optimization criteria.
const (
	CriterionMessageMatch     CriterionKey = "landing_page.message_match"
	CriterionConversionDesign CriterionKey = "landing_page.conversion_design"
	CriterionMobileExperience CriterionKey = "landing_page.mobile"
	CriterionABTesting        CriterionKey = "landing_page.ab_testing"
)

// Competitive Analysis criteria.
const (
	CriterionAuctionInsights    CriterionKey = "competitive_analysis.auction_insights"
	CriterionCompetitorKeywords CriterionKey = "competitive_analysis.competitor_keywords"
	CriterionBenchmarking       CriterionKey = "competitive_analysis.benchmarking"
	CriterionAdaptiveStrategy   CriterionKey = "competitive_analysis.adaptive_strategy"
)

// CriterionDefinition declares one criterion and its share (0-100) of the
// owning category's score.
type CriterionDefinition struct {
	Key    CriterionKey `yaml:"key" json:"key" validate:"required"`
	Name   string       `yaml:"name" json:"name" validate:"required"`
	Weight float64      `yaml:"weight" json:"weight" validate:"gt=0,max=100"`
}

// CategoryDefinition declares a category, its share of the overall score,
// and its criteria in declaration order.
type CategoryDefinition struct {
	Key      CategoryKey           `yaml:"key" json:"key" validate:"required"`
	Name     string                `yaml:"name" json:"name" validate:"required"`
	Weight   float64               `yaml:"weight" json:"weight" validate:"gt=0,max=100"`
	Criteria []CriterionDefinition `yaml:"criteria" json:"criteria" validate:"required,min=1,dive"`
}

// CriterionWeightSum returns the sum of the category's criterion weights.
func (d CategoryDefinition) CriterionWeightSum() float64 {
	var sum float64
	for _, c := range d.Criteria {
		sum += c.Weight
	}
	return sum
}

// DeriveCategoryKey converts a display name into its category key by
// lower-casing it and removing every whitespace rune.
func DeriveCategoryKey(displayName string) CategoryKey {
	// Casers carry state, so each call builds its own.
	lowered := cases.Lower(language.Und).String(displayName)
	return CategoryKey(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, lowered))
}

// DefaultCategories returns the ten category definitions with their default
// weights. Each call returns a fresh copy that callers may modify freely.
func DefaultCategories() []CategoryDefinition {
	return []CategoryDefinition{
		{
			Key: CategoryCampaignOrganization, Name: "Campaign Organization", Weight: 10,
			Criteria: []CriterionDefinition{
				{Key: CriterionStructure, Name: "Logical Campaign & Ad Group Structure", Weight: 40},
				{Key: CriterionNaming, Name: "Clear Naming Conventions & Segmentation", Weight: 30},
				{Key: CriterionInternalCompetition, Name: "No Internal Competition", Weight: 30},
			},
		},
		{
			Key: CategoryConversionTracking, Name: "Conversion Tracking", Weight: 15,
			Criteria: []CriterionDefinition{
				{Key: CriterionConversionCoverage, Name: "Comprehensive Conversion Coverage", Weight: 40},
				{Key: CriterionConversionImplementation, Name: "Accurate and Verified Tracking Implementation", Weight: 35},
				{Key: CriterionEnhancedConversions, Name: "Enhanced & Offline Conversion Tracking", Weight: 25},
			},
		},
		{
			Key: CategoryKeywordStrategy, Name: "Keyword Strategy", Weight: 12,
			Criteria: []CriterionDefinition{
				{Key: CriterionKeywordResearch, Name: "Extensive Keyword Research & Relevance", Weight: 30},
				{Key: CriterionMatchTypes, Name: "Strategic Match Type Use", Weight: 25},
				{Key: CriterionBrandSegmentation, Name: "Brand vs Non-Brand Segmentation", Weight: 25},
				{Key: CriterionKeywordOptimization, Name: "Continuous Keyword Optimization", Weight: 20},
			},
		},
		{
			Key: CategoryNegativeKeywords, Name: "Negative Keywords", Weight: 8,
			Criteria: []CriterionDefinition{
				{Key: CriterionQueryMining, Name: "Routine Search Query Mining", Weight: 40},
				{Key: CriterionNegativeLists, Name: "Negative Keyword Lists and Hierarchy", Weight: 35},
				{Key: CriterionBalancedExclusion, Name: "Balanced Exclusion (Avoid False Negatives)", Weight: 25},
			},
		},
		{
			Key: CategoryBiddingStrategy, Name: "Bidding Strategy", Weight: 12,
			Criteria: []CriterionDefinition{
				{Key: CriterionGoalAlignment, Name: "Goal-Aligned Bidding Approach", Weight: 35},
				{Key: CriterionAutomatedBidding, Name: "Optimize Automated Bidding with Data", Weight: 25},
				{Key: CriterionBidAdjustments, Name: "Device Location and Time Bid Adjustments", Weight: 20},
				{Key: CriterionBudgetManagement, Name: "Budget Management & Bid Strategy Alignment", Weight: 20},
			},
		},
		{
			Key: CategoryAdCreative, Name: "Ad Creative & Extensions", Weight: 10,
			Criteria: []CriterionDefinition{
				{Key: CriterionAdCopy, Name: "Compelling Ad Copy with Relevance", Weight: 30},
				{Key: CriterionAdTesting, Name: "Ad Variety and Continuous Testing", Weight: 25},
				{Key: CriterionExtensions, Name: "Leverage Ad Extensions", Weight: 30},
				{Key: CriterionAdCompliance, Name: "Ad Quality and Compliance", Weight: 15},
			},
		},
		{
			Key: CategoryQualityScore, Name: "Quality Score", Weight: 10,
			Criteria: []CriterionDefinition{
				{Key: CriterionQSMonitoring, Name: "Monitor QS & Components", Weight: 25},
				{Key: CriterionAdRelevance, Name: "Improve Ad Relevance", Weight: 25},
				{Key: CriterionExpectedCTR, Name: "Improve Expected CTR", Weight: 25},
				{Key: CriterionLandingPageExperience, Name: "Improve Landing Page Experience", Weight: 25},
			},
		},
		{
			Key: CategoryAudienceStrategy, Name: "Audience Strategy", Weight: 8,
			Criteria: []CriterionDefinition{
				{Key: CriterionRemarketing, Name: "Remarketing & Retargeting", Weight: 35},
				{Key: CriterionCustomerMatch, Name: "Customer Match & Similar Audiences", Weight: 25},
				{Key: CriterionInMarket, Name: "In-Market Affinity and Demographic Targeting", Weight: 25},
				{Key: CriterionPersonalization, Name: "Personalized Ad Experiences by Audience", Weight: 15},
			},
		},
		{
			Key: CategoryLandingPage, Name: "Landing Page Optimization", Weight: 8,
			Criteria: []CriterionDefinition{
				{Key: CriterionMessageMatch, Name: "Relevance and Message Match", Weight: 30},
				{Key: CriterionConversionDesign, Name: "Conversion-Focused Design", Weight: 30},
				{Key: CriterionMobileExperience, Name: "Page Speed and Mobile Optimization", Weight: 25},
				{Key: CriterionABTesting, Name: "A/B Testing & Iteration", Weight: 15},
			},
		},
		{
			Key: CategoryCompetitiveAnalysis, Name: "Competitive Analysis", Weight: 7,
			Criteria: []CriterionDefinition{
				{Key: CriterionAuctionInsights, Name: "Auction Insights Monitoring", Weight: 35},
				{Key: CriterionCompetitorKeywords, Name: "Competitor Keyword and Ad Analysis", Weight: 25},
				{Key: CriterionBenchmarking, Name: "Benchmarking Performance Metrics", Weight: 25},
				{Key: CriterionAdaptiveStrategy, Name: "Adaptive Strategy to Competitor Moves", Weight: 15},
			},
		},
	}
}

// CategoryKeys returns the category keys of defs in declaration order.
func CategoryKeys(defs []CategoryDefinition) []CategoryKey {
	keys := make([]CategoryKey, len(defs))
	for i, d := range defs {
		keys[i] = d.Key
	}
	return keys
}
