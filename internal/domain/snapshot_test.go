package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeRatio(t *testing.T) {
	tests := []struct {
		name     string
		num, den float64
		want     float64
	}{
		{"plain", 3, 4, 0.75},
		{"zero denominator", 5, 0, 0},
		{"zero over zero", 0, 0, 0},
		{"infinite numerator", math.Inf(1), 2, 0},
		{"nan numerator", math.NaN(), 2, 0},
		{"infinite denominator", 1, math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeRatio(tt.num, tt.den))
		})
	}
}

func TestMetricsSnapshot_IsEmpty(t *testing.T) {
	var nilSnap *MetricsSnapshot
	assert.True(t, nilSnap.IsEmpty())
	assert.True(t, (&MetricsSnapshot{}).IsEmpty())
	assert.True(t, (&MetricsSnapshot{SchemaVersion: CurrentSchemaVersion}).IsEmpty(),
		"a version alone carries no data")

	assert.False(t, (&MetricsSnapshot{Account: AccountInfo{ID: "123"}}).IsEmpty())
	assert.False(t, (&MetricsSnapshot{Structure: StructureMetrics{KeywordCount: 1}}).IsEmpty())
	assert.False(t, (&MetricsSnapshot{Campaigns: []CampaignMetrics{{}}}).IsEmpty())
}

func TestMetricsSnapshot_DerivedStructure(t *testing.T) {
	t.Run("derived from counts", func(t *testing.T) {
		s := &MetricsSnapshot{Structure: StructureMetrics{CampaignCount: 4, AdGroupCount: 20, KeywordCount: 300}}
		assert.Equal(t, 4, s.CampaignTotal())
		assert.Equal(t, 15.0, s.KeywordsPerAdGroup())
		assert.Equal(t, 5.0, s.AdGroupsPerCampaign())
	})

	t.Run("collector averages win", func(t *testing.T) {
		s := &MetricsSnapshot{Structure: StructureMetrics{
			AdGroupCount: 20, KeywordCount: 300,
			AverageKeywordsPerAdGroup: 12, AverageAdGroupsPerCampaign: 3,
		}}
		assert.Equal(t, 12.0, s.KeywordsPerAdGroup())
		assert.Equal(t, 3.0, s.AdGroupsPerCampaign())
	})

	t.Run("campaign list fallback", func(t *testing.T) {
		s := &MetricsSnapshot{
			Structure: StructureMetrics{AdGroupCount: 6},
			Campaigns: []CampaignMetrics{{}, {}},
		}
		assert.Equal(t, 2, s.CampaignTotal())
		assert.Equal(t, 3.0, s.AdGroupsPerCampaign())
	})

	t.Run("zero counts stay finite", func(t *testing.T) {
		s := &MetricsSnapshot{Structure: StructureMetrics{KeywordCount: 10}}
		assert.Equal(t, 0.0, s.KeywordsPerAdGroup())
		assert.Equal(t, 0.0, s.AdGroupsPerCampaign())
	})
}

func TestMatchTypeDistribution_Total(t *testing.T) {
	assert.Equal(t, 9, MatchTypeDistribution{Exact: 2, Phrase: 3, Broad: 4}.Total())
}
