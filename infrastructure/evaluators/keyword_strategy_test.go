package evaluators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahrav/go-adgrader/internal/domain"
)

func TestScoreKeywordResearch(t *testing.T) {
	tests := []struct {
		name string
		snap *domain.MetricsSnapshot
		want float64
	}{
		{
			name: "large long-tail inventory",
			snap: &domain.MetricsSnapshot{
				Structure: domain.StructureMetrics{KeywordCount: 500},
				Keywords: domain.KeywordMetrics{LengthDistribution: domain.KeywordLengthDistribution{
					Short: 150, Medium: 250, Long: 100,
				}},
			},
			want: 90,
		},
		{
			name: "count falls back to length distribution",
			snap: &domain.MetricsSnapshot{
				Keywords: domain.KeywordMetrics{LengthDistribution: domain.KeywordLengthDistribution{
					Short: 100, Medium: 80, Long: 20,
				}},
			},
			want: 75,
		},
		{
			name: "no keywords",
			snap: &domain.MetricsSnapshot{},
			want: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := run(scoreKeywordResearch, tt.snap)
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestScoreMatchTypes(t *testing.T) {
	tests := []struct {
		name     string
		dist     domain.MatchTypeDistribution
		want     float64
		wantRecs int
	}{
		{"balanced mix", domain.MatchTypeDistribution{Exact: 40, Phrase: 30, Broad: 30}, 90, 0},
		{"light on exact", domain.MatchTypeDistribution{Exact: 25, Phrase: 50, Broad: 25}, 75, 1},
		{"broad heavy", domain.MatchTypeDistribution{Exact: 10, Phrase: 10, Broad: 80}, 60, 2},
		{"no keywords", domain.MatchTypeDistribution{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &domain.MetricsSnapshot{Keywords: domain.KeywordMetrics{MatchTypeDistribution: tt.dist}}
			score, o := run(scoreMatchTypes, snap)
			assert.Equal(t, tt.want, score)
			assert.Len(t, o.recommendations, tt.wantRecs)
		})
	}
}

func TestScoreBrandSegmentation(t *testing.T) {
	tests := []struct {
		name     string
		keywords domain.KeywordMetrics
		want     float64
	}{
		{"brand campaign with small share", domain.KeywordMetrics{HasBrandCampaigns: true, BrandKeywordPercentage: 0.3}, 90},
		{"brand campaign with large share", domain.KeywordMetrics{HasBrandCampaigns: true, BrandKeywordPercentage: 0.5}, 75},
		{"brand terms mixed in", domain.KeywordMetrics{BrandKeywordPercentage: 0.1}, 60},
		{"no brand presence", domain.KeywordMetrics{}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := run(scoreBrandSegmentation, &domain.MetricsSnapshot{Keywords: tt.keywords})
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestScoreKeywordOptimization(t *testing.T) {
	score, o := run(scoreKeywordOptimization, &domain.MetricsSnapshot{Keywords: domain.KeywordMetrics{
		LowQualityKeywordPercentage:    0.25,
		NonConvertingKeywordPercentage: 0.4,
	}})
	assert.Equal(t, 50.0, score)
	assert.Len(t, o.recommendations, 2)

	score, o = run(scoreKeywordOptimization, &domain.MetricsSnapshot{Keywords: domain.KeywordMetrics{
		LowQualityKeywordPercentage:    0.1,
		NonConvertingKeywordPercentage: 0.2,
	}})
	assert.Equal(t, 90.0, score)
	assert.Empty(t, o.recommendations)
}
