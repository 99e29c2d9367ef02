package evaluators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahrav/go-adgrader/internal/domain"
)

func TestScoreAuctionInsights(t *testing.T) {
	tests := []struct {
		name string
		c    domain.CompetitiveMetrics
		want float64
	}{
		{"dominant share", domain.CompetitiveMetrics{HasAuctionInsightsData: true, ImpressionShare: 0.7}, 90},
		{"competitive share", domain.CompetitiveMetrics{HasAuctionInsightsData: true, ImpressionShare: 0.5}, 75},
		{"low share", domain.CompetitiveMetrics{HasAuctionInsightsData: true, ImpressionShare: 0.2}, 60},
		{"share without insights", domain.CompetitiveMetrics{ImpressionShare: 0.9}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := run(scoreAuctionInsights, &domain.MetricsSnapshot{Competitive: tt.c})
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestScoreCompetitorKeywords(t *testing.T) {
	score, _ := run(scoreCompetitorKeywords, &domain.MetricsSnapshot{Competitive: domain.CompetitiveMetrics{
		HasCompetitorCampaigns: true, CompetitorKeywordCount: 50,
	}})
	assert.Equal(t, 90.0, score)

	score, _ = run(scoreCompetitorKeywords, &domain.MetricsSnapshot{Competitive: domain.CompetitiveMetrics{
		HasCompetitorCampaigns: true, CompetitorKeywordCount: 12,
	}})
	assert.Equal(t, 70.0, score)

	score, _ = run(scoreCompetitorKeywords, &domain.MetricsSnapshot{})
	assert.Equal(t, 40.0, score)
}

func TestScoreBenchmarking(t *testing.T) {
	tests := []struct {
		name        string
		perf        domain.PerformanceMetrics
		want        float64
		wantImpacts []float64
	}{
		{
			name:        "no performance data",
			perf:        domain.PerformanceMetrics{},
			want:        30,
			wantImpacts: []float64{0.7},
		},
		{
			name: "beats every benchmark",
			perf: domain.PerformanceMetrics{Impressions: 1000, Clicks: 50, Cost: 100, Conversions: 5},
			want: 90,
		},
		{
			name:        "conversion rate behind",
			perf:        domain.PerformanceMetrics{Impressions: 1000, Clicks: 50, Cost: 100, Conversions: 1},
			want:        75,
			wantImpacts: []float64{0.7},
		},
		{
			name:        "cpc behind",
			perf:        domain.PerformanceMetrics{Impressions: 1000, Clicks: 50, Cost: 500, Conversions: 5},
			want:        75,
			wantImpacts: []float64{0.5},
		},
		{
			name:        "only ctr ahead",
			perf:        domain.PerformanceMetrics{Impressions: 1000, Clicks: 50, Cost: 500, Conversions: 1},
			want:        60,
			wantImpacts: []float64{0.7, 0.5},
		},
		{
			name:        "impressions without clicks",
			perf:        domain.PerformanceMetrics{Impressions: 1000},
			want:        40,
			wantImpacts: []float64{0.8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, o := run(scoreBenchmarking, &domain.MetricsSnapshot{Performance: tt.perf})
			assert.Equal(t, tt.want, score)

			impacts := make([]float64, 0, len(o.recommendations))
			for _, r := range o.recommendations {
				impacts = append(impacts, r.Impact)
			}
			if len(tt.wantImpacts) == 0 {
				assert.Empty(t, impacts)
			} else {
				assert.Equal(t, tt.wantImpacts, impacts)
			}
		})
	}

	t.Run("benchmarks follow configuration", func(t *testing.T) {
		cfg := domain.DefaultConfig()
		cfg.IndustryBenchmarks.CTR = 10
		perf := domain.PerformanceMetrics{Impressions: 1000, Clicks: 50, Cost: 100, Conversions: 5}
		score, o := runWith(scoreBenchmarking, &domain.MetricsSnapshot{Performance: perf}, cfg)
		assert.Equal(t, 75.0, score)
		assert.Equal(t, 2, o.details["benchmarks_beaten"])
	})
}

func TestScoreAdaptiveStrategy(t *testing.T) {
	score, _ := run(scoreAdaptiveStrategy, &domain.MetricsSnapshot{Competitive: domain.CompetitiveMetrics{
		HasCompetitiveAdCopyAnalysis: true, CompetitiveMessagingScore: 80,
	}})
	assert.Equal(t, 90.0, score)

	score, _ = run(scoreAdaptiveStrategy, &domain.MetricsSnapshot{Competitive: domain.CompetitiveMetrics{
		HasCompetitiveAdCopyAnalysis: true, CompetitiveMessagingScore: 55,
	}})
	assert.Equal(t, 70.0, score)

	score, _ = run(scoreAdaptiveStrategy, &domain.MetricsSnapshot{})
	assert.Equal(t, 40.0, score)
}
