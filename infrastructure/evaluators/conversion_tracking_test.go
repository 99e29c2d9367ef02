package evaluators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahrav/go-adgrader/internal/domain"
)

func TestScoreConversionCoverage(t *testing.T) {
	tests := []struct {
		name     string
		snap     *domain.MetricsSnapshot
		want     float64
		wantRecs int
	}{
		{
			name: "full coverage",
			snap: &domain.MetricsSnapshot{ConversionTracking: domain.ConversionMetrics{
				ActionCount: 3, HasPhoneCallTracking: true, HasImportedConversions: true,
			}},
			want: 95,
		},
		{
			name: "ecommerce without calls or imports",
			snap: &domain.MetricsSnapshot{
				Account:            domain.AccountInfo{IsEcommerce: true},
				ConversionTracking: domain.ConversionMetrics{ActionCount: 2},
			},
			want:     80,
			wantRecs: 2,
		},
		{
			name:     "single action",
			snap:     &domain.MetricsSnapshot{ConversionTracking: domain.ConversionMetrics{ActionCount: 1}},
			want:     60,
			wantRecs: 1,
		},
		{
			name:     "no tracking",
			snap:     &domain.MetricsSnapshot{},
			want:     20,
			wantRecs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, o := run(scoreConversionCoverage, tt.snap)
			assert.Equal(t, tt.want, score)
			assert.Len(t, o.recommendations, tt.wantRecs)
		})
	}

	t.Run("missing tracking is the top impact", func(t *testing.T) {
		_, o := run(scoreConversionCoverage, &domain.MetricsSnapshot{})
		assert.Equal(t, 1.0, o.recommendations[0].Impact)
	})
}

func TestScoreConversionImplementation(t *testing.T) {
	tests := []struct {
		name    string
		actions int
		valued  int
		want    float64
	}{
		{"most actions valued", 5, 4, 90},
		{"half valued", 4, 2, 75},
		{"few valued", 4, 1, 50},
		{"no actions", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &domain.MetricsSnapshot{ConversionTracking: domain.ConversionMetrics{
				ActionCount: tt.actions, ValueTrackingCount: tt.valued,
			}}
			score, _ := run(scoreConversionImplementation, snap)
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestScoreEnhancedConversions(t *testing.T) {
	score, _ := run(scoreEnhancedConversions, &domain.MetricsSnapshot{ConversionTracking: domain.ConversionMetrics{
		HasEnhancedConversions: true, HasDataDrivenAttribution: true,
	}})
	assert.Equal(t, 95.0, score)

	score, o := run(scoreEnhancedConversions, &domain.MetricsSnapshot{ConversionTracking: domain.ConversionMetrics{
		HasEnhancedConversions: true,
	}})
	assert.Equal(t, 75.0, score)
	assert.Len(t, o.recommendations, 1)

	score, _ = run(scoreEnhancedConversions, &domain.MetricsSnapshot{ConversionTracking: domain.ConversionMetrics{ActionCount: 2}})
	assert.Equal(t, 50.0, score)
}
