package application

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-adgrader/internal/domain"
	"github.com/ahrav/go-adgrader/internal/ports"
	"github.com/ahrav/go-adgrader/internal/testutils"
)

func TestSnapshotLoader_LoadFromFile(t *testing.T) {
	want := testutils.SampleSnapshot()
	dir := t.TempDir()

	jsonData, err := json.Marshal(want)
	require.NoError(t, err)
	jsonPath := filepath.Join(dir, "account.json")
	require.NoError(t, os.WriteFile(jsonPath, jsonData, 0o600))

	yamlData, err := yaml.Marshal(want)
	require.NoError(t, err)
	yamlPath := filepath.Join(dir, "account.YML")
	require.NoError(t, os.WriteFile(yamlPath, yamlData, 0o600))

	loader := NewSnapshotLoader()
	for _, path := range []string{jsonPath, yamlPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			got, err := loader.LoadFromFile(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := loader.LoadFromFile(context.Background(), filepath.Join(dir, "account.csv"))
		assert.ErrorIs(t, err, ports.ErrUnsupportedFormat)

		var serr *ports.SnapshotError
		require.ErrorAs(t, err, &serr)
		assert.Contains(t, serr.Source, "account.csv")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.LoadFromFile(context.Background(), filepath.Join(dir, "absent.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSnapshotLoader_LoadFromReader(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		format  string
		wantErr error
		check   func(t *testing.T, s *domain.MetricsSnapshot)
	}{
		{
			name:   "minimal json",
			doc:    `{"account":{"id":"1"},"structure":{"keyword_count":0,"ad_group_count":0}}`,
			format: FormatJSON,
			check: func(t *testing.T, s *domain.MetricsSnapshot) {
				assert.Equal(t, "1", s.Account.ID)
				assert.Equal(t, 0.0, s.KeywordsPerAdGroup())
			},
		},
		{
			name:   "yaml with quality score buckets",
			doc:    "quality_score:\n  keywords_by_score:\n    7: 10\n    3: 4\n",
			format: FormatYAML,
			check: func(t *testing.T, s *domain.MetricsSnapshot) {
				assert.Equal(t, map[int]int{7: 10, 3: 4}, s.QualityScore.KeywordsByScore)
			},
		},
		{
			name:    "unknown json field",
			doc:     `{"acount":{"id":"1"}}`,
			format:  FormatJSON,
			wantErr: ports.ErrInvalidSnapshot,
		},
		{
			name:    "unknown yaml field",
			doc:     "structure:\n  campaigns: 3\n",
			format:  FormatYAML,
			wantErr: ports.ErrInvalidSnapshot,
		},
		{
			name:    "percentage above one",
			doc:     `{"ads":{"rsa_percentage":1.5}}`,
			format:  FormatJSON,
			wantErr: ports.ErrInvalidSnapshot,
		},
		{
			name:    "negative count",
			doc:     `{"structure":{"keyword_count":-3}}`,
			format:  FormatJSON,
			wantErr: ports.ErrInvalidSnapshot,
		},
		{
			name:    "future schema",
			doc:     `{"schema_version":"2","account":{"id":"1"}}`,
			format:  FormatJSON,
			wantErr: domain.ErrUnsupportedSchema,
		},
		{
			name:    "unknown format",
			doc:     `{}`,
			format:  "toml",
			wantErr: ports.ErrUnsupportedFormat,
		},
	}

	loader := NewSnapshotLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := loader.LoadFromReader(context.Background(), strings.NewReader(tt.doc), tt.format)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	for path, want := range map[string]string{
		"a.json":      FormatJSON,
		"b.yaml":      FormatYAML,
		"dir/c.yml":   FormatYAML,
		"D.JSON":      FormatJSON,
		"nested.y.ml": "",
	} {
		got, err := FormatForPath(path)
		if want == "" {
			assert.ErrorIs(t, err, ports.ErrUnsupportedFormat, path)
			continue
		}
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}
