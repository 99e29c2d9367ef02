package render

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/ahrav/go-adgrader/internal/domain"
)

// JSONRenderer writes the full result plus the report view as indented JSON.
type JSONRenderer struct {
	limit int
}

// NewJSONRenderer creates a JSON renderer whose report view holds at most
// limit recommendations.
func NewJSONRenderer(limit int) *JSONRenderer {
	return &JSONRenderer{limit: orDefault(limit, domain.DefaultReportLimit)}
}

type jsonRecommendation struct {
	domain.Recommendation
	Severity domain.Severity `json:"severity"`
}

type jsonDocument struct {
	*domain.GradingResult
	Grade              string               `json:"grade"`
	TopRecommendations []jsonRecommendation `json:"top_recommendations"`
}

// Render implements Renderer.
func (j *JSONRenderer) Render(w io.Writer, result *domain.GradingResult) error {
	if result == nil {
		return errors.New("render: nil result")
	}

	top := result.TopRecommendations(j.limit)
	doc := jsonDocument{
		GradingResult:      result,
		Grade:              domain.FormatScore(result.Overall.Letter, result.Overall.Score),
		TopRecommendations: make([]jsonRecommendation, len(top)),
	}
	for i, rec := range top {
		doc.TopRecommendations[i] = jsonRecommendation{Recommendation: rec, Severity: rec.Severity()}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
