// Package render turns a GradingResult into human or machine readable output.
// Renderers only read the result; the report and digest views are bounded
// copies taken with domain.TopN.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/ahrav/go-adgrader/internal/domain"
)

// Output formats understood by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatDigest  = "digest"
)

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Renderer writes one grading result to w.
type Renderer interface {
	Render(w io.Writer, result *domain.GradingResult) error
}

// Formats lists the supported format names.
func Formats() []string { return []string{FormatConsole, FormatJSON, FormatDigest} }

// New returns the renderer for format. limit bounds the recommendation view;
// a non-positive limit selects the format's default.
func New(format string, limit int) (Renderer, error) {
	switch format {
	case FormatConsole:
		return NewConsoleRenderer(limit, true), nil
	case FormatJSON:
		return NewJSONRenderer(limit), nil
	case FormatDigest:
		return NewDigestRenderer(limit), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// categoryName returns the display name of key, falling back to the key.
func categoryName(result *domain.GradingResult, key domain.CategoryKey) string {
	if cat, ok := result.Categories[key]; ok && cat.Name != "" {
		return cat.Name
	}
	return string(key)
}

func orDefault(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
