package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ahrav/go-adgrader/internal/domain"
)

// Digest is the plain-text e-mail summary of a grading run.
type Digest struct {
	Subject string
	Body    string
}

// BuildDigest assembles the digest view with at most limit recommendations
// (domain.DefaultDigestLimit when limit <= 0).
func BuildDigest(result *domain.GradingResult, limit int) Digest {
	limit = orDefault(limit, domain.DefaultDigestLimit)
	grade := domain.FormatScore(result.Overall.Letter, result.Overall.Score)

	var b strings.Builder
	if name := result.Account.Name; name != "" {
		fmt.Fprintf(&b, "Account: %s\n", name)
	}
	if id := result.Account.ID; id != "" {
		fmt.Fprintf(&b, "Account ID: %s\n", id)
	}
	fmt.Fprintf(&b, "Overall grade: %s\n\n", grade)

	b.WriteString("Category grades:\n")
	for _, cat := range result.OrderedCategories() {
		fmt.Fprintf(&b, "  - %s: %s\n", cat.Name, domain.FormatScore(cat.Letter, cat.Score))
	}

	top := result.TopRecommendations(limit)
	if len(top) > 0 {
		fmt.Fprintf(&b, "\nTop %d recommendations:\n", len(top))
		for i, rec := range top {
			fmt.Fprintf(&b, "  %d. [%s] %s\n", i+1, rec.Severity(), rec.Text)
		}
	}

	if n := len(result.Warnings); n > 0 {
		fmt.Fprintf(&b, "\n%d criteria could not be scored; see the full report for details.\n", n)
	}

	return Digest{
		Subject: "Account Grade: " + grade,
		Body:    b.String(),
	}
}

// DigestRenderer writes the digest as a subject line followed by the body.
type DigestRenderer struct {
	limit int
}

// NewDigestRenderer creates a digest renderer.
func NewDigestRenderer(limit int) *DigestRenderer {
	return &DigestRenderer{limit: orDefault(limit, domain.DefaultDigestLimit)}
}

// Render implements Renderer.
func (d *DigestRenderer) Render(w io.Writer, result *domain.GradingResult) error {
	if result == nil {
		return errors.New("render: nil result")
	}
	dg := BuildDigest(result, d.limit)
	_, err := fmt.Fprintf(w, "Subject: %s\n\n%s", dg.Subject, dg.Body)
	return err
}
