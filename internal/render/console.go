package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ahrav/go-adgrader/internal/domain"
)

// ConsoleRenderer prints the report view: the overall grade, one line per
// category and the top recommendations with their severity.
type ConsoleRenderer struct {
	limit    int
	colorize bool
}

// NewConsoleRenderer creates a console renderer showing at most limit
// recommendations (domain.DefaultReportLimit when limit <= 0).
func NewConsoleRenderer(limit int, colorize bool) *ConsoleRenderer {
	return &ConsoleRenderer{
		limit:    orDefault(limit, domain.DefaultReportLimit),
		colorize: colorize,
	}
}

// Render implements Renderer.
func (c *ConsoleRenderer) Render(w io.Writer, result *domain.GradingResult) error {
	if result == nil {
		return errors.New("render: nil result")
	}

	var b strings.Builder
	c.writeHeader(&b, result)
	c.writeCategories(&b, result)
	c.writeRecommendations(&b, result)
	c.writeWarnings(&b, result)

	_, err := io.WriteString(w, b.String())
	return err
}

func (c *ConsoleRenderer) style() lipgloss.Style { return lipgloss.NewStyle() }

func (c *ConsoleRenderer) gradeStyle(g domain.Grade) lipgloss.Style {
	if !c.colorize {
		return c.style()
	}
	switch g {
	case domain.GradeA, domain.GradeB:
		return c.style().Foreground(lipgloss.Color("10")) // green
	case domain.GradeC:
		return c.style().Foreground(lipgloss.Color("3")) // yellow
	default:
		return c.style().Foreground(lipgloss.Color("9")) // red
	}
}

func (c *ConsoleRenderer) severityStyle(s domain.Severity) lipgloss.Style {
	if !c.colorize {
		return c.style()
	}
	switch s {
	case domain.SeverityCritical:
		return c.style().Foreground(lipgloss.Color("9")).Bold(true)
	case domain.SeverityHigh:
		return c.style().Foreground(lipgloss.Color("9"))
	case domain.SeverityMedium:
		return c.style().Foreground(lipgloss.Color("3"))
	default:
		return c.style().Foreground(lipgloss.Color("7"))
	}
}

func (c *ConsoleRenderer) heading(text string) string {
	if !c.colorize {
		return text
	}
	return c.style().Bold(true).Render(text)
}

func (c *ConsoleRenderer) writeHeader(b *strings.Builder, result *domain.GradingResult) {
	b.WriteString(c.heading("Google Ads Account Grade"))
	b.WriteString("\n")

	acct := result.Account
	switch {
	case acct.Name != "" && acct.ID != "":
		fmt.Fprintf(b, "Account: %s (%s)\n", acct.Name, acct.ID)
	case acct.ID != "":
		fmt.Fprintf(b, "Account: %s\n", acct.ID)
	case acct.Name != "":
		fmt.Fprintf(b, "Account: %s\n", acct.Name)
	}

	overall := domain.FormatScore(result.Overall.Letter, result.Overall.Score)
	fmt.Fprintf(b, "Overall: %s\n\n", c.gradeStyle(result.Overall.Letter).Render(overall))
}

func (c *ConsoleRenderer) writeCategories(b *strings.Builder, result *domain.GradingResult) {
	b.WriteString(c.heading(fmt.Sprintf("%-32s %7s %7s  %s", "Category", "Weight", "Score", "Grade")))
	b.WriteString("\n")

	for _, cat := range result.OrderedCategories() {
		letter := c.gradeStyle(cat.Letter).Render(string(cat.Letter))
		fmt.Fprintf(b, "%-32s %6.0f%% %7.1f  %s\n", cat.Name, cat.Weight, cat.Score, letter)
	}
	b.WriteString("\n")
}

func (c *ConsoleRenderer) writeRecommendations(b *strings.Builder, result *domain.GradingResult) {
	top := result.TopRecommendations(c.limit)
	if len(top) == 0 {
		b.WriteString("No recommendations.\n")
		return
	}

	b.WriteString(c.heading(fmt.Sprintf("Top %d Recommendations", len(top))))
	b.WriteString("\n")
	for i, rec := range top {
		sev := rec.Severity()
		label := c.severityStyle(sev).Render(fmt.Sprintf("[%s]", sev))
		fmt.Fprintf(b, "%2d. %s %s (%s)\n", i+1, label, rec.Text, categoryName(result, rec.Category))
	}
}

func (c *ConsoleRenderer) writeWarnings(b *strings.Builder, result *domain.GradingResult) {
	if len(result.Warnings) == 0 {
		return
	}

	b.WriteString("\n")
	b.WriteString(c.heading("Warnings"))
	b.WriteString("\n")

	warn := c.style()
	if c.colorize {
		warn = warn.Foreground(lipgloss.Color("3"))
	}
	for _, wr := range result.Warnings {
		where := string(wr.Category)
		if wr.Criterion != "" {
			where = string(wr.Criterion)
		}
		fmt.Fprintf(b, "  %s %s: %s\n", warn.Render("⚠ "+string(wr.Kind)), where, wr.Message)
	}
}
