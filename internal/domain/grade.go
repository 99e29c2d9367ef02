package domain

import "fmt"

// Grade is a letter grade derived from a 0-100 score.
// Grades are totally ordered: A > B > C > D > F.
type Grade string

// Supported letter grades, best first.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Rank returns the position of g in the grade ordering, where a higher rank
// is a better grade. Unknown grades rank below F.
func (g Grade) Rank() int {
	switch g {
	case GradeA:
		return 4
	case GradeB:
		return 3
	case GradeC:
		return 2
	case GradeD:
		return 1
	case GradeF:
		return 0
	default:
		return -1
	}
}

// Valid reports whether g is one of the five letter grades.
func (g Grade) Valid() bool { return g.Rank() >= 0 }

// Better reports whether g is strictly better than other.
func (g Grade) Better(other Grade) bool { return g.Rank() > other.Rank() }

// GradeThresholds holds the inclusive lower bound of each passing grade.
// Any score below D maps to F.
type GradeThresholds struct {
	A float64 `yaml:"a" json:"a" validate:"gtfield=B,max=100"`
	B float64 `yaml:"b" json:"b" validate:"gtfield=C"`
	C float64 `yaml:"c" json:"c" validate:"gtfield=D"`
	D float64 `yaml:"d" json:"d" validate:"min=0"`
}

// DefaultGradeThresholds returns the 90/80/70/60 scale.
func DefaultGradeThresholds() GradeThresholds {
	return GradeThresholds{A: 90, B: 80, C: 70, D: 60}
}

// Grade maps a score to its letter grade. Boundaries belong to the better
// grade, so a score of exactly 90 is an A under the default scale.
// It is the single grading function for both category and overall scores.
func (t GradeThresholds) Grade(score float64) Grade {
	switch {
	case score >= t.A:
		return GradeA
	case score >= t.B:
		return GradeB
	case score >= t.C:
		return GradeC
	case score >= t.D:
		return GradeD
	default:
		return GradeF
	}
}

// Severity is the display label attached to a recommendation's impact.
type Severity string

// Severity labels from most to least urgent.
const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// SeverityForImpact converts an impact in [0,1] to its severity label.
// The label is a display transform only and never takes part in ordering.
func SeverityForImpact(impact float64) Severity {
	switch {
	case impact >= 0.9:
		return SeverityCritical
	case impact >= 0.7:
		return SeverityHigh
	case impact >= 0.5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// String implements fmt.Stringer.
func (s Severity) String() string { return string(s) }

// String implements fmt.Stringer.
func (g Grade) String() string { return string(g) }

// FormatScore renders a score the way reports print it, e.g. "B (84.3)".
func FormatScore(letter Grade, score float64) string {
	return fmt.Sprintf("%s (%.1f)", letter, score)
}
