package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/emmafields/rubriq/internal/domain"
)

// FormatResult renders a grading result as a styled report.
func FormatResult(r *domain.GradingResult) string {
	var b strings.Builder

	grade := GradeStyle(r.GradeLetter).Bold(true).Render(r.GradeLetter)
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		StyleHeader.Render("GRADE"),
		grade,
		Dim(fmt.Sprintf("%.0f/100 (%.0f%%)", r.Score, r.Percentage)),
	))

	if r.StudentName != "" {
		b.WriteString(Dim("Student: ") + StyleFg.Render(r.StudentName) + "\n")
	}

	if r.Feedback != "" {
		b.WriteString("\n")
		b.WriteString(StyleFg.Render(r.Feedback))
		b.WriteString("\n")
	}

	if len(r.CriterionScores) > 0 {
		b.WriteString("\n")
		headers := []string{"CRITERION", "POINTS", "NOTES"}
		rows := make([][]string, 0, len(r.CriterionScores))
		for _, cs := range r.CriterionScores {
			points := fmt.Sprintf("%.0f/%.0f", cs.PointsAwarded, cs.PointsMax)
			rows = append(rows, []string{
				StyleFg.Render(cs.Name),
				scoreStyle(cs.PointsAwarded, cs.PointsMax).Render(points),
				Dim(cs.Feedback),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	if len(r.FlaggedMistakes) > 0 {
		b.WriteString("\n" + StyleHeader.Render("FLAGGED") + "\n")
		for _, m := range r.FlaggedMistakes {
			b.WriteString(StyleYellow.Render("  ! ") + StyleFg.Render(m.Description) + "\n")
		}
	}

	return b.String()
}

func scoreStyle(awarded, max float64) lipgloss.Style {
	if max <= 0 {
		return StyleDim
	}
	switch ratio := awarded / max; {
	case ratio >= 0.8:
		return StyleGreen
	case ratio >= 0.6:
		return StyleYellow
	default:
		return StyleRed
	}
}

// FormatRubricList renders the selectable rubrics as a table.
func FormatRubricList(refs []domain.RubricRef, rubrics []*domain.Rubric) string {
	descriptions := make(map[string]string, len(rubrics))
	criteria := make(map[string]int, len(rubrics))
	for _, r := range rubrics {
		descriptions[r.ID] = r.Description
		criteria[r.ID] = len(r.Criteria)
	}

	headers := []string{"ID", "NAME", "CRITERIA", "DESCRIPTION"}
	rows := make([][]string, 0, len(refs))
	for _, ref := range refs {
		count := "--"
		if n, ok := criteria[ref.ID]; ok {
			count = fmt.Sprintf("%d", n)
		}
		desc := descriptions[ref.ID]
		if ref.ID == domain.DefaultRubricID && desc == "" {
			desc = "built-in general-purpose rubric"
		}
		rows = append(rows, []string{
			StyleBlue.Render(ref.ID),
			StyleFg.Render(ref.Name),
			Dim(count),
			Dim(desc),
		})
	}
	return RenderTable(headers, rows)
}

// FormatWarning renders a degraded-mode warning line.
func FormatWarning(msg string) string {
	return StyleYellow.Render("warning: ") + StyleFg.Render(msg)
}

// FormatUsage renders the remaining free-attempt count.
func FormatUsage(u domain.TrialUsage) string {
	remaining := u.Remaining()
	msg := fmt.Sprintf("%d of %d free attempts left", remaining, u.MaxAttempts)
	if remaining == 0 {
		return StyleRed.Render(msg)
	}
	if remaining == 1 {
		return StyleYellow.Render(msg)
	}
	return Dim(msg)
}
