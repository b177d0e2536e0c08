package recognition

import (
	"fmt"
	"strings"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"
)

// Report is everything known about one period's recognition.
type Report struct {
	Period    Period
	Winners   map[rubric.FrameworkCode]*WinnerSnapshot
	Averages  map[rubric.FrameworkCode][]PillarAverage
	Narrative string
}

// Lines renders the report as plain text lines in a fixed framework order.
// Frameworks without a winner say so explicitly.
func (r Report) Lines() []string {
	lines := []string{"Staff Recognition: " + r.Period.Label(), ""}
	for _, fw := range rubric.Frameworks() {
		code := fw.Code()
		lines = append(lines, fmt.Sprintf("%s Recognition", code))
		w := r.Winners[code]
		if w == nil {
			lines = append(lines, fmt.Sprintf("No %s recognition awarded this period.", code), "")
			continue
		}
		lines = append(lines,
			"Recipient: "+recipient(w),
			fmt.Sprintf("Score: %s/%d", w.Score.StringFixed(2), w.MaxScore),
			"Evaluated: "+w.EvaluationDate,
			"Reasoning: "+w.Justification,
		)
		if avgs := r.Averages[code]; len(avgs) > 0 {
			lines = append(lines, "Pillar averages:")
			for _, a := range avgs {
				lines = append(lines, fmt.Sprintf("  %s %s: %s", a.Letter, a.Name, a.Average.StringFixed(2)))
			}
		}
		lines = append(lines, "")
	}
	if r.Narrative != "" {
		lines = append(lines, "Summary", r.Narrative)
	}
	return lines
}

// Markdown renders the report for email and the API.
func (r Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Staff Recognition: %s\n\n", r.Period.Label())
	for _, fw := range rubric.Frameworks() {
		code := fw.Code()
		fmt.Fprintf(&b, "## %s Recognition\n\n", code)
		w := r.Winners[code]
		if w == nil {
			fmt.Fprintf(&b, "No %s recognition awarded this period.\n\n", code)
			continue
		}
		fmt.Fprintf(&b, "**Recipient:** %s\n\n", recipient(w))
		fmt.Fprintf(&b, "**Score:** %s/%d\n\n", w.Score.StringFixed(2), w.MaxScore)
		fmt.Fprintf(&b, "**Evaluated:** %s\n\n", w.EvaluationDate)
		fmt.Fprintf(&b, "**Reasoning:** %s\n\n", w.Justification)
		if avgs := r.Averages[code]; len(avgs) > 0 {
			b.WriteString("| Pillar | Average |\n|---|---|\n")
			for _, a := range avgs {
				fmt.Fprintf(&b, "| %s %s | %s |\n", a.Letter, a.Name, a.Average.StringFixed(2))
			}
			b.WriteString("\n")
		}
	}
	if r.Narrative != "" {
		fmt.Fprintf(&b, "## Summary\n\n%s\n", r.Narrative)
	}
	return b.String()
}

func recipient(w *WinnerSnapshot) string {
	if p, err := rubric.PositionByID(rubric.PositionID(w.PositionID)); err == nil {
		return fmt.Sprintf("%s (%s)", w.StaffName, p.Name)
	}
	return w.StaffName
}
