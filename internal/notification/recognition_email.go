package notification

import (
	"fmt"
	"strings"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/events"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"
)

// RecognitionEmail formats a winner announcement. Frameworks missing from the
// event are reported as not awarded.
func RecognitionEmail(to []string, e events.RecognitionWinnerSelectedEvent) Message {
	label := e.PeriodKey
	if kind, err := recognition.ParsePeriodKind(e.PeriodKind); err == nil {
		if p, err := recognition.ParsePeriod(kind, e.PeriodKey); err == nil {
			label = p.Label()
		}
	}

	byFramework := make(map[string]events.RecognitionWinner, len(e.Winners))
	for _, w := range e.Winners {
		byFramework[w.Framework] = w
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Staff Recognition: %s\n\n", label)
	for _, fw := range rubric.Frameworks() {
		code := string(fw.Code())
		w, ok := byFramework[code]
		if !ok {
			fmt.Fprintf(&b, "No %s recognition awarded this period.\n\n", code)
			continue
		}
		name := w.StaffName
		if p, err := rubric.PositionByID(rubric.PositionID(w.PositionID)); err == nil {
			name = fmt.Sprintf("%s (%s)", w.StaffName, p.Name)
		}
		fmt.Fprintf(&b, "%s Recognition\n", code)
		fmt.Fprintf(&b, "Recipient: %s\n", name)
		fmt.Fprintf(&b, "Score: %s/%d\n", w.Score, w.MaxScore)
		fmt.Fprintf(&b, "Reasoning: %s\n\n", w.Justification)
	}
	b.WriteString("Congratulations to this period's recipients.\n")

	return Message{
		To:      to,
		Subject: "Staff Recognition: " + label,
		Body:    b.String(),
	}
}
