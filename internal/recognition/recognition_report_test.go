package recognition_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() recognition.Report {
	week, _ := recognition.ParsePeriod(recognition.Weekly, "2024-01-06")
	return recognition.Report{
		Period: week,
		Winners: map[rubric.FrameworkCode]*recognition.WinnerSnapshot{
			rubric.Ascend: {
				Framework:      "ASCEND",
				StaffID:        staffA,
				StaffName:      "Avery Adams",
				PositionID:     "ra",
				EvaluationID:   evalID("50"),
				EvaluationDate: "2024-01-03",
				Score:          decimal.RequireFromString("3.5"),
				MaxScore:       4,
				Justification:  "Service (4/4): answered (every) call",
			},
		},
		Averages: map[rubric.FrameworkCode][]recognition.PillarAverage{
			rubric.Ascend: {{Letter: "A", Name: "Accountability", Average: decimal.RequireFromString("3.25")}},
		},
	}
}

func TestReport_Markdown(t *testing.T) {
	t.Run("lists every framework", func(t *testing.T) {
		md := sampleReport().Markdown()

		assert.True(t, strings.HasPrefix(md, "# Staff Recognition: Week ending January 6, 2024"))
		assert.Contains(t, md, "**Recipient:** Avery Adams (Resident Assistant)")
		assert.Contains(t, md, "**Score:** 3.50/4")
		assert.Contains(t, md, "| A Accountability | 3.25 |")
		assert.Contains(t, md, "No NORTH recognition awarded this period.")
		assert.NotContains(t, md, "## Summary")
	})

	t.Run("appends the narrative when present", func(t *testing.T) {
		r := sampleReport()
		r.Narrative = "Great week."

		assert.True(t, strings.HasSuffix(r.Markdown(), "## Summary\n\nGreat week.\n"))
	})
}

func TestReport_PDF(t *testing.T) {
	t.Run("single page document", func(t *testing.T) {
		pdf, err := sampleReport().PDF()
		require.NoError(t, err)

		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-1.4\n")))
		assert.True(t, bytes.HasSuffix(pdf, []byte("%%EOF")))
		assert.Contains(t, string(pdf), "/Count 1")
		assert.Contains(t, string(pdf), `answered \(every\) call`)
		assert.Contains(t, string(pdf), "14 TL")
	})

	t.Run("long reports paginate", func(t *testing.T) {
		r := sampleReport()
		r.Narrative = strings.Repeat(fmt.Sprintf("%s ", "recognition"), 600)

		pdf, err := r.PDF()

		assert.NoError(t, err)
		assert.Contains(t, string(pdf), "/Count 2")
	})
}
