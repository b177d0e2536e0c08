package recognition

import (
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/evaluation"

	"github.com/shopspring/decimal"
)

type TrendPoint struct {
	Date         time.Time       `json:"date"`
	EvaluationID string          `json:"evaluation_id"`
	OverallScore decimal.Decimal `json:"overall_score"`
}

// ComputeTrendSeries yields the raw overall scores of staffID ordered by date,
// ties broken by evaluation id. Filtering and sorting happen each time the
// sequence is ranged, so it can be consumed any number of times.
func ComputeTrendSeries(staffID string, evals []evaluation.Evaluation) iter.Seq[TrendPoint] {
	src := slices.Clone(evals)
	return func(yield func(TrendPoint) bool) {
		var own []evaluation.Evaluation
		for _, e := range src {
			if e.StaffID() == staffID {
				own = append(own, e)
			}
		}
		slices.SortStableFunc(own, func(a, b evaluation.Evaluation) int {
			if c := a.EvaluationDate().Compare(b.EvaluationDate()); c != 0 {
				return c
			}
			return strings.Compare(a.ID(), b.ID())
		})
		for _, e := range own {
			if !yield(TrendPoint{Date: e.EvaluationDate(), EvaluationID: e.ID(), OverallScore: e.OverallScore()}) {
				return
			}
		}
	}
}
