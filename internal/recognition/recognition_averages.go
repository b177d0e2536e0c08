package recognition

import (
	"fmt"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/evaluation"
	recognitionerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition/errors"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"

	"github.com/shopspring/decimal"
)

// AggregatePillarAverages averages each pillar over evals, rounded to two
// places. Pillars nobody was scored on are absent from the result.
func AggregatePillarAverages(evals []evaluation.Evaluation) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	if len(evals) == 0 {
		return out, nil
	}

	framework := evals[0].Framework().Code()
	sums := make(map[string]int64)
	counts := make(map[string]int64)
	for _, e := range evals {
		if code := e.Framework().Code(); code != framework {
			return nil, fmt.Errorf("%w: %s and %s", recognitionerrors.ErrMixedFrameworks, framework, code)
		}
		for _, s := range e.Scores() {
			sums[s.Letter] += int64(s.Score)
			counts[s.Letter]++
		}
	}

	for letter, n := range counts {
		out[letter] = decimal.NewFromInt(sums[letter]).DivRound(decimal.NewFromInt(n), 2)
	}
	return out, nil
}

type PillarAverage struct {
	Letter  string          `json:"letter"`
	Name    string          `json:"name"`
	Average decimal.Decimal `json:"average"`
}

// OrderedAverages lays averages out in the framework's pillar order, skipping
// absent pillars.
func OrderedAverages(fw rubric.Framework, averages map[string]decimal.Decimal) []PillarAverage {
	out := make([]PillarAverage, 0, len(averages))
	for _, p := range fw.Pillars() {
		avg, ok := averages[p.Letter]
		if !ok {
			continue
		}
		out = append(out, PillarAverage{Letter: p.Letter, Name: p.Name, Average: avg})
	}
	return out
}
