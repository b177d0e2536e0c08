package recognition_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/evaluation"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition"
	recognitionerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition/errors"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"
	rubricerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	staffA    = "00000000-0000-4000-8000-00000000000a"
	staffB    = "00000000-0000-4000-8000-00000000000b"
	staffRD   = "00000000-0000-4000-8000-0000000000dd"
	evaluator = "00000000-0000-4000-8000-0000000000ff"
)

var ascendLetters = []string{"A", "S", "C", "E", "N", "D"}

// ascendEval builds an RA evaluation with scores in canonical pillar order.
func ascendEval(t *testing.T, id, staffID, date string, scores ...int) evaluation.Evaluation {
	t.Helper()
	ps := make([]evaluation.PillarScore, 0, len(scores))
	for i, s := range scores {
		ps = append(ps, evaluation.PillarScore{Letter: ascendLetters[i], Score: s, Comment: "note " + ascendLetters[i]})
	}
	e, err := evaluation.Restore(id, staffID, evaluator, rubric.PositionRA, rubric.Ascend, day(date), ps)
	require.NoError(t, err)
	return e
}

func northEval(t *testing.T, id, staffID, date string, scores ...int) evaluation.Evaluation {
	t.Helper()
	letters := []string{"N", "O", "R", "T", "H"}
	ps := make([]evaluation.PillarScore, 0, len(scores))
	for i, s := range scores {
		ps = append(ps, evaluation.PillarScore{Letter: letters[i], Score: s, Comment: "note " + letters[i]})
	}
	e, err := evaluation.Restore(id, staffID, evaluator, rubric.PositionRD, rubric.North, day(date), ps)
	require.NoError(t, err)
	return e
}

func evalID(n string) string { return "00000000-0000-4000-9000-0000000000" + n }

var staffSet = []recognition.StaffRef{
	{ID: staffA, FullName: "Avery Adams", PositionID: "ra"},
	{ID: staffB, FullName: "Blake Brown", PositionID: "ra"},
	{ID: staffRD, FullName: "Dana Diaz", PositionID: "rd"},
}

func TestSelectPeriodWinner_TieBreaks(t *testing.T) {
	week, _ := recognition.ParsePeriod(recognition.Weekly, "2024-01-06")

	t.Run("more pillars at the top level wins", func(t *testing.T) {
		threeFours := ascendEval(t, evalID("01"), staffB, "2024-01-05", 4, 4, 4, 2, 2, 2)
		twoFours := ascendEval(t, evalID("02"), staffA, "2024-01-02", 4, 4, 3, 3, 2, 2)
		require.True(t, threeFours.OverallScore().Equal(twoFours.OverallScore()))

		w, err := recognition.SelectPeriodWinner(week, rubric.Ascend, []evaluation.Evaluation{twoFours, threeFours}, staffSet)

		assert.NoError(t, err)
		assert.Equal(t, staffB, w.StaffID)
		assert.Equal(t, "3.00", w.Score.StringFixed(2))
	})

	t.Run("at 3.50 four top pillars beat three", func(t *testing.T) {
		four := ascendEval(t, evalID("03"), staffB, "2024-01-05", 4, 4, 4, 4, 3, 2)
		three := ascendEval(t, evalID("04"), staffA, "2024-01-05", 4, 4, 4, 3, 3, 3)
		require.Equal(t, "3.5", four.OverallScore().String())

		w, err := recognition.SelectPeriodWinner(week, rubric.Ascend, []evaluation.Evaluation{three, four}, staffSet)

		assert.NoError(t, err)
		assert.Equal(t, staffB, w.StaffID)
	})

	t.Run("with equal top pillars the earlier date wins", func(t *testing.T) {
		early := ascendEval(t, evalID("05"), staffB, "2024-01-01", 4, 4, 4, 3, 3, 3)
		late := ascendEval(t, evalID("06"), staffA, "2024-01-04", 4, 4, 4, 3, 3, 3)

		w, err := recognition.SelectPeriodWinner(week, rubric.Ascend, []evaluation.Evaluation{late, early}, staffSet)

		assert.NoError(t, err)
		assert.Equal(t, staffB, w.StaffID)
		assert.Equal(t, "2024-01-01", w.EvaluationDate)
	})

	t.Run("with the same date the smaller staff id wins", func(t *testing.T) {
		a := ascendEval(t, evalID("07"), staffA, "2024-01-03", 4, 4, 4, 3, 3, 3)
		b := ascendEval(t, evalID("08"), staffB, "2024-01-03", 4, 4, 4, 3, 3, 3)

		w, err := recognition.SelectPeriodWinner(week, rubric.Ascend, []evaluation.Evaluation{b, a}, staffSet)

		assert.NoError(t, err)
		assert.Equal(t, staffA, w.StaffID)
		assert.Equal(t, "Avery Adams", w.StaffName)
	})
}

func TestSelectPeriodWinner(t *testing.T) {
	week, _ := recognition.ParsePeriod(recognition.Weekly, "2024-01-06")

	t.Run("ranking ignores other frameworks and dates outside the period", func(t *testing.T) {
		outside := ascendEval(t, evalID("09"), staffA, "2024-01-07", 4, 4, 4, 4, 4, 4)
		inside := ascendEval(t, evalID("10"), staffB, "2024-01-06", 2, 2, 2, 2, 2, 2)
		north := northEval(t, evalID("11"), staffRD, "2024-01-04", 9, 9, 9, 9, 9)

		ranked, err := recognition.RankCandidates(week, rubric.Ascend, []evaluation.Evaluation{outside, inside, north})
		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.Equal(t, evalID("10"), ranked[0].ID())

		w, err := recognition.SelectPeriodWinner(week, rubric.North, []evaluation.Evaluation{outside, inside, north}, staffSet)
		assert.NoError(t, err)
		assert.Equal(t, 10, w.MaxScore)
		assert.Equal(t, "rd", w.PositionID)
	})

	t.Run("no candidates means no winner", func(t *testing.T) {
		w, err := recognition.SelectPeriodWinner(week, rubric.North, nil, nil)

		assert.NoError(t, err)
		assert.Nil(t, w)
	})

	t.Run("unknown framework", func(t *testing.T) {
		_, err := recognition.SelectPeriodWinner(week, rubric.FrameworkCode("SOUTH"), nil, staffSet)

		assert.ErrorIs(t, err, rubricerrors.ErrUnknownFramework)
	})

	t.Run("winner missing from the staff set", func(t *testing.T) {
		e := ascendEval(t, evalID("12"), staffA, "2024-01-03", 3, 3, 3, 3, 3, 3)

		_, err := recognition.SelectPeriodWinner(week, rubric.Ascend, []evaluation.Evaluation{e}, nil)
		assert.ErrorIs(t, err, recognitionerrors.ErrEmptyStaffSet)

		_, err = recognition.SelectPeriodWinner(week, rubric.Ascend, []evaluation.Evaluation{e}, staffSet[1:])
		assert.ErrorIs(t, err, recognitionerrors.ErrWinnerNotInStaffSet)
	})
}

func TestJustify(t *testing.T) {
	e := ascendEval(t, evalID("20"), staffA, "2024-01-03", 3, 4, 2, 4, 3, 3)

	assert.Equal(t, "Service (4/4): note S; Excellence (4/4): note E", recognition.Justify(e))
}

func TestComputeTrendSeries(t *testing.T) {
	unordered := func(t *testing.T) []evaluation.Evaluation {
		return []evaluation.Evaluation{
			ascendEval(t, evalID("31"), staffA, "2024-01-05", 3, 3, 3, 3, 3, 3),
			ascendEval(t, evalID("32"), staffA, "2024-03-01", 4, 4, 4, 4, 4, 4),
			ascendEval(t, evalID("33"), staffB, "2024-01-20", 1, 1, 1, 1, 1, 1),
			ascendEval(t, evalID("34"), staffA, "2024-02-10", 2, 2, 2, 2, 2, 2),
		}
	}

	t.Run("points come back by date for the staff member only", func(t *testing.T) {
		var dates []string
		for pt := range recognition.ComputeTrendSeries(staffA, unordered(t)) {
			dates = append(dates, pt.Date.Format("2006-01-02"))
		}

		assert.Equal(t, []string{"2024-01-05", "2024-02-10", "2024-03-01"}, dates)
	})

	t.Run("sequence can be ranged again and ignores later input changes", func(t *testing.T) {
		evals := unordered(t)
		seq := recognition.ComputeTrendSeries(staffA, evals)
		evals[0] = ascendEval(t, evalID("35"), staffB, "2024-01-01", 1, 1, 1, 1, 1, 1)

		first := slices.Collect(seq)
		second := slices.Collect(seq)

		require.Len(t, first, 3)
		assert.Equal(t, first, second)
		assert.True(t, first[0].OverallScore.Equal(decimal.NewFromInt(3)))
	})

	t.Run("stopping early is honoured", func(t *testing.T) {
		n := 0
		for range recognition.ComputeTrendSeries(staffA, unordered(t)) {
			n++
			break
		}

		assert.Equal(t, 1, n)
	})
}

func TestAggregatePillarAverages(t *testing.T) {
	t.Run("per pillar and rounded", func(t *testing.T) {
		a := ascendEval(t, evalID("41"), staffA, "2024-01-02", 4, 3, 2, 1, 4, 3)
		b := ascendEval(t, evalID("42"), staffB, "2024-01-03", 3, 3, 3, 2, 4, 4)
		c := ascendEval(t, evalID("43"), staffB, "2024-01-04", 3, 4, 3, 2, 4, 4)

		avgs, err := recognition.AggregatePillarAverages([]evaluation.Evaluation{a, b, c})
		require.NoError(t, err)
		assert.Equal(t, "3.33", avgs["A"].StringFixed(2))
		assert.Equal(t, "1.67", avgs["E"].StringFixed(2))
		assert.Equal(t, "4.00", avgs["N"].StringFixed(2))

		ordered := recognition.OrderedAverages(rubric.AscendFramework(), avgs)
		letters := make([]string, 0, len(ordered))
		for _, o := range ordered {
			letters = append(letters, o.Letter)
		}
		assert.Equal(t, "ASCEND", strings.Join(letters, ""))
	})

	t.Run("pillar nobody was scored on is omitted", func(t *testing.T) {
		avgs := map[string]decimal.Decimal{"A": decimal.NewFromInt(3), "S": decimal.NewFromInt(2)}
		assert.Len(t, recognition.OrderedAverages(rubric.AscendFramework(), avgs), 2)

		none, err := recognition.AggregatePillarAverages(nil)
		assert.NoError(t, err)
		assert.NotContains(t, none, "D")
	})

	t.Run("mixing frameworks", func(t *testing.T) {
		a := ascendEval(t, evalID("44"), staffA, "2024-01-02", 3, 3, 3, 3, 3, 3)
		n := northEval(t, evalID("45"), staffRD, "2024-01-02", 5, 5, 5, 5, 5)

		_, err := recognition.AggregatePillarAverages([]evaluation.Evaluation{a, n})

		assert.ErrorIs(t, err, recognitionerrors.ErrMixedFrameworks)
	})
}
