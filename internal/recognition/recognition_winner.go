package recognition

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/evaluation"
	recognitionerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition/errors"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"

	"github.com/shopspring/decimal"
)

// StaffRef is the part of a staff record a winner snapshot copies.
type StaffRef struct {
	ID         string
	FullName   string
	PositionID string
}

// WinnerSnapshot is stored by value. Later edits to staff or evaluations do
// not change it.
type WinnerSnapshot struct {
	Framework      string          `json:"framework"`
	StaffID        string          `json:"staff_id"`
	StaffName      string          `json:"staff_name"`
	PositionID     string          `json:"position_id"`
	EvaluationID   string          `json:"evaluation_id"`
	EvaluationDate string          `json:"evaluation_date"`
	Score          decimal.Decimal `json:"score"`
	MaxScore       int             `json:"max_score"`
	Justification  string          `json:"justification"`
}

// RankCandidates returns the evaluations of framework that fall inside period,
// best first. The order is total: overall score, then pillars at the
// framework maximum, then earlier date, then staff id, then evaluation id.
func RankCandidates(period Period, framework rubric.FrameworkCode, evals []evaluation.Evaluation) ([]evaluation.Evaluation, error) {
	if _, err := rubric.FrameworkByCode(framework); err != nil {
		return nil, err
	}

	candidates := make([]evaluation.Evaluation, 0, len(evals))
	for _, e := range evals {
		if e.Framework().Code() != framework || !period.Contains(e.EvaluationDate()) {
			continue
		}
		candidates = append(candidates, e)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return ranksBefore(candidates[i], candidates[j])
	})
	return candidates, nil
}

func ranksBefore(a, b evaluation.Evaluation) bool {
	if c := a.OverallScore().Cmp(b.OverallScore()); c != 0 {
		return c > 0
	}
	if am, bm := a.MaxLevelCount(), b.MaxLevelCount(); am != bm {
		return am > bm
	}
	if ad, bd := a.EvaluationDate(), b.EvaluationDate(); !ad.Equal(bd) {
		return ad.Before(bd)
	}
	if a.StaffID() != b.StaffID() {
		return a.StaffID() < b.StaffID()
	}
	return a.ID() < b.ID()
}

// SelectPeriodWinner picks the top evaluation of framework inside period and
// snapshots it. No candidates yields nil without error.
func SelectPeriodWinner(period Period, framework rubric.FrameworkCode, evals []evaluation.Evaluation, staff []StaffRef) (*WinnerSnapshot, error) {
	ranked, err := RankCandidates(period, framework, evals)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}
	if len(staff) == 0 {
		return nil, recognitionerrors.ErrEmptyStaffSet
	}

	top := ranked[0]
	for _, s := range staff {
		if s.ID == top.StaffID() {
			snap := BuildWinnerSnapshot(s, top)
			return &snap, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", recognitionerrors.ErrWinnerNotInStaffSet, top.StaffID())
}

// BuildWinnerSnapshot copies what a report needs out of staff and e.
func BuildWinnerSnapshot(staff StaffRef, e evaluation.Evaluation) WinnerSnapshot {
	fw := e.Framework()
	positionID := staff.PositionID
	if positionID == "" {
		positionID = string(e.PositionID())
	}
	return WinnerSnapshot{
		Framework:      string(fw.Code()),
		StaffID:        staff.ID,
		StaffName:      staff.FullName,
		PositionID:     positionID,
		EvaluationID:   e.ID(),
		EvaluationDate: e.EvaluationDate().Format(dateLayout),
		Score:          e.OverallScore(),
		MaxScore:       fw.MaxScore(),
		Justification:  Justify(e),
	}
}

// Justify summarises the comments of the highest scored pillars, in
// canonical pillar order.
func Justify(e evaluation.Evaluation) string {
	scores := e.Scores()
	if len(scores) == 0 {
		return ""
	}
	best := 0
	for _, s := range scores {
		if s.Score > best {
			best = s.Score
		}
	}

	fw := e.Framework()
	var parts []string
	for _, s := range scores {
		if s.Score != best {
			continue
		}
		p, _ := fw.Pillar(s.Letter)
		parts = append(parts, fmt.Sprintf("%s (%d/%d): %s", p.Name, s.Score, fw.MaxScore(), s.Comment))
	}
	return strings.Join(parts, "; ")
}
