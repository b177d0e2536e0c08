package evaluation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	evaluationerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/evaluation/errors"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage layout of an evaluation date.
const DateLayout = "2006-01-02"

// idNamespace seeds deterministic evaluation ids.
var idNamespace = uuid.MustParse("3f6c1c0e-8d8a-4c55-9d62-0d1f5a3c7b21")

// PillarScore is one scored pillar. A zero Score means the slot is still empty.
type PillarScore struct {
	Letter  string `json:"letter"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

func (p PillarScore) filled() bool {
	return p.Score != 0 && p.Comment != ""
}

// Draft is an evaluation being filled in. It holds exactly one slot per pillar
// of the staff member's framework, in canonical order.
type Draft struct {
	staffID     string
	evaluatorID string
	positionID  rubric.PositionID
	framework   rubric.Framework
	criteria    rubric.Criteria
	slots       []PillarScore
}

// StartEvaluation opens a draft for staffID against the staff member's
// position rubric.
func StartEvaluation(staffID, evaluatorID string, r rubric.PositionRubric) (*Draft, error) {
	fw, err := rubric.FrameworkByCode(r.Framework)
	if err != nil {
		return nil, err
	}
	d, err := newDraft(staffID, evaluatorID, r.Position, fw)
	if err != nil {
		return nil, err
	}
	d.criteria = r.Criteria
	return d, nil
}

func newDraft(staffID, evaluatorID string, positionID rubric.PositionID, fw rubric.Framework) (*Draft, error) {
	if strings.TrimSpace(staffID) == "" {
		return nil, &evaluationerrors.ValidationError{Field: evaluationerrors.FieldStaffID, Reason: "is required"}
	}
	if strings.TrimSpace(evaluatorID) == "" {
		return nil, &evaluationerrors.ValidationError{Field: evaluationerrors.FieldEvaluatorID, Reason: "is required"}
	}
	letters := fw.Letters()
	slots := make([]PillarScore, len(letters))
	for i, l := range letters {
		slots[i] = PillarScore{Letter: l}
	}
	return &Draft{
		staffID:     staffID,
		evaluatorID: evaluatorID,
		positionID:  positionID,
		framework:   fw,
		slots:       slots,
	}, nil
}

func (d *Draft) StaffID() string               { return d.staffID }
func (d *Draft) EvaluatorID() string           { return d.evaluatorID }
func (d *Draft) PositionID() rubric.PositionID { return d.positionID }
func (d *Draft) Framework() rubric.Framework   { return d.framework }

// Slots returns a copy of the current pillar slots.
func (d *Draft) Slots() []PillarScore {
	out := make([]PillarScore, len(d.slots))
	copy(out, d.slots)
	return out
}

// Criterion returns the rubric text for a pillar and level, if the draft was
// started from a rubric.
func (d *Draft) Criterion(letter string, level int) string {
	if level < 1 || level > rubric.NumLevels {
		return ""
	}
	return d.criteria[letter][level-1]
}

// SetPillarScore fills one slot. The comment is stored trimmed.
func (d *Draft) SetPillarScore(letter string, score int, comment string) error {
	idx := d.framework.PillarIndex(letter)
	if idx < 0 {
		return &evaluationerrors.ValidationError{
			Pillar: letter,
			Field:  evaluationerrors.FieldPillar,
			Reason: fmt.Sprintf("is not part of the %s framework", d.framework.Code()),
		}
	}
	if !d.framework.InRange(score) {
		return &evaluationerrors.ValidationError{
			Pillar: letter,
			Field:  evaluationerrors.FieldScore,
			Reason: fmt.Sprintf("must be between %d and %d", d.framework.MinScore(), d.framework.MaxScore()),
		}
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return &evaluationerrors.ValidationError{
			Pillar: letter,
			Field:  evaluationerrors.FieldComment,
			Reason: "must not be blank",
		}
	}
	d.slots[idx] = PillarScore{Letter: letter, Score: score, Comment: comment}
	return nil
}

// Missing lists every pillar still lacking a score or a comment.
func (d *Draft) Missing() []evaluationerrors.MissingPillar {
	var missing []evaluationerrors.MissingPillar
	for _, s := range d.slots {
		if s.filled() {
			continue
		}
		missing = append(missing, evaluationerrors.MissingPillar{
			Pillar:  s.Letter,
			Score:   s.Score == 0,
			Comment: s.Comment == "",
		})
	}
	return missing
}

// Finalize turns the draft into an immutable Evaluation. Nothing is returned
// unless every pillar is filled.
func (d *Draft) Finalize(id string, date time.Time) (Evaluation, error) {
	if missing := d.Missing(); len(missing) > 0 {
		return Evaluation{}, &evaluationerrors.IncompleteEvaluationError{Missing: missing}
	}
	if strings.TrimSpace(id) == "" {
		return Evaluation{}, &evaluationerrors.ValidationError{Field: evaluationerrors.FieldID, Reason: "is required"}
	}
	if date.IsZero() {
		return Evaluation{}, &evaluationerrors.ValidationError{Field: evaluationerrors.FieldEvaluationDate, Reason: "is required"}
	}

	scores := d.Slots()
	return Evaluation{
		id:             id,
		staffID:        d.staffID,
		evaluatorID:    d.evaluatorID,
		positionID:     d.positionID,
		framework:      d.framework,
		evaluationDate: truncateDate(date),
		scores:         scores,
		overall:        overallScore(scores),
	}, nil
}

// Evaluation is one completed scoring event. It is never mutated once built;
// amendments are new evaluations.
type Evaluation struct {
	id             string
	staffID        string
	evaluatorID    string
	positionID     rubric.PositionID
	framework      rubric.Framework
	evaluationDate time.Time
	scores         []PillarScore
	overall        decimal.Decimal
}

// Restore rebuilds an Evaluation from stored pillar scores, running the same
// validation as a fresh submission and recomputing the overall score.
func Restore(
	id, staffID, evaluatorID string,
	positionID rubric.PositionID,
	framework rubric.FrameworkCode,
	date time.Time,
	scores []PillarScore,
) (Evaluation, error) {
	fw, err := rubric.FrameworkByCode(framework)
	if err != nil {
		return Evaluation{}, err
	}
	d, err := newDraft(staffID, evaluatorID, positionID, fw)
	if err != nil {
		return Evaluation{}, err
	}
	for _, s := range scores {
		if err := d.SetPillarScore(s.Letter, s.Score, s.Comment); err != nil {
			return Evaluation{}, err
		}
	}
	return d.Finalize(id, date)
}

func (e Evaluation) ID() string                    { return e.id }
func (e Evaluation) StaffID() string               { return e.staffID }
func (e Evaluation) EvaluatorID() string           { return e.evaluatorID }
func (e Evaluation) PositionID() rubric.PositionID { return e.positionID }
func (e Evaluation) Framework() rubric.Framework   { return e.framework }
func (e Evaluation) EvaluationDate() time.Time     { return e.evaluationDate }
func (e Evaluation) OverallScore() decimal.Decimal { return e.overall }
func (e Evaluation) IsZero() bool                  { return e.id == "" }

// Scores returns a copy of the pillar scores in canonical order.
func (e Evaluation) Scores() []PillarScore {
	out := make([]PillarScore, len(e.scores))
	copy(out, e.scores)
	return out
}

// Score returns the score of one pillar.
func (e Evaluation) Score(letter string) (PillarScore, bool) {
	for _, s := range e.scores {
		if s.Letter == letter {
			return s, true
		}
	}
	return PillarScore{}, false
}

// MaxLevelCount counts pillars scored at the framework maximum.
func (e Evaluation) MaxLevelCount() int {
	n := 0
	for _, s := range e.scores {
		if s.Score == e.framework.MaxScore() {
			n++
		}
	}
	return n
}

// SameContent reports whether two evaluations carry the same subject, author,
// date and pillar scores. The id is not compared.
func (e Evaluation) SameContent(o Evaluation) bool {
	if e.staffID != o.staffID ||
		e.evaluatorID != o.evaluatorID ||
		e.positionID != o.positionID ||
		e.framework.Code() != o.framework.Code() ||
		!e.evaluationDate.Equal(o.evaluationDate) ||
		len(e.scores) != len(o.scores) {
		return false
	}
	for i := range e.scores {
		if e.scores[i] != o.scores[i] {
			return false
		}
	}
	return true
}

// DeterministicID derives a stable id from the content of a submission so a
// retried request maps onto the same record.
func DeterministicID(staffID, evaluatorID string, date time.Time, scores []PillarScore) string {
	var b strings.Builder
	b.WriteString(staffID)
	b.WriteByte('|')
	b.WriteString(evaluatorID)
	b.WriteByte('|')
	b.WriteString(truncateDate(date).Format(DateLayout))
	for _, s := range scores {
		b.WriteByte('|')
		b.WriteString(s.Letter)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(s.Score))
		b.WriteByte(':')
		b.WriteString(strings.TrimSpace(s.Comment))
	}
	return uuid.NewSHA1(idNamespace, []byte(b.String())).String()
}

// overallScore is the unweighted mean of the pillar scores, rounded half away
// from zero to two places.
func overallScore(scores []PillarScore) decimal.Decimal {
	if len(scores) == 0 {
		return decimal.Zero
	}
	sum := 0
	for _, s := range scores {
		sum += s.Score
	}
	return decimal.NewFromInt(int64(sum)).DivRound(decimal.NewFromInt(int64(len(scores))), 2)
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
