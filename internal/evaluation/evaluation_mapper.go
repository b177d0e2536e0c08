package evaluation

import (
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"

	"github.com/google/uuid"
)

func mapToResponse(e Evaluation) EvaluationResponse {
	fw := e.Framework()
	scores := e.Scores()
	resp := EvaluationResponse{
		ID:             e.ID(),
		StaffID:        e.StaffID(),
		EvaluatorID:    e.EvaluatorID(),
		PositionID:     string(e.PositionID()),
		Framework:      string(fw.Code()),
		EvaluationDate: e.EvaluationDate().Format(DateLayout),
		OverallScore:   e.OverallScore().StringFixed(2),
		MaxScore:       fw.MaxScore(),
		Scores:         make([]PillarScoreResponse, len(scores)),
	}
	for i, s := range scores {
		p, _ := fw.Pillar(s.Letter)
		level, _ := fw.Level(s.Score)
		resp.Scores[i] = PillarScoreResponse{
			Pillar:  s.Letter,
			Name:    p.Name,
			Score:   s.Score,
			Level:   level,
			Comment: s.Comment,
		}
	}
	return resp
}

func mapToListResponse(evals []Evaluation) []EvaluationResponse {
	res := make([]EvaluationResponse, len(evals))
	for i, e := range evals {
		res[i] = mapToResponse(e)
	}
	return res
}

func mapDraftToResponse(d *Draft, staffName string) DraftResponse {
	fw := d.Framework()
	resp := DraftResponse{
		StaffID:     d.StaffID(),
		StaffName:   staffName,
		EvaluatorID: d.EvaluatorID(),
		PositionID:  string(d.PositionID()),
		Framework:   string(fw.Code()),
		MinScore:    fw.MinScore(),
		MaxScore:    fw.MaxScore(),
	}
	for _, p := range fw.Pillars() {
		pillar := DraftPillarResponse{Letter: p.Letter, Name: p.Name, Focus: p.Focus}
		for lvl := 1; lvl <= rubric.NumLevels; lvl++ {
			pillar.Criteria = append(pillar.Criteria, CriterionLevelResponse{
				Level:       lvl,
				Name:        rubric.LevelName(lvl),
				Description: d.Criterion(p.Letter, lvl),
			})
		}
		resp.Pillars = append(resp.Pillars, pillar)
	}
	return resp
}

// toRecord flattens an evaluation for storage. Ids were validated as uuids
// before the evaluation was built.
func toRecord(e Evaluation) *Record {
	id := uuid.MustParse(e.ID())
	scores := e.Scores()
	rec := &Record{
		ID:             id,
		StaffID:        uuid.MustParse(e.StaffID()),
		EvaluatorID:    uuid.MustParse(e.EvaluatorID()),
		PositionID:     string(e.PositionID()),
		Framework:      string(e.Framework().Code()),
		EvaluationDate: e.EvaluationDate(),
		Scores:         make([]ScoreRecord, len(scores)),
	}
	for i, s := range scores {
		rec.Scores[i] = ScoreRecord{
			EvaluationID: id,
			PillarLetter: s.Letter,
			Ordinal:      i,
			Score:        s.Score,
			Comment:      s.Comment,
		}
	}
	return rec
}

// FromRecord rebuilds the domain evaluation from storage, recomputing the
// overall score from the stored pillar scores.
func FromRecord(rec Record) (Evaluation, error) {
	scores := make([]PillarScore, len(rec.Scores))
	for i, s := range rec.Scores {
		scores[i] = PillarScore{Letter: s.PillarLetter, Score: s.Score, Comment: s.Comment}
	}
	return Restore(
		rec.ID.String(),
		rec.StaffID.String(),
		rec.EvaluatorID.String(),
		rubric.PositionID(rec.PositionID),
		rubric.FrameworkCode(rec.Framework),
		rec.EvaluationDate,
		scores,
	)
}
