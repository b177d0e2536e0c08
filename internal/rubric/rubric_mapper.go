package rubric

import "go.uber.org/zap"

func mapToResponse(r PositionRubric) RubricResponse {
	pos, _ := PositionByID(r.Position)
	fw, _ := FrameworkByCode(r.Framework)

	resp := RubricResponse{
		PositionID:   string(r.Position),
		PositionName: pos.Name,
		Framework:    string(fw.Code()),
		MinScore:     fw.MinScore(),
		MaxScore:     fw.MaxScore(),
		Pillars:      make([]PillarResponse, 0, len(fw.pillars)),
		Missing:      ValidateCompleteness(r),
	}
	for _, p := range fw.pillars {
		pr := PillarResponse{Letter: p.Letter, Name: p.Name, Focus: p.Focus, Levels: make([]LevelResponse, 0, NumLevels)}
		for lvl := 1; lvl <= NumLevels; lvl++ {
			pr.Levels = append(pr.Levels, LevelResponse{Level: lvl, Name: LevelName(lvl), Description: r.Text(p.Letter, lvl)})
		}
		resp.Pillars = append(resp.Pillars, pr)
	}
	return resp
}

// rubricFromRows builds a rubric from stored rows. Rows that do not fit the
// position's framework are skipped.
func rubricFromRows(position PositionID, rows []Criterion, logger *zap.Logger) (PositionRubric, error) {
	r, err := NewPositionRubric(position)
	if err != nil {
		return PositionRubric{}, err
	}
	for _, row := range rows {
		next, err := r.WithCriterion(row.PillarLetter, row.Level, row.Description)
		if err != nil {
			logger.Warn("skipping stored criterion",
				zap.String("position_id", row.PositionID),
				zap.String("pillar", row.PillarLetter),
				zap.Int("level", row.Level),
				zap.Error(err),
			)
			continue
		}
		r = next
	}
	return r, nil
}

func rowsFromRubric(r PositionRubric, updatedBy string) []Criterion {
	fw, err := FrameworkByCode(r.Framework)
	if err != nil {
		return nil
	}
	rows := make([]Criterion, 0, len(fw.pillars)*NumLevels)
	for _, p := range fw.pillars {
		for lvl := 1; lvl <= NumLevels; lvl++ {
			text := r.Text(p.Letter, lvl)
			if text == "" {
				continue
			}
			rows = append(rows, Criterion{
				PositionID:   string(r.Position),
				PillarLetter: p.Letter,
				Level:        lvl,
				Framework:    string(r.Framework),
				Description:  text,
				UpdatedBy:    updatedBy,
			})
		}
	}
	return rows
}
