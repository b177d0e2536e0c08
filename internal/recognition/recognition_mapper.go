package recognition

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func mapPeriod(p Period) PeriodResponse {
	return PeriodResponse{
		Kind:  string(p.Kind),
		Key:   p.Key,
		Label: p.Label(),
		From:  p.From.Format(dateLayout),
		To:    p.To.Format(dateLayout),
	}
}

func toWinnerRecord(p Period, snap WinnerSnapshot, selectedBy string, at time.Time) (*Winner, error) {
	staffID, err := uuid.Parse(snap.StaffID)
	if err != nil {
		return nil, fmt.Errorf("winner staff id: %w", err)
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal winner snapshot: %w", err)
	}
	return &Winner{
		ID:         uuid.New(),
		PeriodKind: string(p.Kind),
		PeriodKey:  p.Key,
		Framework:  snap.Framework,
		PeriodFrom: p.From,
		PeriodTo:   p.To,
		StaffID:    staffID,
		Snapshot:   datatypes.JSON(raw),
		SelectedBy: selectedBy,
		SelectedAt: at,
		UpdatedAt:  at,
	}, nil
}

func snapshotOf(w Winner) (WinnerSnapshot, error) {
	var snap WinnerSnapshot
	if err := json.Unmarshal(w.Snapshot, &snap); err != nil {
		return WinnerSnapshot{}, fmt.Errorf("decode winner snapshot %s/%s/%s: %w", w.PeriodKind, w.PeriodKey, w.Framework, err)
	}
	return snap, nil
}

func mapWinnerToResponse(p Period, snap WinnerSnapshot, w *Winner) WinnerResponse {
	resp := WinnerResponse{
		Period:         mapPeriod(p),
		Framework:      snap.Framework,
		StaffID:        snap.StaffID,
		StaffName:      snap.StaffName,
		PositionID:     snap.PositionID,
		EvaluationID:   snap.EvaluationID,
		EvaluationDate: snap.EvaluationDate,
		Score:          snap.Score.StringFixed(2),
		MaxScore:       snap.MaxScore,
		Justification:  snap.Justification,
	}
	if w != nil {
		resp.SelectedBy = w.SelectedBy
		resp.SelectedAt = w.SelectedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// mapPeriodWinners always lists every framework in catalog order.
func mapPeriodWinners(p Period, snaps map[rubric.FrameworkCode]*WinnerSnapshot, rows map[rubric.FrameworkCode]*Winner) PeriodWinnersResponse {
	resp := PeriodWinnersResponse{Period: mapPeriod(p)}
	for _, fw := range rubric.Frameworks() {
		row := FrameworkWinnerRow{Framework: string(fw.Code())}
		if snap := snaps[fw.Code()]; snap != nil {
			w := mapWinnerToResponse(p, *snap, rows[fw.Code()])
			row.Winner = &w
		}
		resp.Winners = append(resp.Winners, row)
	}
	return resp
}

func mapTrend(staffID string, points []TrendPoint) TrendResponse {
	resp := TrendResponse{StaffID: staffID, Points: make([]TrendPointResponse, 0, len(points))}
	for _, pt := range points {
		resp.Points = append(resp.Points, TrendPointResponse{
			Date:         pt.Date.Format(dateLayout),
			EvaluationID: pt.EvaluationID,
			OverallScore: pt.OverallScore.StringFixed(2),
		})
	}
	return resp
}

func mapAverages(avgs []PillarAverage) []PillarAverageResponse {
	out := make([]PillarAverageResponse, 0, len(avgs))
	for _, a := range avgs {
		out = append(out, PillarAverageResponse{Letter: a.Letter, Name: a.Name, Average: a.Average.StringFixed(2)})
	}
	return out
}

func decimalString(d decimal.Decimal) string { return d.StringFixed(2) }
