package events

import "time"

const RecognitionWinnerSelectedTopic = "hlr.recognition.winner_selected.v1"

const RecognitionWinnerSelectedType = "recognition_winner_selected"

// RecognitionWinnerSelectedEvent is published once per recompute of a period.
// Winners holds at most one entry per framework.
type RecognitionWinnerSelectedEvent struct {
	EventType  string              `json:"event_type"`
	RequestID  string              `json:"request_id,omitempty"`
	PeriodKind string              `json:"period_kind"`
	PeriodKey  string              `json:"period_key"`
	PeriodFrom string              `json:"period_from"`
	PeriodTo   string              `json:"period_to"`
	Winners    []RecognitionWinner `json:"winners"`
	OccurredAt time.Time           `json:"occurred_at"`
}

type RecognitionWinner struct {
	Framework     string `json:"framework"`
	StaffID       string `json:"staff_id"`
	StaffName     string `json:"staff_name"`
	PositionID    string `json:"position_id"`
	Score         string `json:"score"`
	MaxScore      int    `json:"max_score"`
	Justification string `json:"justification"`
}
