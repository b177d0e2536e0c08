package events

import "time"

const EvaluationSubmittedTopic = "hlr.evaluation.submitted.v1"

const EvaluationSubmittedType = "evaluation_submitted"

type EvaluationSubmittedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EvaluationID   string    `json:"evaluation_id"`
	StaffID        string    `json:"staff_id"`
	EvaluatorID    string    `json:"evaluator_id"`
	Framework      string    `json:"framework"`
	EvaluationDate string    `json:"evaluation_date"`
	OverallScore   string    `json:"overall_score"`
	OccurredAt     time.Time `json:"occurred_at"`
}
