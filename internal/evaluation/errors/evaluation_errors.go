package evaluationerrors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"
)

var (
	ErrEvaluationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Evaluation not found",
		http.StatusNotFound,
	)
	ErrInvalidEvaluation = apperror.New(
		apperror.CodeInvalidInput,
		"Evaluation input is invalid",
		http.StatusBadRequest,
	)
	ErrIncomplete = apperror.New(
		apperror.CodeIncompleteEvaluation,
		"Evaluation is missing pillar scores or comments",
		http.StatusUnprocessableEntity,
	)
	ErrEvaluationConflict = apperror.New(
		apperror.CodeConflict,
		"An evaluation with the same id and different content already exists",
		http.StatusConflict,
	)
	ErrSelfEvaluation = apperror.New(
		apperror.CodeForbidden,
		"Staff members cannot evaluate themselves",
		http.StatusForbidden,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from must not be after to",
		http.StatusBadRequest,
	)
)

// Fields named by ValidationError.
const (
	FieldPillar         = "pillar"
	FieldScore          = "score"
	FieldComment        = "comment"
	FieldID             = "id"
	FieldEvaluationDate = "evaluation_date"
	FieldStaffID        = "staff_id"
	FieldEvaluatorID    = "evaluator_id"
)

// ValidationError names the pillar and field that failed so the caller can
// prompt for a precise correction.
type ValidationError struct {
	Pillar string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Pillar == "" {
		return fmt.Sprintf("evaluation: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("evaluation: pillar %s: %s %s", e.Pillar, e.Field, e.Reason)
}

func (e *ValidationError) Details() any {
	d := map[string]string{"field": e.Field, "reason": e.Reason}
	if e.Pillar != "" {
		d["pillar"] = e.Pillar
	}
	return d
}

func (e *ValidationError) Unwrap() error { return ErrInvalidEvaluation }

// MissingPillar is a pillar that lacks a score, a comment or both at finalize time.
type MissingPillar struct {
	Pillar  string `json:"pillar"`
	Score   bool   `json:"missing_score"`
	Comment bool   `json:"missing_comment"`
}

type IncompleteEvaluationError struct {
	Missing []MissingPillar
}

func (e *IncompleteEvaluationError) Error() string {
	return "evaluation: incomplete pillars " + strings.Join(e.Pillars(), ", ")
}

// Pillars returns the missing pillar letters in canonical order.
func (e *IncompleteEvaluationError) Pillars() []string {
	out := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		out[i] = m.Pillar
	}
	return out
}

func (e *IncompleteEvaluationError) Details() any {
	return map[string]any{"missing": e.Missing}
}

func (e *IncompleteEvaluationError) Unwrap() error { return ErrIncomplete }
