package rubricerrors

import (
	"net/http"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"
)

var (
	ErrPositionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Position not found",
		http.StatusNotFound,
	)
	ErrRubricNotFound = apperror.New(
		apperror.CodeNotFound,
		"Rubric not found for position",
		http.StatusNotFound,
	)
	ErrUnknownFramework = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown framework",
		http.StatusBadRequest,
	)
	ErrScoreOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"Score is outside the framework range",
		http.StatusBadRequest,
	)
	ErrUnknownPillar = apperror.New(
		apperror.CodeInvalidInput,
		"Pillar does not belong to the position framework",
		http.StatusBadRequest,
	)
	ErrInvalidLevel = apperror.New(
		apperror.CodeInvalidInput,
		"Level must be between 1 and 4",
		http.StatusBadRequest,
	)
	ErrEmptyCriterion = apperror.New(
		apperror.CodeInvalidInput,
		"Criterion text must not be empty",
		http.StatusBadRequest,
	)
	ErrInvalidSeed = apperror.New(
		apperror.CodeInvalidInput,
		"Rubric seed is invalid",
		http.StatusBadRequest,
	)
)
