package recognitionerrors

import (
	"net/http"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"
)

var (
	ErrUnknownPeriodKind = apperror.New(
		apperror.CodeInvalidInput,
		"Period kind must be one of weekly, monthly, quarterly",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodKey = apperror.New(
		apperror.CodeInvalidInput,
		"Period key does not match the period kind",
		http.StatusBadRequest,
	)
	ErrEmptyStaffSet = apperror.New(
		apperror.CodeInvalidInput,
		"Staff set is empty but evaluations were supplied",
		http.StatusBadRequest,
	)
	ErrWinnerNotInStaffSet = apperror.New(
		apperror.CodeInvalidInput,
		"Selected staff member is missing from the staff set",
		http.StatusBadRequest,
	)
	ErrMixedFrameworks = apperror.New(
		apperror.CodeInvalidInput,
		"Evaluations from different frameworks cannot be averaged together",
		http.StatusBadRequest,
	)
	ErrWinnerNotFound = apperror.New(
		apperror.CodeNotFound,
		"No recognition has been recorded for this period",
		http.StatusNotFound,
	)
	ErrWinnerConflict = apperror.New(
		apperror.CodeConflict,
		"Recognition for this period was written concurrently, retry the recompute",
		http.StatusConflict,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from must not be after to",
		http.StatusBadRequest,
	)
)
