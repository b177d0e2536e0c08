package stafferrors

import (
	"net/http"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"
)

var (
	ErrStaffNotFound = apperror.New(
		apperror.CodeNotFound,
		"Staff member not found",
		http.StatusNotFound,
	)
	ErrSupervisorNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Supervisor not found",
		http.StatusBadRequest,
	)
	ErrSelfSupervision = apperror.New(
		apperror.CodeInvalidInput,
		"Staff member cannot supervise themselves",
		http.StatusBadRequest,
	)
	ErrStaffAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Staff member with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidStaffID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid staff ID",
		http.StatusBadRequest,
	)
)
