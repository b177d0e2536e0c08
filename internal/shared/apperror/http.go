package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the flattened shape written into the response envelope.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// detailer is implemented by typed domain errors that carry a structured payload
// (which pillar failed, which pillars are missing).
type detailer interface {
	Details() any
}

// ToHTTP converts any error into an HTTPError. Unknown errors become a generic 500
// so internal messages never leak to clients.
func ToHTTP(err error) HTTPError {
	var details any
	var d detailer
	if errors.As(err, &d) {
		details = d.Details()
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "Internal server error",
	}
}
