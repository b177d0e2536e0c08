package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type detailedErr struct{ field string }

func (e *detailedErr) Error() string { return "bad " + e.field }
func (e *detailedErr) Details() any  { return map[string]string{"field": e.field} }
func (e *detailedErr) Unwrap() error { return apperror.ErrInvalidInput }

func TestToHTTP(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		httpErr := apperror.ToHTTP(apperror.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, apperror.CodeNotFound, httpErr.Code)
		assert.Nil(t, httpErr.Details)
	})

	t.Run("wrapped app error", func(t *testing.T) {
		err := fmt.Errorf("load staff: %w", apperror.ErrForbidden)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusForbidden, httpErr.Status)
	})

	t.Run("typed error with details", func(t *testing.T) {
		httpErr := apperror.ToHTTP(&detailedErr{field: "score"})
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, map[string]string{"field": "score"}, httpErr.Details)
	})

	t.Run("unknown error hides message", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection reset"))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, "Internal server error", httpErr.Message)
	})
}

func TestWrap(t *testing.T) {
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeConflict, "x", http.StatusConflict))

	cause := errors.New("duplicate key")
	err := apperror.Wrap(cause, apperror.CodeConflict, "Already exists", http.StatusConflict)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Already exists: duplicate key", err.Error())
}

func TestWithCause(t *testing.T) {
	sentinel := apperror.New(apperror.CodeConflict, "Winner already recorded", http.StatusConflict)
	cause := errors.New("duplicate key value violates unique constraint")

	err := sentinel.WithCause(cause)

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, sentinel.Err)
	assert.False(t, errors.Is(err, apperror.ErrNotFound))
	assert.Equal(t, http.StatusConflict, apperror.ToHTTP(fmt.Errorf("recompute: %w", err)).Status)
}

type sample struct {
	StaffID string `json:"staff_id" validate:"required"`
	Kind    string `json:"kind" validate:"oneof=weekly monthly"`
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	err := v.Struct(sample{Kind: "weekly"})
	mapped := apperror.MapValidationError(err)
	var appErr *apperror.AppError
	assert.True(t, errors.As(mapped, &appErr))
	assert.Equal(t, "Staff Id is required", appErr.Message)

	err = v.Struct(sample{StaffID: "x", Kind: "daily"})
	mapped = apperror.MapValidationError(err)
	assert.True(t, errors.As(mapped, &appErr))
	assert.Contains(t, appErr.Message, "must be one of")

	mapped = apperror.MapValidationError(errors.New("EOF"))
	assert.True(t, errors.As(mapped, &appErr))
	assert.Equal(t, "Invalid input", appErr.Message)
}
