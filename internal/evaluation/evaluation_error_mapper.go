package evaluation

import (
	"errors"

	evaluationerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/evaluation/errors"
	stafferrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/staff/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return evaluationerrors.ErrEvaluationNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return evaluationerrors.ErrEvaluationConflict.WithCause(err)
		case "22P02":
			return evaluationerrors.ErrEvaluationNotFound
		}
	}

	return err
}

func mapStaffError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stafferrors.ErrStaffNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return stafferrors.ErrInvalidStaffID
	}
	return err
}
