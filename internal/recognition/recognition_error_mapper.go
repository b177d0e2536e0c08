package recognition

import (
	"errors"

	recognitionerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition/errors"
	stafferrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/staff/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return recognitionerrors.ErrWinnerNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return recognitionerrors.ErrWinnerConflict.WithCause(err)
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
