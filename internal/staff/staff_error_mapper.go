package staff

import (
	"errors"
	"strings"

	stafferrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/staff/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stafferrors.ErrStaffNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_staff_email" {
			return stafferrors.ErrStaffAlreadyExists.WithCause(err)
		}
		if pgErr.Code == "22P02" {
			return stafferrors.ErrInvalidStaffID
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_staff_email") {
		return stafferrors.ErrStaffAlreadyExists.WithCause(err)
	}

	return err
}
