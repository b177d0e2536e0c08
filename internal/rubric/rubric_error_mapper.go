package rubric

import (
	"errors"

	rubricerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rubricerrors.ErrRubricNotFound
	}
	return err
}
