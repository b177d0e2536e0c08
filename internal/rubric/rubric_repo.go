package rubric

import (
	"context"
	"database/sql"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=rubric_repo.go -destination=mock/rubric_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByPosition(ctx context.Context, positionID string) ([]Criterion, error)
	FindAll(ctx context.Context) ([]Criterion, error)
	Upsert(ctx context.Context, criteria []Criterion) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.GormTx(r.db, tx)}
}

func (r *repository) FindByPosition(ctx context.Context, positionID string) ([]Criterion, error) {
	var rows []Criterion
	err := r.db.WithContext(ctx).
		Where("position_id = ?", positionID).
		Order("pillar_letter, level").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context) ([]Criterion, error) {
	var rows []Criterion
	err := r.db.WithContext(ctx).
		Order("position_id, pillar_letter, level").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Upsert(ctx context.Context, criteria []Criterion) error {
	if len(criteria) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "position_id"}, {Name: "pillar_letter"}, {Name: "level"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"framework", "description", "updated_by", "updated_at",
			}),
		}).
		CreateInBatches(criteria, 100).Error
}
