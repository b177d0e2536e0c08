package recognition

import (
	"context"
	"database/sql"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=recognition_repo.go -destination=mock/recognition_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// Upsert replaces the winner stored for the same period and framework.
	Upsert(ctx context.Context, w *Winner) error
	Delete(ctx context.Context, kind, key, framework string) error
	FindByPeriod(ctx context.Context, kind, key string) ([]Winner, error)
	FindByKind(ctx context.Context, kind string) ([]Winner, error)
	FindByStaff(ctx context.Context, staffID string) ([]Winner, error)
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

func (r *repository) Upsert(ctx context.Context, w *Winner) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "period_kind"}, {Name: "period_key"}, {Name: "framework"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"period_from", "period_to", "staff_id", "snapshot", "selected_by", "selected_at", "updated_at",
			}),
		}).
		Create(w).Error
}

func (r *repository) Delete(ctx context.Context, kind, key, framework string) error {
	return r.db.WithContext(ctx).
		Where("period_kind = ? AND period_key = ? AND framework = ?", kind, key, framework).
		Delete(&Winner{}).Error
}

func (r *repository) FindByPeriod(ctx context.Context, kind, key string) ([]Winner, error) {
	var rows []Winner
	err := r.db.WithContext(ctx).
		Where("period_kind = ? AND period_key = ?", kind, key).
		Order("framework").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByKind(ctx context.Context, kind string) ([]Winner, error) {
	var rows []Winner
	err := r.db.WithContext(ctx).
		Where("period_kind = ?", kind).
		Order("period_from DESC, framework").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByStaff(ctx context.Context, staffID string) ([]Winner, error) {
	var rows []Winner
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("period_from DESC, period_kind, framework").
		Find(&rows).Error
	return rows, err
}
