package evaluation

import (
	"context"
	"database/sql"
	"time"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter selects evaluations. Zero fields do not constrain; From and To are
// inclusive dates.
type Filter struct {
	StaffID     string
	EvaluatorID string
	Framework   string
	From        time.Time
	To          time.Time
}

//go:generate mockgen -source=evaluation_repo.go -destination=mock/evaluation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// Insert stores rec unless a record with the same id exists. It reports
	// whether a new row was written.
	Insert(ctx context.Context, rec *Record) (bool, error)
	FindByID(ctx context.Context, id string) (*Record, error)
	Find(ctx context.Context, f Filter) ([]Record, error)
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

func (r *repository) Insert(ctx context.Context, rec *Record) (bool, error) {
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	if len(rec.Scores) > 0 {
		if err := r.db.WithContext(ctx).Create(&rec.Scores).Error; err != nil {
			return false, err
		}
	}
	return true, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Preload("Scores", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal") }).
		First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) Find(ctx context.Context, f Filter) ([]Record, error) {
	q := r.db.WithContext(ctx).
		Preload("Scores", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal") })
	if f.StaffID != "" {
		q = q.Where("staff_id = ?", f.StaffID)
	}
	if f.EvaluatorID != "" {
		q = q.Where("evaluator_id = ?", f.EvaluatorID)
	}
	if f.Framework != "" {
		q = q.Where("framework = ?", f.Framework)
	}
	if !f.From.IsZero() {
		q = q.Where("evaluation_date >= ?", f.From.Format(DateLayout))
	}
	if !f.To.IsZero() {
		q = q.Where("evaluation_date <= ?", f.To.Format(DateLayout))
	}

	var rows []Record
	err := q.Order("evaluation_date, id").Find(&rows).Error
	return rows, err
}
