package staff

import (
	"context"
	"database/sql"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=staff_repo.go -destination=mock/staff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Staff) error
	FindAll(ctx context.Context) ([]Staff, error)
	FindBySupervisor(ctx context.Context, supervisorID string) ([]Staff, error)
	FindByID(ctx context.Context, id string) (*Staff, error)
	// FindByIDsUnscoped includes soft-deleted staff so history stays resolvable.
	FindByIDsUnscoped(ctx context.Context, ids []string) ([]Staff, error)
	Update(ctx context.Context, s *Staff) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Staff, error) {
	var rows []Staff
	err := r.db.WithContext(ctx).
		Order("full_name").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindBySupervisor(ctx context.Context, supervisorID string) ([]Staff, error) {
	var rows []Staff
	err := r.db.WithContext(ctx).
		Scopes(SupervisorScope(supervisorID)).
		Order("full_name").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Staff, error) {
	var s Staff
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByIDsUnscoped(ctx context.Context, ids []string) ([]Staff, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []Staff
	err := r.db.WithContext(ctx).
		Unscoped().
		Where("id IN ?", ids).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Staff{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
