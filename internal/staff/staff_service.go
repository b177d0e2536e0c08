package staff

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rbac"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/contextutil"
	stafferrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/staff/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DirectoryKeyPrefix = "staff:directory:"

const directoryAll = "all"

// GetDirectoryKey returns the cache key for a supervisor's directory.
// An empty supervisorID addresses the full directory.
func GetDirectoryKey(supervisorID string) string {
	if supervisorID == "" {
		return DirectoryKeyPrefix + directoryAll
	}
	return DirectoryKeyPrefix + supervisorID
}

//go:generate mockgen -source=staff_service.go -destination=mock/staff_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)
	GetDirectory(ctx context.Context) ([]StaffResponse, error)
	LoadStaffDirectory(ctx context.Context, supervisorID string) ([]StaffResponse, error)
	GetByID(ctx context.Context, id string) (StaffResponse, error)
	Update(ctx context.Context, id string, req UpdateStaffRequest) (StaffResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	actor := rbac.ActorFromContext(ctx)
	s.logger.Debug("create staff requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actor.ID),
		zap.String("position_id", req.PositionID),
		zap.String("email", req.Email),
	)

	if _, err := rubric.PositionByID(rubric.PositionID(req.PositionID)); err != nil {
		s.logger.Warn("create staff unknown position", zap.String("position_id", req.PositionID))
		return StaffResponse{}, err
	}

	// Supervisors add staff to their own directory by default.
	if req.SupervisorID == "" && !actor.IsAdmin() {
		req.SupervisorID = actor.ID
	}
	if !rbac.CanManageStaff(actor, req.SupervisorID) {
		s.logger.Warn("create staff forbidden",
			zap.String("actor_id", actor.ID),
			zap.String("supervisor_id", req.SupervisorID),
		)
		return StaffResponse{}, apperror.ErrForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create staff begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return StaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := s.checkSupervisor(ctx, qtx, "", req.SupervisorID); err != nil {
		return StaffResponse{}, err
	}

	member := &Staff{
		ID:           uuid.New(),
		FullName:     req.FullName,
		Email:        req.Email,
		PositionID:   req.PositionID,
		SupervisorID: uuidPtr(req.SupervisorID),
	}

	if err := qtx.Create(ctx, member); err != nil {
		s.logger.Error("create staff persist failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return StaffResponse{}, err
	}

	s.invalidateDirectory(ctx, req.SupervisorID)

	s.logger.Info("create staff success",
		zap.String("request_id", rid),
		zap.String("staff_id", member.ID.String()),
	)
	return mapToResponse(*member), nil
}

// GetDirectory returns the full directory for admins and the caller's own
// direct reports for everyone else.
func (s *service) GetDirectory(ctx context.Context) ([]StaffResponse, error) {
	actor := rbac.ActorFromContext(ctx)
	if actor.IsAdmin() {
		return s.LoadStaffDirectory(ctx, "")
	}
	return s.LoadStaffDirectory(ctx, actor.ID)
}

func (s *service) LoadStaffDirectory(ctx context.Context, supervisorID string) ([]StaffResponse, error) {
	cacheKey := GetDirectoryKey(supervisorID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []StaffResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		var (
			rows []Staff
			err  error
		)
		if supervisorID == "" {
			rows, err = s.repo.FindAll(ctx)
		} else {
			rows, err = s.repo.FindBySupervisor(ctx, supervisorID)
		}
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(rows)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, time.Hour)
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("load staff directory failed", zap.String("supervisor_id", supervisorID), zap.Error(err))
		return nil, err
	}

	return v.([]StaffResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (StaffResponse, error) {
	actor := rbac.ActorFromContext(ctx)
	s.logger.Debug("get staff by id requested", zap.String("staff_id", id))

	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get staff by id failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	if actor.ID != id && !rbac.CanManageStaff(actor, uuidToString(member.SupervisorID)) {
		return StaffResponse{}, apperror.ErrForbidden
	}

	return mapToResponse(*member), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateStaffRequest) (StaffResponse, error) {
	actor := rbac.ActorFromContext(ctx)
	s.logger.Debug("update staff requested",
		zap.String("staff_id", id),
		zap.String("position_id", req.PositionID),
	)

	if _, err := rubric.PositionByID(rubric.PositionID(req.PositionID)); err != nil {
		s.logger.Warn("update staff unknown position", zap.String("position_id", req.PositionID))
		return StaffResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update staff begin tx failed", zap.Error(err))
		return StaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	member, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update staff fetch existing failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	previousSupervisor := uuidToString(member.SupervisorID)
	if !rbac.CanManageStaff(actor, previousSupervisor) || !rbac.CanManageStaff(actor, req.SupervisorID) {
		s.logger.Warn("update staff forbidden", zap.String("actor_id", actor.ID), zap.String("staff_id", id))
		return StaffResponse{}, apperror.ErrForbidden
	}
	if err := s.checkSupervisor(ctx, qtx, id, req.SupervisorID); err != nil {
		return StaffResponse{}, err
	}

	member.FullName = req.FullName
	member.Email = req.Email
	member.PositionID = req.PositionID
	member.SupervisorID = uuidPtr(req.SupervisorID)

	if err := qtx.Update(ctx, member); err != nil {
		s.logger.Error("update staff persist failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update staff commit failed", zap.Error(err))
		return StaffResponse{}, err
	}

	s.invalidateDirectory(ctx, previousSupervisor, req.SupervisorID)

	s.logger.Info("update staff success", zap.String("staff_id", id))
	return mapToResponse(*member), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	actor := rbac.ActorFromContext(ctx)
	s.logger.Debug("delete staff requested", zap.String("staff_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete staff begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	member, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("delete staff fetch existing failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	supervisorID := uuidToString(member.SupervisorID)
	if !rbac.CanManageStaff(actor, supervisorID) {
		s.logger.Warn("delete staff forbidden", zap.String("actor_id", actor.ID), zap.String("staff_id", id))
		return apperror.ErrForbidden
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete staff failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete staff commit failed", zap.Error(err))
		return err
	}

	s.invalidateDirectory(ctx, supervisorID)

	s.logger.Info("delete staff success", zap.String("staff_id", id))
	return nil
}

func (s *service) checkSupervisor(ctx context.Context, qtx Repository, staffID, supervisorID string) error {
	if supervisorID == "" {
		return nil
	}
	if supervisorID == staffID {
		return stafferrors.ErrSelfSupervision
	}
	if _, err := qtx.FindByID(ctx, supervisorID); err != nil {
		if errors.Is(mapRepositoryError(err), stafferrors.ErrStaffNotFound) {
			s.logger.Warn("supervisor not found", zap.String("supervisor_id", supervisorID))
			return stafferrors.ErrSupervisorNotFound
		}
		s.logger.Error("supervisor lookup failed", zap.Error(err))
		return err
	}
	return nil
}

// invalidateDirectory drops the full directory and every touched supervisor directory.
func (s *service) invalidateDirectory(ctx context.Context, supervisorIDs ...string) {
	if s.rdb == nil {
		return
	}
	keys := []string{GetDirectoryKey("")}
	for _, id := range supervisorIDs {
		if id != "" {
			keys = append(keys, GetDirectoryKey(id))
		}
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("failed to invalidate staff directory cache",
			zap.Error(err),
			zap.Strings("keys", keys),
		)
	}
}
