package rubric

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/contextutil"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const RubricKeyPrefix = "rubric:position:"

const rubricCacheTTL = time.Hour

func GetRubricKey(positionID PositionID) string {
	return RubricKeyPrefix + string(positionID)
}

//go:generate mockgen -source=rubric_service.go -destination=mock/rubric_service_mock.go -package=mock
type Service interface {
	ListPositions(ctx context.Context) []PositionResponse
	GetRubric(ctx context.Context, positionID string) (RubricResponse, error)
	LoadPositionRubric(ctx context.Context, positionID PositionID) (PositionRubric, error)
	Completeness(ctx context.Context) (CompletenessResponse, error)
	UpdateCriterion(ctx context.Context, positionID string, req UpdateCriterionRequest) (RubricResponse, error)
	Seed(ctx context.Context, catalog *Catalog) (int, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	metrics *metrics.Manager
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, m *metrics.Manager, logger ...*zap.Logger) Service {
	l := zap.L().Named("rubric.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rubric.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		metrics: m,
		logger:  l,
	}
}

func (s *service) ListPositions(ctx context.Context) []PositionResponse {
	res := make([]PositionResponse, 0, len(positions))
	for _, p := range positions {
		res = append(res, PositionResponse{ID: string(p.ID), Name: p.Name, Framework: string(p.Framework)})
	}
	return res
}

func (s *service) GetRubric(ctx context.Context, positionID string) (RubricResponse, error) {
	s.logger.Debug("get rubric requested", zap.String("position_id", positionID))

	r, err := s.LoadPositionRubric(ctx, PositionID(positionID))
	if err != nil {
		return RubricResponse{}, err
	}
	return mapToResponse(r), nil
}

// LoadPositionRubric is the read-through path used by the evaluation module.
func (s *service) LoadPositionRubric(ctx context.Context, positionID PositionID) (PositionRubric, error) {
	if _, err := PositionByID(positionID); err != nil {
		s.logger.Warn("load rubric unknown position", zap.String("position_id", string(positionID)))
		return PositionRubric{}, err
	}

	cacheKey := GetRubricKey(positionID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var r PositionRubric
			if json.Unmarshal([]byte(cached), &r) == nil {
				return r, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindByPosition(ctx, string(positionID))
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		r, err := rubricFromRows(positionID, rows, s.logger)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(r); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, rubricCacheTTL)
			}
		}
		return r, nil
	})
	if err != nil {
		s.logger.Error("load rubric failed", zap.String("position_id", string(positionID)), zap.Error(err))
		return PositionRubric{}, err
	}

	return v.(PositionRubric), nil
}

func (s *service) Completeness(ctx context.Context) (CompletenessResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("completeness load failed", zap.Error(err))
		return CompletenessResponse{}, mapRepositoryError(err)
	}

	byPosition := make(map[PositionID][]Criterion)
	for _, row := range rows {
		id := PositionID(row.PositionID)
		byPosition[id] = append(byPosition[id], row)
	}

	rubrics := make([]PositionRubric, 0, len(byPosition))
	for id, group := range byPosition {
		r, err := rubricFromRows(id, group, s.logger)
		if err != nil {
			s.logger.Warn("completeness unknown position in store", zap.String("position_id", string(id)))
			continue
		}
		rubrics = append(rubrics, r)
	}

	missing := NewCatalog(rubrics...).Validate()
	if s.metrics != nil {
		s.metrics.SetRubricCriteriaMissing(len(missing))
	}
	if len(missing) > 0 {
		s.logger.Warn("rubric catalog incomplete", zap.Int("missing", len(missing)))
	}

	if missing == nil {
		missing = []MissingCriterion{}
	}
	return CompletenessResponse{Complete: len(missing) == 0, Missing: missing}, nil
}

func (s *service) UpdateCriterion(ctx context.Context, positionID string, req UpdateCriterionRequest) (RubricResponse, error) {
	actorID := contextutil.GetActorID(ctx)
	s.logger.Debug("update criterion requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("position_id", positionID),
		zap.String("pillar", req.Pillar),
		zap.Int("level", req.Level),
	)

	current, err := s.LoadPositionRubric(ctx, PositionID(positionID))
	if err != nil {
		return RubricResponse{}, err
	}

	updated, err := current.WithCriterion(req.Pillar, req.Level, req.Description)
	if err != nil {
		s.logger.Warn("update criterion rejected", zap.Error(err))
		return RubricResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update criterion begin tx failed", zap.Error(err))
		return RubricResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Upsert(ctx, []Criterion{{
		PositionID:   positionID,
		PillarLetter: req.Pillar,
		Level:        req.Level,
		Framework:    string(updated.Framework),
		Description:  updated.Text(req.Pillar, req.Level),
		UpdatedBy:    actorID,
	}}); err != nil {
		s.logger.Error("update criterion persist failed", zap.Error(err))
		return RubricResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update criterion commit failed", zap.Error(err))
		return RubricResponse{}, err
	}

	s.invalidate(ctx, PositionID(positionID))

	s.logger.Info("update criterion success",
		zap.String("position_id", positionID),
		zap.String("pillar", req.Pillar),
		zap.Int("level", req.Level),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(updated), nil
}

// Seed upserts every criterion of catalog and returns the number of rows written.
func (s *service) Seed(ctx context.Context, catalog *Catalog) (int, error) {
	actorID := contextutil.GetActorID(ctx)
	if actorID == "" {
		actorID = "seed"
	}

	var rows []Criterion
	for _, r := range catalog.Rubrics() {
		rows = append(rows, rowsFromRubric(r, actorID)...)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("seed begin tx failed", zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Upsert(ctx, rows); err != nil {
		s.logger.Error("seed persist failed", zap.Error(err))
		return 0, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("seed commit failed", zap.Error(err))
		return 0, err
	}

	for _, r := range catalog.Rubrics() {
		s.invalidate(ctx, r.Position)
	}

	s.logger.Info("rubric seed applied", zap.Int("rows", len(rows)))
	return len(rows), nil
}

func (s *service) invalidate(ctx context.Context, positionID PositionID) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetRubricKey(positionID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate rubric cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}
