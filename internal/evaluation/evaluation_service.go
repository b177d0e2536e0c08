package evaluation

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	evaluationerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/evaluation/errors"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/events"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/messaging/kafka"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rbac"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/contextutil"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/metrics"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/staff"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=evaluation_service.go -destination=mock/evaluation_service_mock.go -package=mock
type Service interface {
	Start(ctx context.Context, staffID string) (DraftResponse, error)
	// Submit reports whether a new evaluation was stored; a replay of an
	// identical submission returns the stored one with false.
	Submit(ctx context.Context, req SubmitEvaluationRequest) (EvaluationResponse, bool, error)
	GetByID(ctx context.Context, id string) (EvaluationResponse, error)
	List(ctx context.Context, q ListQuery) ([]EvaluationResponse, error)
	LoadEvaluations(ctx context.Context, f Filter) ([]Evaluation, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	staffRepo staff.Repository
	rubrics   rubric.Service
	outbox    kafka.OutboxRepository
	metrics   *metrics.Manager
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	staffRepo staff.Repository,
	rubrics rubric.Service,
	outboxRepo kafka.OutboxRepository,
	m *metrics.Manager,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("evaluation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("evaluation.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		staffRepo: staffRepo,
		rubrics:   rubrics,
		outbox:    outboxRepo,
		metrics:   m,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Start(ctx context.Context, staffID string) (DraftResponse, error) {
	actor := rbac.ActorFromContext(ctx)
	s.logger.Debug("start evaluation requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("staff_id", staffID),
		zap.String("evaluator_id", actor.ID),
	)

	member, err := s.loadEvaluable(ctx, actor, staffID)
	if err != nil {
		return DraftResponse{}, err
	}

	r, err := s.rubrics.LoadPositionRubric(ctx, rubric.PositionID(member.PositionID))
	if err != nil {
		s.logger.Error("start evaluation load rubric failed", zap.String("position_id", member.PositionID), zap.Error(err))
		return DraftResponse{}, err
	}

	draft, err := StartEvaluation(staffID, actor.ID, r)
	if err != nil {
		return DraftResponse{}, err
	}

	return mapDraftToResponse(draft, member.FullName), nil
}

func (s *service) Submit(ctx context.Context, req SubmitEvaluationRequest) (EvaluationResponse, bool, error) {
	rid := contextutil.GetRequestID(ctx)
	actor := rbac.ActorFromContext(ctx)
	s.logger.Debug("submit evaluation requested",
		zap.String("request_id", rid),
		zap.String("staff_id", req.StaffID),
		zap.String("evaluator_id", actor.ID),
		zap.String("evaluation_date", req.EvaluationDate),
	)

	member, err := s.loadEvaluable(ctx, actor, req.StaffID)
	if err != nil {
		return EvaluationResponse{}, false, err
	}

	fw, err := rubric.FrameworkFor(rubric.PositionID(member.PositionID))
	if err != nil {
		s.logger.Error("submit evaluation staff has unknown position", zap.String("position_id", member.PositionID))
		return EvaluationResponse{}, false, err
	}

	e, err := s.build(member, actor.ID, fw, req)
	if err != nil {
		s.recordResult(fw, err)
		s.logger.Warn("submit evaluation rejected", zap.String("request_id", rid), zap.Error(err))
		return EvaluationResponse{}, false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit evaluation begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EvaluationResponse{}, false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	created, err := qtx.Insert(ctx, toRecord(e))
	if err != nil {
		s.logger.Error("submit evaluation persist failed", zap.Error(err))
		return EvaluationResponse{}, false, mapRepositoryError(err)
	}

	if !created {
		stored, err := s.loadExisting(ctx, qtx, e.ID())
		if err != nil {
			return EvaluationResponse{}, false, err
		}
		if !stored.SameContent(e) {
			s.recordResult(fw, evaluationerrors.ErrEvaluationConflict)
			s.logger.Warn("submit evaluation conflicts with stored record", zap.String("evaluation_id", e.ID()))
			return EvaluationResponse{}, false, evaluationerrors.ErrEvaluationConflict
		}
		s.recordResult(fw, nil, metrics.ResultDuplicate)
		s.logger.Info("submit evaluation replayed", zap.String("request_id", rid), zap.String("evaluation_id", e.ID()))
		return mapToResponse(stored), false, nil
	}

	if s.outbox != nil {
		event := events.EvaluationSubmittedEvent{
			EventType:      events.EvaluationSubmittedType,
			RequestID:      rid,
			EvaluationID:   e.ID(),
			StaffID:        e.StaffID(),
			EvaluatorID:    e.EvaluatorID(),
			Framework:      string(fw.Code()),
			EvaluationDate: e.EvaluationDate().Format(DateLayout),
			OverallScore:   e.OverallScore().StringFixed(2),
			OccurredAt:     s.now().UTC(),
		}
		outboxEvent, err := kafka.NewOutboxEvent(rid, "evaluation", e.ID(), event.EventType, events.EvaluationSubmittedTopic, event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EvaluationResponse{}, false, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			s.logger.Error("submit evaluation outbox persist failed",
				zap.String("evaluation_id", e.ID()),
				zap.Error(err),
			)
			return EvaluationResponse{}, false, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EvaluationResponse{}, false, err
	}

	s.recordResult(fw, nil, metrics.ResultCreated)
	s.logger.Info("submit evaluation success",
		zap.String("request_id", rid),
		zap.String("evaluation_id", e.ID()),
		zap.String("overall_score", e.OverallScore().StringFixed(2)),
	)
	return mapToResponse(e), true, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EvaluationResponse, error) {
	actor := rbac.ActorFromContext(ctx)
	s.logger.Debug("get evaluation by id requested", zap.String("evaluation_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return EvaluationResponse{}, evaluationerrors.ErrEvaluationNotFound
	}

	e, err := s.loadExisting(ctx, s.repo, id)
	if err != nil {
		return EvaluationResponse{}, err
	}

	if !actor.IsAdmin() && actor.ID != e.StaffID() && actor.ID != e.EvaluatorID() {
		member, err := s.staffRepo.FindByID(ctx, e.StaffID())
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get evaluation staff lookup failed", zap.Error(err))
			return EvaluationResponse{}, mapStaffError(err)
		}
		supervisorID := ""
		if member != nil && member.SupervisorID != nil {
			supervisorID = member.SupervisorID.String()
		}
		if !rbac.CanViewEvaluation(actor, e.StaffID(), e.EvaluatorID(), supervisorID) {
			return EvaluationResponse{}, apperror.ErrForbidden
		}
	}

	return mapToResponse(e), nil
}

// List applies the caller's visibility: admins see everything, everyone else
// sees their own evaluations and those they wrote.
func (s *service) List(ctx context.Context, q ListQuery) ([]EvaluationResponse, error) {
	actor := rbac.ActorFromContext(ctx)
	s.logger.Debug("list evaluations requested",
		zap.String("staff_id", q.StaffID),
		zap.String("evaluator_id", q.EvaluatorID),
		zap.String("from", q.From),
		zap.String("to", q.To),
	)

	f, err := q.filter()
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		switch {
		case f.EvaluatorID == actor.ID, f.StaffID == actor.ID:
		case f.StaffID != "":
			member, err := s.staffRepo.FindByID(ctx, f.StaffID)
			if err != nil {
				return nil, mapStaffError(err)
			}
			if !rbac.CanManageStaff(actor, uuidToString(member.SupervisorID)) {
				return nil, apperror.ErrForbidden
			}
		default:
			f.EvaluatorID = actor.ID
		}
	}

	evals, err := s.LoadEvaluations(ctx, f)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(evals), nil
}

// LoadEvaluations is the read path shared with the recognition engine.
// Rows that no longer validate are skipped and logged rather than failing
// the whole load.
func (s *service) LoadEvaluations(ctx context.Context, f Filter) ([]Evaluation, error) {
	rows, err := s.repo.Find(ctx, f)
	if err != nil {
		s.logger.Error("load evaluations failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	evals := make([]Evaluation, 0, len(rows))
	for _, row := range rows {
		e, err := FromRecord(row)
		if err != nil {
			s.logger.Warn("skipping invalid stored evaluation",
				zap.String("evaluation_id", row.ID.String()),
				zap.Error(err),
			)
			continue
		}
		evals = append(evals, e)
	}
	return evals, nil
}

func (s *service) loadEvaluable(ctx context.Context, actor rbac.Actor, staffID string) (*staff.Staff, error) {
	if actor.ID == staffID {
		return nil, evaluationerrors.ErrSelfEvaluation
	}

	member, err := s.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		s.logger.Warn("evaluation staff lookup failed", zap.String("staff_id", staffID), zap.Error(err))
		return nil, mapStaffError(err)
	}

	if !rbac.CanEvaluate(actor, staffID, uuidToString(member.SupervisorID)) {
		s.logger.Warn("evaluation forbidden",
			zap.String("actor_id", actor.ID),
			zap.String("staff_id", staffID),
		)
		return nil, apperror.ErrForbidden
	}
	return member, nil
}

// build runs the whole draft lifecycle for a submission. Nothing is stored
// unless every pillar validates.
func (s *service) build(member *staff.Staff, evaluatorID string, fw rubric.Framework, req SubmitEvaluationRequest) (Evaluation, error) {
	if _, err := uuid.Parse(evaluatorID); err != nil {
		return Evaluation{}, &evaluationerrors.ValidationError{Field: evaluationerrors.FieldEvaluatorID, Reason: "must be a uuid"}
	}
	if req.ID != "" {
		if _, err := uuid.Parse(req.ID); err != nil {
			return Evaluation{}, &evaluationerrors.ValidationError{Field: evaluationerrors.FieldID, Reason: "must be a uuid"}
		}
	}

	draft, err := newDraft(member.ID.String(), evaluatorID, rubric.PositionID(member.PositionID), fw)
	if err != nil {
		return Evaluation{}, err
	}

	seen := make(map[string]bool, len(req.Scores))
	for _, ps := range req.Scores {
		letter := strings.ToUpper(strings.TrimSpace(ps.Pillar))
		if seen[letter] {
			return Evaluation{}, &evaluationerrors.ValidationError{
				Pillar: letter,
				Field:  evaluationerrors.FieldPillar,
				Reason: "is scored more than once",
			}
		}
		seen[letter] = true
		if err := draft.SetPillarScore(letter, ps.Score, ps.Comment); err != nil {
			return Evaluation{}, err
		}
	}

	date, err := time.Parse(DateLayout, req.EvaluationDate)
	if err != nil {
		return Evaluation{}, &evaluationerrors.ValidationError{
			Field:  evaluationerrors.FieldEvaluationDate,
			Reason: "must use format YYYY-MM-DD",
		}
	}

	id := req.ID
	if id == "" {
		// Check completeness first so the id is derived from a full set of scores.
		if missing := draft.Missing(); len(missing) > 0 {
			return Evaluation{}, &evaluationerrors.IncompleteEvaluationError{Missing: missing}
		}
		id = DeterministicID(draft.StaffID(), evaluatorID, date, draft.Slots())
	}
	return draft.Finalize(id, date)
}

func (s *service) loadExisting(ctx context.Context, repo Repository, id string) (Evaluation, error) {
	rec, err := repo.FindByID(ctx, id)
	if err != nil {
		mapped := mapRepositoryError(err)
		if !errors.Is(mapped, evaluationerrors.ErrEvaluationNotFound) {
			s.logger.Error("load evaluation failed", zap.String("evaluation_id", id), zap.Error(err))
		}
		return Evaluation{}, mapped
	}
	e, err := FromRecord(*rec)
	if err != nil {
		s.logger.Error("stored evaluation no longer validates", zap.String("evaluation_id", id), zap.Error(err))
		return Evaluation{}, err
	}
	return e, nil
}

func (s *service) recordResult(fw rubric.Framework, err error, result ...string) {
	if s.metrics == nil {
		return
	}
	label := metrics.ResultRejected
	if len(result) > 0 {
		label = result[0]
	}
	var incomplete *evaluationerrors.IncompleteEvaluationError
	switch {
	case errors.As(err, &incomplete):
		label = metrics.ResultIncomplete
	case errors.Is(err, evaluationerrors.ErrEvaluationConflict):
		label = metrics.ResultConflict
	}
	s.metrics.RecordEvaluation(string(fw.Code()), label)
}

func (q ListQuery) filter() (Filter, error) {
	f := Filter{StaffID: q.StaffID, EvaluatorID: q.EvaluatorID}
	if q.From != "" {
		t, err := time.Parse(DateLayout, q.From)
		if err != nil {
			return Filter{}, apperror.InvalidField("From")
		}
		f.From = t
	}
	if q.To != "" {
		t, err := time.Parse(DateLayout, q.To)
		if err != nil {
			return Filter{}, apperror.InvalidField("To")
		}
		f.To = t
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return Filter{}, evaluationerrors.ErrInvalidDateRange
	}
	return f, nil
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
