package recognition

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/bootstrap"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/evaluation"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/events"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/messaging/kafka"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rbac"
	recognitionerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition/errors"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/contextutil"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/metrics"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/staff"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/summarizer"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const WinnersKeyPrefix = "recognition:winners:"

func GetWinnersKey(kind PeriodKind, key string) string {
	return WinnersKeyPrefix + string(kind) + ":" + key
}

//go:generate mockgen -source=recognition_service.go -destination=mock/recognition_service_mock.go -package=mock
type Service interface {
	Recompute(ctx context.Context, req RecomputeRequest) (PeriodWinnersResponse, error)
	Winners(ctx context.Context, q PeriodQuery) (PeriodWinnersResponse, error)
	ListWinners(ctx context.Context, kind string) ([]WinnerResponse, error)
	StaffWinners(ctx context.Context, staffID string) ([]WinnerResponse, error)
	Trend(ctx context.Context, staffID string, q TrendQuery) (TrendResponse, error)
	PillarAverages(ctx context.Context, q AveragesQuery) (AveragesResponse, error)
	Report(ctx context.Context, q ReportQuery) (ReportResponse, error)
	ReportPDF(ctx context.Context, q PeriodQuery) ([]byte, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	evaluations evaluation.Service
	staffRepo   staff.Repository
	outbox      kafka.OutboxRepository
	narrator    summarizer.Summarizer
	audit       bootstrap.AuditLogger
	metrics     *metrics.Manager
	rdb         *redis.Client
	sf          *singleflight.Group
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	evaluations evaluation.Service,
	staffRepo staff.Repository,
	outboxRepo kafka.OutboxRepository,
	narrator summarizer.Summarizer,
	audit bootstrap.AuditLogger,
	m *metrics.Manager,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("recognition.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recognition.service")
	}
	if narrator == nil {
		narrator = summarizer.Deterministic{}
	}
	return &service{
		db:          db,
		repo:        repo,
		evaluations: evaluations,
		staffRepo:   staffRepo,
		outbox:      outboxRepo,
		narrator:    narrator,
		audit:       audit,
		metrics:     m,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		now:         time.Now,
		logger:      l,
	}
}

// Recompute selects the winners of a period from the evaluations stored now
// and replaces whatever was recorded before. Running it twice over the same
// data stores the same winners.
func (s *service) Recompute(ctx context.Context, req RecomputeRequest) (PeriodWinnersResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	actor := rbac.ActorFromContext(ctx)
	s.logger.Debug("recompute recognition requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actor.ID),
		zap.String("kind", req.Kind),
		zap.String("key", req.Key),
	)

	p, err := s.resolvePeriod(req.Kind, req.Key)
	if err != nil {
		return PeriodWinnersResponse{}, err
	}

	evals, err := s.evaluations.LoadEvaluations(ctx, evaluation.Filter{From: p.From, To: p.To})
	if err != nil {
		return PeriodWinnersResponse{}, err
	}

	refs, err := s.staffRefs(ctx, evals)
	if err != nil {
		return PeriodWinnersResponse{}, err
	}

	snaps := make(map[rubric.FrameworkCode]*WinnerSnapshot)
	for _, fw := range rubric.Frameworks() {
		snap, err := SelectPeriodWinner(p, fw.Code(), evals, refs)
		if err != nil {
			s.logger.Error("select period winner failed",
				zap.String("period", p.Key),
				zap.String("framework", string(fw.Code())),
				zap.Error(err),
			)
			return PeriodWinnersResponse{}, err
		}
		snaps[fw.Code()] = snap
	}

	now := s.now().UTC()
	rows := make(map[rubric.FrameworkCode]*Winner)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("recompute begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PeriodWinnersResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	var published []events.RecognitionWinner
	for _, fw := range rubric.Frameworks() {
		code := fw.Code()
		snap := snaps[code]
		if snap == nil {
			if err := qtx.Delete(ctx, string(p.Kind), p.Key, string(code)); err != nil {
				s.logger.Error("recompute clear stale winner failed", zap.String("framework", string(code)), zap.Error(err))
				return PeriodWinnersResponse{}, mapRepositoryError(err)
			}
			continue
		}

		rec, err := toWinnerRecord(p, *snap, actor.ID, now)
		if err != nil {
			return PeriodWinnersResponse{}, err
		}
		if err := qtx.Upsert(ctx, rec); err != nil {
			s.logger.Error("recompute persist winner failed", zap.String("framework", string(code)), zap.Error(err))
			return PeriodWinnersResponse{}, mapRepositoryError(err)
		}
		rows[code] = rec
		published = append(published, events.RecognitionWinner{
			Framework:     snap.Framework,
			StaffID:       snap.StaffID,
			StaffName:     snap.StaffName,
			PositionID:    snap.PositionID,
			Score:         decimalString(snap.Score),
			MaxScore:      snap.MaxScore,
			Justification: snap.Justification,
		})
	}

	if s.outbox != nil && len(published) > 0 {
		event := events.RecognitionWinnerSelectedEvent{
			EventType:  events.RecognitionWinnerSelectedType,
			RequestID:  rid,
			PeriodKind: string(p.Kind),
			PeriodKey:  p.Key,
			PeriodFrom: p.From.Format(dateLayout),
			PeriodTo:   p.To.Format(dateLayout),
			Winners:    published,
			OccurredAt: now,
		}
		outboxEvent, err := kafka.NewOutboxEvent(rid, "recognition_period", string(p.Kind)+":"+p.Key, event.EventType, events.RecognitionWinnerSelectedTopic, event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return PeriodWinnersResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			s.logger.Error("recompute outbox persist failed", zap.String("period", p.Key), zap.Error(err))
			return PeriodWinnersResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return PeriodWinnersResponse{}, err
	}

	if s.rdb != nil {
		s.rdb.Del(ctx, GetWinnersKey(p.Kind, p.Key))
	}

	if s.metrics != nil {
		s.metrics.RecordRecompute(string(p.Kind))
		for _, w := range published {
			s.metrics.RecordWinner(w.Framework)
		}
	}

	if s.audit != nil {
		meta := map[string]any{"kind": string(p.Kind), "key": p.Key, "evaluations": len(evals)}
		for _, w := range published {
			meta[w.Framework] = w.StaffID
		}
		s.audit.Log(ctx, bootstrap.AuditLog{
			Action:  "recognition.recompute",
			ActorID: actor.ID,
			Message: fmt.Sprintf("recomputed %s recognition", p.Label()),
			Meta:    meta,
		})
	}

	s.logger.Info("recompute recognition success",
		zap.String("request_id", rid),
		zap.String("period", p.Key),
		zap.Int("evaluations", len(evals)),
		zap.Int("winners", len(published)),
	)
	return mapPeriodWinners(p, snaps, rows), nil
}

func (s *service) Winners(ctx context.Context, q PeriodQuery) (PeriodWinnersResponse, error) {
	p, err := s.parsePeriod(q.Kind, q.Key)
	if err != nil {
		return PeriodWinnersResponse{}, err
	}
	cacheKey := GetWinnersKey(p.Kind, p.Key)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp PeriodWinnersResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		snaps, rows, err := s.storedWinners(ctx, p)
		if err != nil {
			return nil, err
		}
		resp := mapPeriodWinners(p, snaps, rows)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 30*time.Minute)
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("load period winners failed", zap.String("period", p.Key), zap.Error(err))
		return PeriodWinnersResponse{}, err
	}

	return v.(PeriodWinnersResponse), nil
}

func (s *service) ListWinners(ctx context.Context, kind string) ([]WinnerResponse, error) {
	k, err := ParsePeriodKind(kind)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.FindByKind(ctx, string(k))
	if err != nil {
		s.logger.Error("list winners failed", zap.String("kind", kind), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return s.mapRows(rows), nil
}

// StaffWinners is the recognition history of one staff member, newest first.
func (s *service) StaffWinners(ctx context.Context, staffID string) ([]WinnerResponse, error) {
	if err := s.authorizeStaffView(ctx, staffID); err != nil {
		return nil, err
	}
	rows, err := s.repo.FindByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("list staff winners failed", zap.String("staff_id", staffID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return s.mapRows(rows), nil
}

func (s *service) Trend(ctx context.Context, staffID string, q TrendQuery) (TrendResponse, error) {
	s.logger.Debug("trend requested", zap.String("staff_id", staffID), zap.String("from", q.From), zap.String("to", q.To))

	if err := s.authorizeStaffView(ctx, staffID); err != nil {
		return TrendResponse{}, err
	}

	from, to, err := parseRange(q.From, q.To)
	if err != nil {
		return TrendResponse{}, err
	}

	evals, err := s.evaluations.LoadEvaluations(ctx, evaluation.Filter{StaffID: staffID, From: from, To: to})
	if err != nil {
		return TrendResponse{}, err
	}

	return mapTrend(staffID, slices.Collect(ComputeTrendSeries(staffID, evals))), nil
}

func (s *service) PillarAverages(ctx context.Context, q AveragesQuery) (AveragesResponse, error) {
	fw, err := rubric.FrameworkByCode(rubric.FrameworkCode(q.Framework))
	if err != nil {
		return AveragesResponse{}, err
	}
	from, to, err := parseRange(q.From, q.To)
	if err != nil {
		return AveragesResponse{}, err
	}

	evals, err := s.evaluations.LoadEvaluations(ctx, evaluation.Filter{Framework: string(fw.Code()), From: from, To: to})
	if err != nil {
		return AveragesResponse{}, err
	}

	avgs, err := AggregatePillarAverages(evals)
	if err != nil {
		s.logger.Error("aggregate pillar averages failed", zap.String("framework", q.Framework), zap.Error(err))
		return AveragesResponse{}, err
	}

	return AveragesResponse{
		Framework:   string(fw.Code()),
		From:        q.From,
		To:          q.To,
		Evaluations: len(evals),
		Pillars:     mapAverages(OrderedAverages(fw, avgs)),
	}, nil
}

func (s *service) Report(ctx context.Context, q ReportQuery) (ReportResponse, error) {
	p, err := s.parsePeriod(q.Kind, q.Key)
	if err != nil {
		return ReportResponse{}, err
	}

	report, err := s.buildReport(ctx, p)
	if err != nil {
		return ReportResponse{}, err
	}

	if q.Narrative {
		report.Narrative, err = s.narrate(ctx, report, q.Persona)
		if err != nil {
			return ReportResponse{}, err
		}
	}

	return ReportResponse{
		Period:    mapPeriod(p),
		Markdown:  report.Markdown(),
		Narrative: report.Narrative,
	}, nil
}

func (s *service) ReportPDF(ctx context.Context, q PeriodQuery) ([]byte, error) {
	p, err := s.parsePeriod(q.Kind, q.Key)
	if err != nil {
		return nil, err
	}

	report, err := s.buildReport(ctx, p)
	if err != nil {
		return nil, err
	}

	pdf, err := report.PDF()
	if err != nil {
		s.logger.Error("render recognition pdf failed", zap.String("period", p.Key), zap.Error(err))
		return nil, err
	}
	return pdf, nil
}

// buildReport combines the stored winners with pillar averages computed from
// the period's evaluations.
func (s *service) buildReport(ctx context.Context, p Period) (Report, error) {
	snaps, _, err := s.storedWinners(ctx, p)
	if err != nil {
		return Report{}, err
	}

	report := Report{Period: p, Winners: snaps, Averages: make(map[rubric.FrameworkCode][]PillarAverage)}
	for _, fw := range rubric.Frameworks() {
		evals, err := s.evaluations.LoadEvaluations(ctx, evaluation.Filter{Framework: string(fw.Code()), From: p.From, To: p.To})
		if err != nil {
			return Report{}, err
		}
		avgs, err := AggregatePillarAverages(evals)
		if err != nil {
			return Report{}, err
		}
		report.Averages[fw.Code()] = OrderedAverages(fw, avgs)
	}
	return report, nil
}

func (s *service) narrate(ctx context.Context, r Report, persona string) (string, error) {
	in := summarizer.Input{PeriodLabel: r.Period.Label(), Persona: persona}
	for _, fw := range rubric.Frameworks() {
		// averages describe the period even when no winner is stored for it
		for _, a := range r.Averages[fw.Code()] {
			in.Averages = append(in.Averages, summarizer.Average{
				Framework: string(fw.Code()),
				Pillar:    a.Name,
				Average:   decimalString(a.Average),
			})
		}
		w := r.Winners[fw.Code()]
		if w == nil {
			continue
		}
		in.Winners = append(in.Winners, summarizer.Winner{
			Framework:     w.Framework,
			StaffName:     w.StaffName,
			Position:      positionName(w.PositionID),
			Score:         decimalString(w.Score),
			MaxScore:      w.MaxScore,
			Justification: w.Justification,
		})
	}

	text, err := s.narrator.Summarize(ctx, in)
	if err != nil {
		s.logger.Error("recognition narrative failed", zap.String("period", r.Period.Key), zap.Error(err))
		return "", err
	}
	return text, nil
}

func (s *service) storedWinners(ctx context.Context, p Period) (map[rubric.FrameworkCode]*WinnerSnapshot, map[rubric.FrameworkCode]*Winner, error) {
	rows, err := s.repo.FindByPeriod(ctx, string(p.Kind), p.Key)
	if err != nil {
		return nil, nil, mapRepositoryError(err)
	}

	snaps := make(map[rubric.FrameworkCode]*WinnerSnapshot, len(rows))
	byCode := make(map[rubric.FrameworkCode]*Winner, len(rows))
	for i := range rows {
		snap, err := snapshotOf(rows[i])
		if err != nil {
			s.logger.Warn("skipping unreadable winner snapshot", zap.Error(err))
			continue
		}
		code := rubric.FrameworkCode(rows[i].Framework)
		snaps[code] = &snap
		byCode[code] = &rows[i]
	}
	return snaps, byCode, nil
}

func (s *service) mapRows(rows []Winner) []WinnerResponse {
	out := make([]WinnerResponse, 0, len(rows))
	for i := range rows {
		snap, err := snapshotOf(rows[i])
		if err != nil {
			s.logger.Warn("skipping unreadable winner snapshot", zap.Error(err))
			continue
		}
		p, err := ParsePeriod(PeriodKind(rows[i].PeriodKind), rows[i].PeriodKey)
		if err != nil {
			s.logger.Warn("skipping winner with invalid period", zap.String("key", rows[i].PeriodKey), zap.Error(err))
			continue
		}
		out = append(out, mapWinnerToResponse(p, snap, &rows[i]))
	}
	return out
}

// staffRefs resolves everyone with an evaluation in evals, including staff
// who have since been removed.
func (s *service) staffRefs(ctx context.Context, evals []evaluation.Evaluation) ([]StaffRef, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, e := range evals {
		if !seen[e.StaffID()] {
			seen[e.StaffID()] = true
			ids = append(ids, e.StaffID())
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.staffRepo.FindByIDsUnscoped(ctx, ids)
	if err != nil {
		s.logger.Error("load staff for recognition failed", zap.Error(err))
		return nil, mapStaffError(err)
	}

	refs := make([]StaffRef, 0, len(rows))
	for _, r := range rows {
		refs = append(refs, StaffRef{ID: r.ID.String(), FullName: r.FullName, PositionID: r.PositionID})
	}
	return refs, nil
}

func (s *service) authorizeStaffView(ctx context.Context, staffID string) error {
	actor := rbac.ActorFromContext(ctx)
	if actor.IsAdmin() || actor.ID == staffID {
		return nil
	}
	member, err := s.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		return mapStaffError(err)
	}
	supervisorID := ""
	if member.SupervisorID != nil {
		supervisorID = member.SupervisorID.String()
	}
	if !rbac.CanManageStaff(actor, supervisorID) {
		return apperror.ErrForbidden
	}
	return nil
}

func (s *service) resolvePeriod(kind, key string) (Period, error) {
	if key == "" {
		k, err := ParsePeriodKind(kind)
		if err != nil {
			return Period{}, err
		}
		return PeriodFor(k, s.now())
	}
	return s.parsePeriod(kind, key)
}

func (s *service) parsePeriod(kind, key string) (Period, error) {
	k, err := ParsePeriodKind(kind)
	if err != nil {
		return Period{}, err
	}
	return ParsePeriod(k, key)
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	var f, t time.Time
	var err error
	if from != "" {
		if f, err = time.Parse(dateLayout, from); err != nil {
			return f, t, apperror.InvalidField("From")
		}
	}
	if to != "" {
		if t, err = time.Parse(dateLayout, to); err != nil {
			return f, t, apperror.InvalidField("To")
		}
	}
	if !f.IsZero() && !t.IsZero() && f.After(t) {
		return f, t, recognitionerrors.ErrInvalidDateRange
	}
	return f, t, nil
}

func positionName(id string) string {
	if p, err := rubric.PositionByID(rubric.PositionID(id)); err == nil {
		return p.Name
	}
	return id
}
