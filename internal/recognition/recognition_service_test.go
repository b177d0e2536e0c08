package recognition_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/bootstrap"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/evaluation"
	evaluationMock "github.com/tnoeldner/Housing-Leadership-Reports/internal/evaluation/mock"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/events"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/messaging/kafka"
	kafkaMock "github.com/tnoeldner/Housing-Leadership-Reports/internal/messaging/kafka/mock"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rbac"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition"
	recognitionerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition/errors"
	recognitionMock "github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition/mock"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/contextutil"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/metrics"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/staff"
	staffMock "github.com/tnoeldner/Housing-Leadership-Reports/internal/staff/mock"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/summarizer"
	summarizerMock "github.com/tnoeldner/Housing-Leadership-Reports/internal/summarizer/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type serviceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	redismock   redismock.ClientMock
	service     recognition.Service
	repo        *recognitionMock.MockRepository
	evaluations *evaluationMock.MockService
	staffRepo   *staffMock.MockRepository
	outbox      *kafkaMock.MockOutboxRepository
	narrator    *summarizerMock.MockSummarizer
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := recognitionMock.NewMockRepository(ctrl)
	evaluations := evaluationMock.NewMockService(ctrl)
	staffRepo := staffMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	narrator := summarizerMock.NewMockSummarizer(ctrl)
	m := metrics.NewManager(metrics.WithRegistry(prometheus.NewRegistry()))
	audit := bootstrap.NewStdoutAuditLogger(zap.NewNop())

	svc := recognition.NewService(db, repo, evaluations, staffRepo, outbox, narrator, audit, m, dbRedis)

	return &serviceDeps{
		db:          db,
		sqlMock:     sqlMock,
		redismock:   redisMock,
		service:     svc,
		repo:        repo,
		evaluations: evaluations,
		staffRepo:   staffRepo,
		outbox:      outbox,
		narrator:    narrator,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func adminCtx() context.Context {
	return contextutil.WithActor(context.Background(), evaluator, rbac.RoleAdmin)
}

func restore(t *testing.T, id, staffID, date string, scores ...int) evaluation.Evaluation {
	t.Helper()
	ps := make([]evaluation.PillarScore, 0, len(scores))
	for i, s := range scores {
		ps = append(ps, evaluation.PillarScore{Letter: ascendLetters[i], Score: s, Comment: "note " + ascendLetters[i]})
	}
	e, err := evaluation.Restore(id, staffID, evaluator, rubric.PositionRA, rubric.Ascend, day(date), ps)
	if err != nil {
		t.Fatalf("restore evaluation: %v", err)
	}
	return e
}

func staffRows() []staff.Staff {
	return []staff.Staff{
		{ID: uuid.MustParse(staffA), FullName: "Avery Adams", PositionID: "ra"},
		{ID: uuid.MustParse(staffB), FullName: "Blake Brown", PositionID: "ra"},
	}
}

func storedWinner(t *testing.T) recognition.Winner {
	t.Helper()
	snap := recognition.WinnerSnapshot{
		Framework:      "ASCEND",
		StaffID:        staffA,
		StaffName:      "Avery Adams",
		PositionID:     "ra",
		EvaluationID:   evalID("60"),
		EvaluationDate: "2024-01-03",
		Score:          restore(t, evalID("60"), staffA, "2024-01-03", 4, 4, 4, 3, 3, 3).OverallScore(),
		MaxScore:       4,
		Justification:  "Accountability (4/4): note A",
	}
	raw, _ := json.Marshal(snap)
	return recognition.Winner{
		ID:         uuid.New(),
		PeriodKind: "weekly",
		PeriodKey:  "2024-01-06",
		Framework:  "ASCEND",
		PeriodFrom: day("2023-12-31"),
		PeriodTo:   day("2024-01-06"),
		StaffID:    uuid.MustParse(staffA),
		Snapshot:   datatypes.JSON(raw),
		SelectedBy: evaluator,
		SelectedAt: time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC),
	}
}

func TestRecognitionService_Recompute(t *testing.T) {
	t.Run("stores winners, clears empty frameworks and queues event", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		evals := []evaluation.Evaluation{
			restore(t, evalID("01"), staffB, "2024-01-02", 3, 3, 3, 3, 3, 3),
			restore(t, evalID("02"), staffA, "2024-01-03", 4, 4, 4, 3, 3, 3),
		}

		deps.evaluations.EXPECT().
			LoadEvaluations(gomock.Any(), evaluation.Filter{From: day("2023-12-31"), To: day("2024-01-06")}).
			Return(evals, nil)
		deps.staffRepo.EXPECT().
			FindByIDsUnscoped(gomock.Any(), []string{staffB, staffA}).
			Return(staffRows(), nil)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, w *recognition.Winner) error {
				assert.Equal(t, "weekly", w.PeriodKind)
				assert.Equal(t, "2024-01-06", w.PeriodKey)
				assert.Equal(t, "ASCEND", w.Framework)
				assert.Equal(t, staffA, w.StaffID.String())
				assert.Equal(t, evaluator, w.SelectedBy)
				return nil
			})
		deps.repo.EXPECT().Delete(gomock.Any(), "weekly", "2024-01-06", "NORTH").Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
				assert.Equal(t, events.RecognitionWinnerSelectedTopic, e.Topic)
				assert.Equal(t, "weekly:2024-01-06", e.AggregateID)
				var payload events.RecognitionWinnerSelectedEvent
				assert.NoError(t, json.Unmarshal(e.Payload, &payload))
				assert.Len(t, payload.Winners, 1)
				assert.Equal(t, "3.50", payload.Winners[0].Score)
				return nil
			})
		deps.redismock.ExpectDel(recognition.GetWinnersKey(recognition.Weekly, "2024-01-06")).SetVal(1)

		resp, err := deps.service.Recompute(adminCtx(), recognition.RecomputeRequest{Kind: "weekly", Key: "2024-01-06"})

		assert.NoError(t, err)
		assert.Equal(t, "2024-01-06", resp.Period.Key)
		assert.Len(t, resp.Winners, 2)
		assert.Equal(t, "ASCEND", resp.Winners[0].Framework)
		assert.Equal(t, "Avery Adams", resp.Winners[0].Winner.StaffName)
		assert.Equal(t, "3.50", resp.Winners[0].Winner.Score)
		assert.Nil(t, resp.Winners[1].Winner)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("no evaluations clears both frameworks without an event", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.evaluations.EXPECT().LoadEvaluations(gomock.Any(), gomock.Any()).Return(nil, nil)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(gomock.Any(), "monthly", "2024-02", "ASCEND").Return(nil)
		deps.repo.EXPECT().Delete(gomock.Any(), "monthly", "2024-02", "NORTH").Return(nil)
		deps.redismock.ExpectDel(recognition.GetWinnersKey(recognition.Monthly, "2024-02")).SetVal(0)

		resp, err := deps.service.Recompute(adminCtx(), recognition.RecomputeRequest{Kind: "monthly", Key: "2024-02"})

		assert.NoError(t, err)
		assert.Nil(t, resp.Winners[0].Winner)
		assert.Nil(t, resp.Winners[1].Winner)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("concurrent write maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.evaluations.EXPECT().LoadEvaluations(gomock.Any(), gomock.Any()).
			Return([]evaluation.Evaluation{restore(t, evalID("03"), staffA, "2024-01-03", 3, 3, 3, 3, 3, 3)}, nil)
		deps.staffRepo.EXPECT().FindByIDsUnscoped(gomock.Any(), []string{staffA}).Return(staffRows(), nil)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(&pgconn.PgError{Code: "23505"})

		_, err := deps.service.Recompute(adminCtx(), recognition.RecomputeRequest{Kind: "weekly", Key: "2024-01-06"})

		assert.ErrorIs(t, err, recognitionerrors.ErrWinnerConflict)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("winner missing from directory fails before writing", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.evaluations.EXPECT().LoadEvaluations(gomock.Any(), gomock.Any()).
			Return([]evaluation.Evaluation{restore(t, evalID("04"), staffA, "2024-01-03", 3, 3, 3, 3, 3, 3)}, nil)
		deps.staffRepo.EXPECT().FindByIDsUnscoped(gomock.Any(), gomock.Any()).Return(staffRows()[1:], nil)

		_, err := deps.service.Recompute(adminCtx(), recognition.RecomputeRequest{Kind: "weekly", Key: "2024-01-06"})

		assert.ErrorIs(t, err, recognitionerrors.ErrWinnerNotInStaffSet)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid key", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Recompute(adminCtx(), recognition.RecomputeRequest{Kind: "weekly", Key: "2024-01-05"})

		assert.ErrorIs(t, err, recognitionerrors.ErrInvalidPeriodKey)
	})
}

func TestRecognitionService_Winners(t *testing.T) {
	q := recognition.PeriodQuery{Kind: "weekly", Key: "2024-01-06"}
	key := recognition.GetWinnersKey(recognition.Weekly, "2024-01-06")

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		cached, _ := json.Marshal(recognition.PeriodWinnersResponse{Period: recognition.PeriodResponse{Key: "2024-01-06"}})
		deps.redismock.ExpectGet(key).SetVal(string(cached))

		resp, err := deps.service.Winners(adminCtx(), q)

		assert.NoError(t, err)
		assert.Equal(t, "2024-01-06", resp.Period.Key)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache miss loads snapshots", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().FindByPeriod(gomock.Any(), "weekly", "2024-01-06").Return([]recognition.Winner{storedWinner(t)}, nil)
		deps.redismock.Regexp().ExpectSet(key, `.*`, 30*time.Minute).SetVal("OK")

		resp, err := deps.service.Winners(adminCtx(), q)

		assert.NoError(t, err)
		assert.Equal(t, "Avery Adams", resp.Winners[0].Winner.StaffName)
		assert.Equal(t, "2024-01-07T09:00:00Z", resp.Winners[0].Winner.SelectedAt)
		assert.Nil(t, resp.Winners[1].Winner)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}

func TestRecognitionService_Trend(t *testing.T) {
	t.Run("own trend in date order", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := contextutil.WithActor(context.Background(), staffA, rbac.RoleStaff)
		deps.evaluations.EXPECT().
			LoadEvaluations(gomock.Any(), evaluation.Filter{StaffID: staffA, From: day("2024-01-01")}).
			Return([]evaluation.Evaluation{
				restore(t, evalID("11"), staffA, "2024-03-01", 4, 4, 4, 4, 4, 4),
				restore(t, evalID("12"), staffA, "2024-01-05", 2, 2, 2, 2, 2, 2),
				restore(t, evalID("13"), staffA, "2024-02-10", 3, 3, 3, 3, 3, 3),
			}, nil)

		resp, err := deps.service.Trend(ctx, staffA, recognition.TrendQuery{From: "2024-01-01"})

		assert.NoError(t, err)
		assert.Len(t, resp.Points, 3)
		assert.Equal(t, "2024-01-05", resp.Points[0].Date)
		assert.Equal(t, "2024-02-10", resp.Points[1].Date)
		assert.Equal(t, "2024-03-01", resp.Points[2].Date)
		assert.Equal(t, "4.00", resp.Points[2].OverallScore)
	})

	t.Run("other supervisor's staff is forbidden", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		other := uuid.New()
		ctx := contextutil.WithActor(context.Background(), evaluator, rbac.RoleSupervisor)
		deps.staffRepo.EXPECT().FindByID(gomock.Any(), staffA).
			Return(&staff.Staff{ID: uuid.MustParse(staffA), SupervisorID: &other}, nil)

		_, err := deps.service.Trend(ctx, staffA, recognition.TrendQuery{})

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("inverted range", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Trend(adminCtx(), staffA, recognition.TrendQuery{From: "2024-03-01", To: "2024-01-01"})

		assert.ErrorIs(t, err, recognitionerrors.ErrInvalidDateRange)
	})
}

func TestRecognitionService_PillarAverages(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	deps.evaluations.EXPECT().
		LoadEvaluations(gomock.Any(), evaluation.Filter{Framework: "ASCEND"}).
		Return([]evaluation.Evaluation{
			restore(t, evalID("21"), staffA, "2024-01-05", 4, 3, 2, 1, 4, 3),
			restore(t, evalID("22"), staffB, "2024-01-06", 3, 3, 3, 2, 4, 4),
		}, nil)

	resp, err := deps.service.PillarAverages(adminCtx(), recognition.AveragesQuery{Framework: "ASCEND"})

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Evaluations)
	assert.Len(t, resp.Pillars, 6)
	assert.Equal(t, "A", resp.Pillars[0].Letter)
	assert.Equal(t, "3.50", resp.Pillars[0].Average)
	assert.Equal(t, "1.50", resp.Pillars[3].Average)
}

func TestRecognitionService_Report(t *testing.T) {
	t.Run("markdown with narrative", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByPeriod(gomock.Any(), "weekly", "2024-01-06").Return([]recognition.Winner{storedWinner(t)}, nil)
		deps.evaluations.EXPECT().
			LoadEvaluations(gomock.Any(), evaluation.Filter{Framework: "ASCEND", From: day("2023-12-31"), To: day("2024-01-06")}).
			Return([]evaluation.Evaluation{restore(t, evalID("60"), staffA, "2024-01-03", 4, 4, 4, 3, 3, 3)}, nil)
		deps.evaluations.EXPECT().
			LoadEvaluations(gomock.Any(), evaluation.Filter{Framework: "NORTH", From: day("2023-12-31"), To: day("2024-01-06")}).
			Return(nil, nil)
		deps.narrator.EXPECT().
			Summarize(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in summarizer.Input) (string, error) {
				assert.Equal(t, "Week ending January 6, 2024", in.PeriodLabel)
				assert.Equal(t, "celebratory", in.Persona)
				assert.Len(t, in.Winners, 1)
				assert.Equal(t, "Resident Assistant", in.Winners[0].Position)
				assert.Len(t, in.Averages, 6)
				return "Avery led the week.", nil
			})

		resp, err := deps.service.Report(adminCtx(), recognition.ReportQuery{Kind: "weekly", Key: "2024-01-06", Narrative: true, Persona: "celebratory"})

		assert.NoError(t, err)
		assert.Equal(t, "Avery led the week.", resp.Narrative)
		assert.Contains(t, resp.Markdown, "**Recipient:** Avery Adams (Resident Assistant)")
		assert.Contains(t, resp.Markdown, "No NORTH recognition awarded this period.")
		assert.True(t, strings.HasSuffix(resp.Markdown, "Avery led the week.\n"))
	})

	t.Run("narrative keeps averages of frameworks without a winner", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByPeriod(gomock.Any(), "weekly", "2024-01-06").Return(nil, nil)
		deps.evaluations.EXPECT().
			LoadEvaluations(gomock.Any(), evaluation.Filter{Framework: "ASCEND", From: day("2023-12-31"), To: day("2024-01-06")}).
			Return([]evaluation.Evaluation{restore(t, evalID("61"), staffA, "2024-01-04", 4, 3, 3, 3, 3, 2)}, nil)
		deps.evaluations.EXPECT().
			LoadEvaluations(gomock.Any(), evaluation.Filter{Framework: "NORTH", From: day("2023-12-31"), To: day("2024-01-06")}).
			Return(nil, nil)
		deps.narrator.EXPECT().
			Summarize(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in summarizer.Input) (string, error) {
				assert.Empty(t, in.Winners)
				assert.Len(t, in.Averages, 6)
				assert.Equal(t, "ASCEND", in.Averages[0].Framework)
				assert.Equal(t, "Accountability", in.Averages[0].Pillar)
				assert.Equal(t, "4.00", in.Averages[0].Average)
				return "No winner yet; accountability led.", nil
			})

		resp, err := deps.service.Report(adminCtx(), recognition.ReportQuery{Kind: "weekly", Key: "2024-01-06", Narrative: true})

		assert.NoError(t, err)
		assert.Equal(t, "No winner yet; accountability led.", resp.Narrative)
	})

	t.Run("pdf", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByPeriod(gomock.Any(), "quarterly", "FY2024-Q3").Return(nil, nil)
		deps.evaluations.EXPECT().LoadEvaluations(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

		pdf, err := deps.service.ReportPDF(adminCtx(), recognition.PeriodQuery{Kind: "quarterly", Key: "FY2024-Q3"})

		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(pdf), "%PDF-1.4"))
	})

	t.Run("storage failure surfaces", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByPeriod(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := deps.service.Report(adminCtx(), recognition.ReportQuery{Kind: "monthly", Key: "2024-01"})

		assert.EqualError(t, err, "db down")
	})
}

func TestRecognitionService_StaffWinners(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := contextutil.WithActor(context.Background(), staffA, rbac.RoleStaff)
	deps.repo.EXPECT().FindByStaff(gomock.Any(), staffA).Return([]recognition.Winner{storedWinner(t)}, nil)

	resp, err := deps.service.StaffWinners(ctx, staffA)

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Week ending January 6, 2024", resp[0].Period.Label)
}
