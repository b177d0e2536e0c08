package evaluation_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/evaluation"
	evaluationerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/evaluation/errors"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEvaluationService struct {
	StartFn           func(ctx context.Context, staffID string) (evaluation.DraftResponse, error)
	SubmitFn          func(ctx context.Context, req evaluation.SubmitEvaluationRequest) (evaluation.EvaluationResponse, bool, error)
	GetByIDFn         func(ctx context.Context, id string) (evaluation.EvaluationResponse, error)
	ListFn            func(ctx context.Context, q evaluation.ListQuery) ([]evaluation.EvaluationResponse, error)
	LoadEvaluationsFn func(ctx context.Context, f evaluation.Filter) ([]evaluation.Evaluation, error)
}

func (f *fakeEvaluationService) Start(ctx context.Context, staffID string) (evaluation.DraftResponse, error) {
	return f.StartFn(ctx, staffID)
}
func (f *fakeEvaluationService) Submit(ctx context.Context, req evaluation.SubmitEvaluationRequest) (evaluation.EvaluationResponse, bool, error) {
	return f.SubmitFn(ctx, req)
}
func (f *fakeEvaluationService) GetByID(ctx context.Context, id string) (evaluation.EvaluationResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEvaluationService) List(ctx context.Context, q evaluation.ListQuery) ([]evaluation.EvaluationResponse, error) {
	return f.ListFn(ctx, q)
}
func (f *fakeEvaluationService) LoadEvaluations(ctx context.Context, filter evaluation.Filter) ([]evaluation.Evaluation, error) {
	return f.LoadEvaluationsFn(ctx, filter)
}

type apiEnvelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

const submitBody = `{
	"staff_id": "9b1f3f8e-2f2e-4a55-8a0a-1d4c6a3e0001",
	"evaluation_date": "2024-01-05",
	"scores": [{"pillar": "A", "score": 4, "comment": "great"}]
}`

func TestEvaluationHandler_Submit(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeEvaluationService{
			SubmitFn: func(ctx context.Context, req evaluation.SubmitEvaluationRequest) (evaluation.EvaluationResponse, bool, error) {
				assert.Equal(t, "2024-01-05", req.EvaluationDate)
				assert.Len(t, req.Scores, 1)
				return evaluation.EvaluationResponse{ID: "e-1", OverallScore: "4.00"}, true, nil
			},
		}
		router := setupRouter()
		router.POST("/evaluations", evaluation.NewHandler(svc).Submit)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/evaluations", strings.NewReader(submitBody)))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("replay answers 200", func(t *testing.T) {
		svc := &fakeEvaluationService{
			SubmitFn: func(ctx context.Context, req evaluation.SubmitEvaluationRequest) (evaluation.EvaluationResponse, bool, error) {
				return evaluation.EvaluationResponse{ID: "e-1"}, false, nil
			},
		}
		router := setupRouter()
		router.POST("/evaluations", evaluation.NewHandler(svc).Submit)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/evaluations", strings.NewReader(submitBody)))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad date fails binding", func(t *testing.T) {
		router := setupRouter()
		router.POST("/evaluations", evaluation.NewHandler(&fakeEvaluationService{}).Submit)

		body := strings.Replace(submitBody, "2024-01-05", "01/05/2024", 1)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/evaluations", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("incomplete carries missing pillars", func(t *testing.T) {
		svc := &fakeEvaluationService{
			SubmitFn: func(ctx context.Context, req evaluation.SubmitEvaluationRequest) (evaluation.EvaluationResponse, bool, error) {
				return evaluation.EvaluationResponse{}, false, &evaluationerrors.IncompleteEvaluationError{
					Missing: []evaluationerrors.MissingPillar{{Pillar: "E", Score: true, Comment: true}},
				}
			},
		}
		router := setupRouter()
		router.POST("/evaluations", evaluation.NewHandler(svc).Submit)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/evaluations", strings.NewReader(submitBody)))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, apperror.CodeIncompleteEvaluation, env.Error.Code)
		assert.Contains(t, string(env.Error.Details), `"pillar":"E"`)
	})

	t.Run("validation error names the pillar", func(t *testing.T) {
		svc := &fakeEvaluationService{
			SubmitFn: func(ctx context.Context, req evaluation.SubmitEvaluationRequest) (evaluation.EvaluationResponse, bool, error) {
				return evaluation.EvaluationResponse{}, false, &evaluationerrors.ValidationError{
					Pillar: "A", Field: evaluationerrors.FieldScore, Reason: "must be between 1 and 4",
				}
			},
		}
		router := setupRouter()
		router.POST("/evaluations", evaluation.NewHandler(svc).Submit)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/evaluations", strings.NewReader(submitBody)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Contains(t, string(env.Error.Details), `"field":"score"`)
	})
}

func TestEvaluationHandler_List(t *testing.T) {
	svc := &fakeEvaluationService{
		ListFn: func(ctx context.Context, q evaluation.ListQuery) ([]evaluation.EvaluationResponse, error) {
			assert.Equal(t, "2024-01-01", q.From)
			return []evaluation.EvaluationResponse{{ID: "1"}, {ID: "2"}, {ID: "3"}}, nil
		},
	}
	router := setupRouter()
	router.GET("/evaluations", evaluation.NewHandler(svc).List)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/evaluations?from=2024-01-01&page_size=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var resp []evaluation.EvaluationResponse
	assert.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Len(t, resp, 2)
}

func TestEvaluationHandler_GetByID(t *testing.T) {
	svc := &fakeEvaluationService{
		GetByIDFn: func(ctx context.Context, id string) (evaluation.EvaluationResponse, error) {
			return evaluation.EvaluationResponse{}, evaluationerrors.ErrEvaluationNotFound
		},
	}
	router := setupRouter()
	router.GET("/evaluations/:id", evaluation.NewHandler(svc).GetByID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/evaluations/x", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
