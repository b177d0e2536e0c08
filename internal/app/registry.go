package app

import (
	"context"
	"net/http"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/bootstrap"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/evaluation"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/messaging/kafka"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/middleware"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rbac"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rbac/infra"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rubric"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/response"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/staff"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/summarizer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// services are shared by the API and the consumer.
type services struct {
	rubric      rubric.Service
	staff       staff.Service
	evaluation  evaluation.Service
	recognition recognition.Service
}

func buildServices(in *Infra, audit bootstrap.AuditLogger) services {
	cfg, logger := in.Config, in.Logger

	// --- Repositories ---
	rubricRepo := rubric.NewRepository(in.GormDB)
	staffRepo := staff.NewRepository(in.GormDB)
	evaluationRepo := evaluation.NewRepository(in.GormDB)
	recognitionRepo := recognition.NewRepository(in.GormDB)
	outboxRepo := kafka.NewOutboxRepository(in.SQLDB)

	// --- Services ---
	narrator := summarizer.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)
	rubricService := rubric.NewService(in.SQLDB, rubricRepo, in.Redis, in.Metrics, logger)
	staffService := staff.NewService(in.SQLDB, staffRepo, in.Redis, logger)
	evaluationService := evaluation.NewService(in.SQLDB, evaluationRepo, staffRepo, rubricService, outboxRepo, in.Metrics, logger)
	recognitionService := recognition.NewService(
		in.SQLDB,
		recognitionRepo,
		evaluationService,
		staffRepo,
		outboxRepo,
		narrator,
		audit,
		in.Metrics,
		in.Redis,
		logger,
	)

	return services{
		rubric:      rubricService,
		staff:       staffService,
		evaluation:  evaluationService,
		recognition: recognitionService,
	}
}

func registerModules(router *gin.Engine, in *Infra, audit bootstrap.AuditLogger) error {
	cfg, logger := in.Config, in.Logger

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(rbac.DefaultPolicies(), rbac.DefaultInheritance())
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	svc := buildServices(in, audit)

	// gaps are logged; complete positions keep working
	if report, err := svc.rubric.Completeness(context.Background()); err != nil {
		logger.Warn("rubric completeness check failed", zap.Error(err))
	} else if !report.Complete {
		logger.Warn("rubric catalog incomplete at startup", zap.Int("missing", len(report.Missing)))
	}

	// --- Handlers ---
	rubricHandler := rubric.NewHandler(svc.rubric, logger)
	staffHandler := staff.NewHandler(svc.staff, logger)
	evaluationHandler := evaluation.NewHandler(svc.evaluation, logger)
	recognitionHandler := recognition.NewHandler(svc.recognition, logger)
	rbacHandler := rbac.NewHandler(rbacService)

	router.GET("/healthz", func(c *gin.Context) {
		if err := in.SQLDB.PingContext(c.Request.Context()); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "UNAVAILABLE", "database unreachable", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})
	router.GET("/metrics", gin.WrapH(in.Metrics.Handler()))

	// --- Routes Registration ---
	// per-IP bucket is a coarse flood guard; per-actor limits sit on each route
	api := router.Group("/api/v1",
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS*10), cfg.RateLimitBurst*10),
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.ContextLogger(logger),
	)
	{
		rubric.RegisterRoutes(api, rubricHandler, rbacService)
		staff.RegisterRoutes(api, staffHandler, rbacService)
		evaluation.RegisterRoutes(api, evaluationHandler, rbacService, in.Redis)
		recognition.RegisterRoutes(api, recognitionHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, middleware.RoleMiddleware(rbac.RoleAdmin, rbac.RoleSupervisor))
	}

	return nil
}

// NewRouter builds the gin engine with every module mounted.
func NewRouter(in *Infra, audit bootstrap.AuditLogger) (*gin.Engine, error) {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Metrics(in.Metrics),
	)
	if err := registerModules(router, in, audit); err != nil {
		return nil, err
	}
	return router, nil
}
