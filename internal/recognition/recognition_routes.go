package recognition

import (
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/middleware"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	recognition := r.Group("/recognition")
	{
		recognition.POST("/recompute",
			middleware.RateLimitByUser(0.1, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRecognition, rbac.ActionRecompute),
			handler.Recompute,
		)

		recognition.GET("/winners",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRecognition, rbac.ActionRead),
			handler.Winners,
		)

		recognition.GET("/winners/:kind",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRecognition, rbac.ActionRead),
			handler.ListWinners,
		)

		recognition.GET("/staff/:staff_id/winners",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRecognition, rbac.ActionRead),
			handler.StaffWinners,
		)

		recognition.GET("/staff/:staff_id/trend",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRecognition, rbac.ActionRead),
			handler.Trend,
		)

		recognition.GET("/averages",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRecognition, rbac.ActionRead),
			handler.PillarAverages,
		)

		recognition.GET("/report",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRecognition, rbac.ActionRead),
			handler.Report,
		)

		recognition.GET("/report.pdf",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRecognition, rbac.ActionRead),
			handler.ReportPDF,
		)
	}
}
