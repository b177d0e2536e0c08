package evaluation

import (
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/middleware"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, rdb *redis.Client) {
	evaluations := r.Group("/evaluations")
	{
		evaluations.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEvaluation, rbac.ActionRead),
			handler.List,
		)

		evaluations.GET("/start/:staff_id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEvaluation, rbac.ActionCreate),
			handler.Start,
		)

		evaluations.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEvaluation, rbac.ActionRead),
			handler.GetByID,
		)

		evaluations.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceEvaluation, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
	}
}
