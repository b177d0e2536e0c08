package rubric

import (
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/middleware"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already carry auth and context logging.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	rubrics := r.Group("/rubrics")
	{
		rubrics.GET("",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRubric, rbac.ActionRead),
			handler.ListPositions,
		)

		rubrics.GET("/completeness",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRubric, rbac.ActionRead),
			handler.Completeness,
		)

		rubrics.GET("/:position_id",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRubric, rbac.ActionRead),
			handler.GetRubric,
		)

		rubrics.PUT("/:position_id/criteria",
			middleware.RateLimitByUser(0.5, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRubric, rbac.ActionManage),
			handler.UpdateCriterion,
		)
	}
}
