package staff

import (
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/middleware"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	staff := r.Group("/staff")
	{
		staff.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceStaff, rbac.ActionRead),
			handler.GetDirectory,
		)

		staff.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceStaff, rbac.ActionRead),
			handler.GetByID,
		)

		staff.POST("",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceStaff, rbac.ActionManage),
			handler.Create,
		)

		staff.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceStaff, rbac.ActionManage),
			handler.Update,
		)

		staff.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourceStaff, rbac.ActionManage),
			handler.Delete,
		)
	}
}
