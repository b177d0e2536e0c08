package rbac

import "github.com/gin-gonic/gin"

// RegisterRoutes expects r to already carry the auth middleware. enforceGuard
// runs in front of the enforce endpoint, which answers for arbitrary roles.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforceGuard ...gin.HandlerFunc) {
	group := r.Group("/rbac")
	{
		group.POST("/enforce", append(enforceGuard, handler.Enforce)...)
		group.GET("/permissions", handler.MyPermissions)
	}
}
