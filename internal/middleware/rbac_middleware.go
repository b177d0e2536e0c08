package middleware

import (
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/rbac"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService adalah interface lokal.
type RBACService interface {
	Enforce(req rbac.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			abortError(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(rbac.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			abortError(c, apperror.ErrInternal)
			return
		}

		if !allowed {
			forbidden := apperror.ErrForbidden
			response.Error(c, forbidden.HTTPStatus, forbidden.Code, forbidden.Message, gin.H{
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
