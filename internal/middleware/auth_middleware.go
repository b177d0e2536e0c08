package middleware

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by access tokens. Sessions and login live outside this service;
// it only trusts the actor id and role handed to it.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortError(c, ErrTokenNotFound)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			errObj := ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = ErrTokenExpired
			}
			abortError(c, errObj)
			return
		}

		userID := claims.UserID
		if userID == "" {
			userID = claims.Subject
		}
		if userID == "" || claims.Role == "" {
			abortError(c, ErrInvalidToken)
			return
		}

		c.Set("user_id", userID)
		c.Set("role", claims.Role)
		c.Request = c.Request.WithContext(contextutil.WithActor(c.Request.Context(), userID, claims.Role))

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(allowedRoles, c.GetString("role")) {
			abortError(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}
