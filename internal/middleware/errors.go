package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/response"
)

var (
	ErrTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken  = apperror.New(apperror.CodeUnauthorized, "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired  = apperror.New(apperror.CodeUnauthorized, "Token expired", http.StatusUnauthorized)
	ErrTooManyReqs   = apperror.New("TOO_MANY_REQUESTS", "Too many requests", http.StatusTooManyRequests)
	ErrProcessing    = apperror.New("PROCESSING", "Request with this Idempotency-Key is still being processed", http.StatusConflict)
)

func abortError(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}
