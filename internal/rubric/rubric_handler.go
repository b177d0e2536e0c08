package rubric

import (
	"net/http"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/apperror"
	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rubric.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rubric.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("rubric request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ListPositions(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.ListPositions(c.Request.Context()), nil)
}

func (h *Handler) GetRubric(c *gin.Context) {
	positionID := c.Param("position_id")
	h.logger.Debug("http get rubric", zap.String("position_id", positionID))

	resp, err := h.service.GetRubric(c.Request.Context(), positionID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Completeness(c *gin.Context) {
	resp, err := h.service.Completeness(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateCriterion(c *gin.Context) {
	positionID := c.Param("position_id")
	h.logger.Debug("http update criterion", zap.String("position_id", positionID))

	var req UpdateCriterionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update criterion validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateCriterion(c.Request.Context(), positionID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
