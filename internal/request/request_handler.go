package request

import (
	"context"
	"net/http"
	"strconv"

	"go-shinsei/internal/domain"
	"go-shinsei/internal/shared/apperror"
	"go-shinsei/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AggregateCacheInvalidator matches report.CacheInvalidator without the
// handler importing the report package.
type AggregateCacheInvalidator interface {
	InvalidateAggregates(ctx context.Context)
}

type Handler struct {
	service Service
	cache   AggregateCacheInvalidator
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("request.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.handler")
	}
	return &Handler{service: service, logger: l}
}

// NewHandlerWithCache additionally busts cached aggregate reports after a
// successful decision, so reports never serve a stale terminal status.
func NewHandlerWithCache(service Service, cache AggregateCacheInvalidator, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.cache = cache
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) SubmitLeave(c *gin.Context) {
	callerID := c.GetString("user_id")

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit leave bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid JSON payload", nil)
		return
	}

	resp, err := h.service.SubmitLeave(c.Request.Context(), callerID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) SubmitCorrection(c *gin.Context) {
	callerID := c.GetString("user_id")

	var req CreateCorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit correction bind failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid JSON payload", nil)
		return
	}

	resp, err := h.service.SubmitCorrection(c.Request.Context(), callerID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListLeave(c *gin.Context) {
	h.list(c, domain.CategoryLeave)
}

func (h *Handler) ListCorrections(c *gin.Context) {
	h.list(c, domain.CategoryCorrection)
}

func (h *Handler) list(c *gin.Context, category string) {
	callerID := c.GetString("user_id")
	scope := c.DefaultQuery("scope", ScopeMine)

	resp, err := h.service.List(c.Request.Context(), callerID, scope, category)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) Decide(c *gin.Context) {
	callerID := c.GetString("user_id")

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http decide validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, mapped.Details)
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), callerID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.cache != nil {
		h.cache.InvalidateAggregates(c.Request.Context())
	}

	response.Success(c, http.StatusOK, resp, nil)
}
