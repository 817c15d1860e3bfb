package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/packing-report/internal/domain/dto"
	"github.com/guttosm/packing-report/internal/domain/model"
	"github.com/guttosm/packing-report/internal/i18n"
	"github.com/guttosm/packing-report/internal/middleware"
	"github.com/guttosm/packing-report/internal/repository"
	"github.com/guttosm/packing-report/internal/service"
)

// SizeOrderHandler serves the size order configuration endpoints.
type SizeOrderHandler struct {
	svc service.SizeOrderService
}

// NewSizeOrderHandler creates a SizeOrderHandler.
func NewSizeOrderHandler(svc service.SizeOrderService) *SizeOrderHandler {
	return &SizeOrderHandler{svc: svc}
}

// Get handles GET /api/size-order.
//
// @Summary      Active size order
// @Description  Returns the stored active size order, or the configured default when none is stored or MongoDB is disabled.
// @Tags         Size order
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.SizeOrderResponse}
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/size-order [get]
func (h *SizeOrderHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)

	active, err := h.svc.GetActive(c.Request.Context())
	if err != nil && !errors.Is(err, service.ErrRepositoryNotConfigured) {
		builder.StorageError(err)
		return
	}
	if active == nil || len(active.Sizes) == 0 {
		builder.SuccessOK(dto.SizeOrderResponse{
			Sizes:  h.svc.Resolve(c.Request.Context()),
			Active: true,
			Source: dto.SizeOrderSourceDefault,
		})
		return
	}
	builder.SuccessOK(toSizeOrderResponse(*active))
}

// Update handles PUT /api/size-order.
//
// @Summary      Store a new size order
// @Description  Stores the sizes as a new active version. Cached analyses are discarded.
// @Tags         Size order
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateSizeOrderRequest true "New size order"
// @Success      200 {object} dto.SuccessResponse{data=dto.SizeOrderResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid size order"
// @Failure      503 {object} dto.ErrorResponse "MongoDB disabled or unavailable"
// @Security     ApiKeyAuth
// @Router       /api/size-order [put]
func (h *SizeOrderHandler) Update(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.UpdateSizeOrderRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidSizeOrder, err)
		return
	}

	ls, audit := loggingServiceFrom(c)

	cfg, err := h.svc.Create(c.Request.Context(), req.Sizes, req.CreatedBy, req.Note)
	if err != nil {
		if audit {
			middleware.AuditLogError(ls, c, model.ActionUpdateSizeOrder, "Size order update failed", err, map[string]interface{}{
				"sizes": req.Sizes,
			})
		}
		builder.StorageError(err)
		return
	}

	if audit {
		middleware.AuditLog(ls, c, model.ActionUpdateSizeOrder, "Size order updated", map[string]interface{}{
			"version":    cfg.Version,
			"sizes":      cfg.Sizes,
			"created_by": cfg.CreatedBy,
		})
	}

	builder.SuccessOK(toSizeOrderResponse(*cfg))
}

// History handles GET /api/size-order/history.
//
// @Summary      Size order versions
// @Description  Lists stored size order versions, newest first.
// @Tags         Size order
// @Produce      json
// @Param        limit query int false "Maximum versions to return" default(20)
// @Success      200 {object} dto.SuccessResponse{data=[]dto.SizeOrderResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid limit"
// @Failure      503 {object} dto.ErrorResponse "MongoDB disabled or unavailable"
// @Security     ApiKeyAuth
// @Router       /api/size-order/history [get]
func (h *SizeOrderHandler) History(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit, err := queryLimit(c, 20)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	configs, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		builder.StorageError(err)
		return
	}

	out := make([]dto.SizeOrderResponse, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, toSizeOrderResponse(cfg))
	}
	builder.SuccessOK(out)
}

func toSizeOrderResponse(cfg repository.SizeOrderConfig) dto.SizeOrderResponse {
	return dto.SizeOrderResponse{
		Sizes:     cfg.Sizes,
		Version:   cfg.Version,
		Active:    cfg.Active,
		Source:    dto.SizeOrderSourceDatabase,
		CreatedBy: cfg.CreatedBy,
		Note:      cfg.Note,
		CreatedAt: cfg.CreatedAt,
	}
}

// queryLimit parses the limit query parameter. Absent means def.
func queryLimit(c *gin.Context, def int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	return n, nil
}

func loggingServiceFrom(c *gin.Context) (service.LoggingService, bool) {
	v, exists := c.Get(LoggingServiceKey)
	if !exists {
		return nil, false
	}
	ls, ok := v.(service.LoggingService)
	return ls, ok && ls != nil
}
