package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/packing-report/internal/i18n"
	"github.com/guttosm/packing-report/internal/repository"
	"github.com/guttosm/packing-report/internal/service"
)

// HistoryResponse is the data of GET /api/analyses.
type HistoryResponse struct {
	Items []repository.AnalysisDocument `json:"items"`
	Count int                           `json:"count"`
} // @name HistoryResponse

// HistoryHandler serves the analysis history.
type HistoryHandler struct {
	svc service.HistoryService
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(svc service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// List handles GET /api/analyses.
//
// @Summary      Analysis history
// @Description  Lists recent analyses, newest first. Workbooks are not stored, only their summary.
// @Tags         History
// @Produce      json
// @Param        limit query int false "Maximum entries to return (max 500)" default(50)
// @Success      200 {object} dto.SuccessResponse{data=HistoryResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid limit"
// @Failure      503 {object} dto.ErrorResponse "MongoDB disabled or unavailable"
// @Security     ApiKeyAuth
// @Router       /api/analyses [get]
func (h *HistoryHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit, err := queryLimit(c, service.DefaultHistoryLimit)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	docs, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		builder.StorageError(err)
		return
	}
	if docs == nil {
		docs = []repository.AnalysisDocument{}
	}
	builder.SuccessOK(HistoryResponse{Items: docs, Count: len(docs)})
}
