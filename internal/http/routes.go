package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// AnalysisRoutes registers the analysis endpoints.
type AnalysisRoutes struct {
	handler *AnalysisHandler
}

// NewAnalysisRoutes creates AnalysisRoutes.
func NewAnalysisRoutes(handler *AnalysisHandler) *AnalysisRoutes {
	return &AnalysisRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *AnalysisRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", r.handler.Analyze)
	rg.POST("/analyze/upload", r.handler.Upload)
	if r.handler.invoker != nil {
		rg.POST("/invoke", r.handler.Invoke)
	}
}

// SizeOrderRoutes registers the size order endpoints.
type SizeOrderRoutes struct {
	handler *SizeOrderHandler
}

// NewSizeOrderRoutes creates SizeOrderRoutes.
func NewSizeOrderRoutes(handler *SizeOrderHandler) *SizeOrderRoutes {
	return &SizeOrderRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *SizeOrderRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/size-order", r.handler.Get)
	rg.PUT("/size-order", r.handler.Update)
	rg.GET("/size-order/history", r.handler.History)
}

// HistoryRoutes registers the analysis history endpoint.
type HistoryRoutes struct {
	handler *HistoryHandler
}

// NewHistoryRoutes creates HistoryRoutes.
func NewHistoryRoutes(handler *HistoryHandler) *HistoryRoutes {
	return &HistoryRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *HistoryRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analyses", r.handler.List)
}
