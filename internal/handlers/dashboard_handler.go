package handlers

import (
	"net/http"

	"trainertrust_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	*BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(base *BaseHandler, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      base,
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.RequireAuth(), h.GetDashboard)
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
