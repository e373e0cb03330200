package handlers

import (
	"net/http"

	"trainertrust_backend/internal/auth"
	"trainertrust_backend/internal/middleware"
	"trainertrust_backend/internal/services"
	"trainertrust_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	applications := r.Group("/applications")
	applications.Use(h.RequireAuth())
	{
		applications.GET("/my", middleware.RequirePermission(auth.PermApplicationsWrite), h.GetMyApplications)
		applications.PATCH("/:id/status", middleware.RequirePermission(auth.PermApplicationsReview), h.UpdateStatus)
		applications.DELETE("/:id", middleware.RequirePermission(auth.PermApplicationsWrite), h.Cancel)
	}
}

func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.Mine(c.Request.Context(), h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	id, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.UpdateStatus(c.Request.Context(), h.GetDB(c), session, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) Cancel(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	id, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	if err := h.applicationService.Cancel(c.Request.Context(), h.GetDB(c), session, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
