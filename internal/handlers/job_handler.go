package handlers

import (
	"net/http"

	"trainertrust_backend/internal/auth"
	"trainertrust_backend/internal/middleware"
	"trainertrust_backend/internal/services"
	"trainertrust_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService         services.JobService
	applicationService services.ApplicationService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, applicationService services.ApplicationService) *JobHandler {
	return &JobHandler{
		BaseHandler:        base,
		jobService:         jobService,
		applicationService: applicationService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/jobs")
	{
		public.GET("", h.ListJobs)
		public.GET("/:id", h.GetJob)
	}

	// Protected routes
	jobs := r.Group("/jobs")
	jobs.Use(h.RequireAuth())
	{
		jobs.POST("", middleware.RequirePermission(auth.PermJobsWrite), h.CreateJob)
		jobs.GET("/:id/applications", middleware.RequirePermission(auth.PermApplicationsReview), h.GetJobApplications)
		jobs.GET("/:id/application", h.HasApplied)
		jobs.POST("/:id/apply", middleware.RequirePermission(auth.PermApplicationsWrite), h.Apply)
	}
}

// ListJobs - GET /jobs?company_id=
func (h *JobHandler) ListJobs(c *gin.Context) {
	var query dto.JobListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	jobs, err := h.jobService.List(c.Request.Context(), h.GetDB(c), query.CompanyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": len(jobs)})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	job, err := h.jobService.Get(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindJSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) GetJobApplications(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.applicationService.ForJob(c.Request.Context(), h.GetDB(c), session, jobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) HasApplied(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.applicationService.HasApplied(c.Request.Context(), h.GetDB(c), session, jobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Apply - тело запроса необязательно
func (h *JobHandler) Apply(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	jobID, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	application, err := h.applicationService.Apply(c.Request.Context(), h.GetDB(c), session, jobID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}
