package handlers

import (
	"net/http"

	"trainertrust_backend/internal/models"
	"trainertrust_backend/internal/services"
	"trainertrust_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	r.GET("/companies", h.ListCompanies)
	profiles := r.Group("/profiles")
	{
		profiles.GET("", h.ListProfiles)
		profiles.GET("/:id", h.GetProfile)
	}

	// Protected routes
	me := r.Group("/profiles/me")
	me.Use(h.RequireAuth())
	{
		me.GET("", h.GetMyProfile)
		me.POST("", h.CreateMyProfile)
		me.PUT("", h.UpdateMyProfile)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := h.RequireParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListProfiles - GET /profiles?role=trainer|company
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	var query dto.ProfileListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	profiles, err := h.profileService.ListByRole(c.Request.Context(), h.GetDB(c), models.UserRole(query.Role))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles, "total": len(profiles)})
}

func (h *ProfileHandler) ListCompanies(c *gin.Context) {
	companies, err := h.profileService.Companies(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies, "total": len(companies)})
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), h.GetDB(c), session.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) CreateMyProfile(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var req dto.CreateProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.CreateOwn(c.Request.Context(), h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateOwn(c.Request.Context(), h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
