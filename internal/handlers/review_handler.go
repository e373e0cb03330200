package handlers

import (
	"net/http"

	"trainertrust_backend/internal/auth"
	"trainertrust_backend/internal/middleware"
	"trainertrust_backend/internal/models"
	"trainertrust_backend/internal/services"
	"trainertrust_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/reviews")
	{
		public.GET("/categories", h.GetCategoryForm)
		public.GET("/received/:userId", h.GetReceivedReviews)
		public.GET("/given/:userId", h.GetGivenReviews)
		public.GET("/summary/:userId", h.GetRatingSummary)
	}

	// Protected routes
	reviews := r.Group("/reviews")
	reviews.Use(h.RequireAuth(), middleware.RequirePermission(auth.PermReviewsWrite))
	{
		reviews.POST("", h.SubmitReview)
	}
}

// GetCategoryForm - GET /reviews/categories?role=
func (h *ReviewHandler) GetCategoryForm(c *gin.Context) {
	var query dto.CategoryFormQuery
	if !h.BindQuery(c, &query) {
		return
	}
	c.JSON(http.StatusOK, h.reviewService.CategoryForm(models.UserRole(query.Role)))
}

func (h *ReviewHandler) GetReceivedReviews(c *gin.Context) {
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}

	resp, err := h.reviewService.ReceivedReviews(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) GetGivenReviews(c *gin.Context) {
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}

	resp, err := h.reviewService.GivenReviews(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) GetRatingSummary(c *gin.Context) {
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}

	resp, err := h.reviewService.RatingSummary(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var req dto.SubmitReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.SubmitReview(c.Request.Context(), h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
