package dto

import "trainertrust_backend/internal/ratings"

// SubmitReviewRequest - reviewer и его роль берутся из сессии, не из тела запроса.
type SubmitReviewRequest struct {
	RevieweeID string         `json:"reviewee_id" validate:"required"`
	Rating     int            `json:"rating" validate:"required,min=1,max=5"`
	Review     string         `json:"review" validate:"required,max=5000"`
	JobTitle   string         `json:"job_title" validate:"required,max=200"`
	Categories map[string]int `json:"categories" validate:"omitempty,category-scores"`
}

// ReviewListResponse - отзывы вместе с агрегатом
type ReviewListResponse struct {
	Reviews       []ratings.EnrichedReview `json:"reviews"`
	AverageRating float64                  `json:"average_rating"`
	Total         int                      `json:"total"`
}

type RatingSummaryResponse struct {
	UserID        string        `json:"user_id"`
	AverageRating float64       `json:"average_rating"`
	TotalReviews  int64         `json:"total_reviews"`
	RatingCounts  map[int]int64 `json:"rating_counts"`
}

type CategoryFormQuery struct {
	Role string `form:"role"`
}

type CategoryField struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	Score       int    `json:"score"`
}

type CategoryFormResponse struct {
	Role       string          `json:"role"`
	Categories []CategoryField `json:"categories"`
}
