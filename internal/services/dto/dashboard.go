package dto

import "trainertrust_backend/internal/models"

// DashboardResponse - статистика для главной страницы. Поля компании и тренера
// заполняются в зависимости от роли.
type DashboardResponse struct {
	Role                 models.UserRole                    `json:"role"`
	JobsPosted           *int64                             `json:"jobs_posted,omitempty"`
	ApplicationsReceived *int64                             `json:"applications_received,omitempty"`
	ApplicationsSent     *int64                             `json:"applications_sent,omitempty"`
	ApplicationsByStatus map[models.ApplicationStatus]int64 `json:"applications_by_status"`
	AverageRating        float64                            `json:"average_rating"`
	ReviewsReceived      int64                              `json:"reviews_received"`
	ReviewsGiven         int64                              `json:"reviews_given"`
	UnreadMessages       int64                              `json:"unread_messages"`
}
