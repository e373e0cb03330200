package auth

import "trainertrust_backend/internal/models"

// Разрешения по ролям
const (
	PermJobsWrite          = "jobs:write"
	PermApplicationsWrite  = "applications:write"
	PermApplicationsReview = "applications:review"
	PermReviewsWrite       = "reviews:write"
	PermMessagesWrite      = "messages:write"
)

// Permissions список разрешений для каждой роли
var Permissions = map[models.UserRole][]string{
	models.UserRoleCompany: {
		PermJobsWrite,
		PermApplicationsReview,
		PermReviewsWrite,
		PermMessagesWrite,
	},
	models.UserRoleTrainer: {
		PermApplicationsWrite,
		PermReviewsWrite,
		PermMessagesWrite,
	},
}

// HasPermission проверяет есть ли у роли указанное разрешение
func HasPermission(role models.UserRole, permission string) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// CanPerformAction проверяет может ли пользователь сессии выполнить действие
func CanPerformAction(session *Session, permission string) bool {
	if session == nil {
		return false
	}
	return HasPermission(session.Role, permission)
}
