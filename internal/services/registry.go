package services

import (
	"time"

	"trainertrust_backend/internal/cache"
	"trainertrust_backend/internal/email"
	"trainertrust_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	ProfileService      ProfileService
	JobService          JobService
	ApplicationService  ApplicationService
	ReviewService       ReviewService
	MessageService      MessageService
	DashboardService    DashboardService
	NotificationService NotificationService
}

// Dependencies - внешние зависимости сервисов
type Dependencies struct {
	Cache         cache.Cache
	CacheTTL      time.Duration
	EmailProvider email.Provider // nil - уведомления отключены
	AppURL        string
}

// NewServiceContainer собирает репозитории и сервисы
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	profileRepo := repositories.NewProfileRepository()
	jobRepo := repositories.NewJobRepository()
	appRepo := repositories.NewApplicationRepository()
	reviewRepo := repositories.NewReviewRepository()
	messageRepo := repositories.NewMessageRepository()
	analyticsRepo := repositories.NewAnalyticsRepository()

	notifier := NewNotificationService(deps.EmailProvider, deps.AppURL)

	return &ServiceContainer{
		ProfileService:      NewProfileService(profileRepo),
		JobService:          NewJobService(jobRepo, profileRepo),
		ApplicationService:  NewApplicationService(appRepo, jobRepo, profileRepo, notifier),
		ReviewService:       NewReviewService(reviewRepo, profileRepo, deps.Cache, deps.CacheTTL, notifier),
		MessageService:      NewMessageService(messageRepo, profileRepo, notifier),
		DashboardService:    NewDashboardService(analyticsRepo, jobRepo, reviewRepo, messageRepo),
		NotificationService: notifier,
	}
}
