package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	ProfileHandler     *ProfileHandler
	JobHandler         *JobHandler
	ApplicationHandler *ApplicationHandler
	ReviewHandler      *ReviewHandler
	MessageHandler     *MessageHandler
	DashboardHandler   *DashboardHandler
	HealthHandler      *HealthHandler
}
