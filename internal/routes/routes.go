package routes

import (
	"trainertrust_backend/internal/handlers"
	"trainertrust_backend/internal/logger"
	"trainertrust_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует служебные маршруты и HTTP API v1.
// metrics == nil - /metrics не публикуется.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	metrics *middleware.Metrics,
) {
	ginRouter.GET("/health", appHandlers.HealthHandler.Health)
	if metrics != nil {
		ginRouter.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.ProfileHandler.RegisterRoutes(api)
		appHandlers.JobHandler.RegisterRoutes(api)
		appHandlers.ApplicationHandler.RegisterRoutes(api)
		appHandlers.ReviewHandler.RegisterRoutes(api)
		appHandlers.MessageHandler.RegisterRoutes(api)
		appHandlers.DashboardHandler.RegisterRoutes(api)
	}
	logger.Debug("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
