package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"trainertrust_backend/database"
	"trainertrust_backend/internal/auth"
	"trainertrust_backend/internal/cache"
	"trainertrust_backend/internal/config"
	"trainertrust_backend/internal/email"
	"trainertrust_backend/internal/handlers"
	"trainertrust_backend/internal/logger"
	"trainertrust_backend/internal/middleware"
	"trainertrust_backend/internal/repositories"
	"trainertrust_backend/internal/routes"
	"trainertrust_backend/internal/services"
	"trainertrust_backend/internal/validator"
	"trainertrust_backend/internal/workers"
	"trainertrust_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// Dependencies - внешние зависимости роутера. Тесты подставляют свои реализации.
type Dependencies struct {
	Authenticator auth.Authenticator
	Cache         cache.Cache
	EmailProvider email.Provider // nil - письма не отправляются
	Metrics       *middleware.Metrics
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	if cfg.Server.LogLevel != "" {
		logger.SetLevel(cfg.Server.LogLevel)
	}
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.Server.Env == "development")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	defer sqlDB.Close()
	if err = sqlDB.PingContext(ctx); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
		logger.Info("Database schema migrated")
	}

	deps, err := buildDependencies(cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", "error", err)
	}
	defer deps.Cache.Close()
	if deps.EmailProvider != nil {
		defer deps.EmailProvider.Close()
	}

	ginRouter, container := SetupRouter(cfg, gormDB, deps)

	worker := workers.NewApplicationCountWorker(gormDB, repositories.NewJobRepository(), cfg.Workers.ApplicationCountInterval)
	worker.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	container.NotificationService.Wait()
	logger.Info("Server stopped")
}

// SetupRouter собирает сервисы, хэндлеры и gin.Engine
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, deps Dependencies) (*gin.Engine, *services.ServiceContainer) {
	switch cfg.Server.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	if deps.Cache == nil {
		deps.Cache = cache.NoopCache{}
	}

	// 1. Инициализируем сервисы
	serviceContainer := services.NewServiceContainer(services.Dependencies{
		Cache:         deps.Cache,
		CacheTTL:      cfg.Cache.TTL,
		EmailProvider: deps.EmailProvider,
		AppURL:        cfg.Email.AppURL,
	})

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer, deps.Authenticator, gormDB)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg, gormDB, deps.Metrics)

	// 4. Регистрация маршрутов
	routes.RegisterRoutes(ginRouter, appHandlers, deps.Metrics)

	return ginRouter, serviceContainer
}

func buildDependencies(cfg *config.Config, gormDB *gorm.DB) (Dependencies, error) {
	var deps Dependencies

	c, err := cache.New(cache.Config{
		Type:          cfg.Cache.Type,
		RedisAddr:     cfg.Cache.RedisAddr,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
	})
	if err != nil {
		return deps, err
	}
	deps.Cache = c
	logger.Info("Cache initialized", "type", cfg.Cache.Type)

	resolver := NewProfileRoleResolver(gormDB)
	switch cfg.Auth.Provider {
	case "supabase":
		authn, err := auth.NewSupabaseAuthenticator(cfg.Auth.SupabaseURL, cfg.Auth.SupabaseKey, resolver)
		if err != nil {
			return deps, err
		}
		deps.Authenticator = authn
	default:
		deps.Authenticator = auth.NewJWTAuthenticator(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Minute, resolver)
	}
	logger.Info("Authenticator initialized", "provider", cfg.Auth.Provider)

	deps.EmailProvider, err = newEmailProvider(cfg)
	if err != nil {
		return deps, err
	}

	if cfg.Metrics.Enabled {
		deps.Metrics = middleware.NewMetrics()
	}
	return deps, nil
}

func newEmailProvider(cfg *config.Config) (email.Provider, error) {
	if !cfg.Email.Enabled {
		if cfg.Server.Env == "development" {
			logger.Warn("Email is disabled, using mock provider")
			return &MockEmailProvider{}, nil
		}
		logger.Info("Email notifications disabled")
		return nil, nil
	}

	templates, err := email.NewBuiltinTemplateSet()
	if err != nil {
		return nil, err
	}
	provider := email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}, templates)
	if err := provider.Validate(); err != nil {
		return nil, err
	}
	logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	return provider, nil
}

func initializeHandlers(svc *services.ServiceContainer, authenticator auth.Authenticator, gormDB *gorm.DB) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, authenticator)

	return &handlers.AppHandlers{
		ProfileHandler:     handlers.NewProfileHandler(baseHandler, svc.ProfileService),
		JobHandler:         handlers.NewJobHandler(baseHandler, svc.JobService, svc.ApplicationService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, svc.ApplicationService),
		ReviewHandler:      handlers.NewReviewHandler(baseHandler, svc.ReviewService),
		MessageHandler:     handlers.NewMessageHandler(baseHandler, svc.MessageService),
		DashboardHandler:   handlers.NewDashboardHandler(baseHandler, svc.DashboardService),
		HealthHandler:      handlers.NewHealthHandler(gormDB),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, metrics *middleware.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	if metrics != nil {
		router.Use(metrics.Middleware())
	}
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}
