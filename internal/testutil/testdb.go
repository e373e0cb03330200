package testutil

import (
	"fmt"
	"testing"
	"time"

	"trainertrust_backend/database"
	"trainertrust_backend/internal/config"
	"trainertrust_backend/internal/logger"
	"trainertrust_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestConfig - конфиг для тестов: sqlite в памяти, JWT, без кэша и писем
func TestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.CORSOrigins = []string{"*"}
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	cfg.Database.LogLevel = "silent"
	cfg.Database.SlowQuery = time.Second
	cfg.Auth.Provider = "jwt"
	cfg.Auth.JWTSecret = "test-secret-please-ignore"
	cfg.Auth.TokenTTL = 60
	cfg.Cache.Type = "memory"
	cfg.Cache.TTL = time.Minute
	cfg.Email.AppURL = "http://localhost:5173"
	return cfg
}

// NewTestDB открывает отдельную sqlite базу в памяти с мигрированной схемой.
// База закрывается по окончании теста.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return OpenDB(t, TestConfig())
}

func OpenDB(t *testing.T, cfg *config.Config) *gorm.DB {
	t.Helper()
	logger.Init("test")

	db, err := database.Open(cfg)
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateProfile создает профиль с указанной ролью (пустая роль допустима)
func CreateProfile(t *testing.T, db *gorm.DB, name string, role models.UserRole) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		Name:  name,
		Email: fmt.Sprintf("%s_%s@test.com", role, uuid.NewString()[:8]),
		Role:  role,
	}
	require.NoError(t, db.Create(profile).Error, "failed to create profile")
	return profile
}

// CreateJob создает вакансию компании
func CreateJob(t *testing.T, db *gorm.DB, companyID, title string) *models.Job {
	t.Helper()
	job := &models.Job{
		CompanyID:    companyID,
		Title:        title,
		Location:     "Remote",
		Requirements: models.StringList{"5+ years"},
		Skills:       models.StringList{"go", "sql"},
	}
	require.NoError(t, db.Omit("Company").Create(job).Error, "failed to create job")
	return job
}

// CreateApplication создает отклик тренера на вакансию
func CreateApplication(t *testing.T, db *gorm.DB, jobID, trainerID string, status models.ApplicationStatus) *models.JobApplication {
	t.Helper()
	app := &models.JobApplication{JobID: jobID, TrainerID: trainerID, Status: status}
	require.NoError(t, db.Omit("Job", "Trainer").Create(app).Error, "failed to create application")
	return app
}

// CreateReview пишет отзыв напрямую, минуя проверки сервиса
func CreateReview(t *testing.T, db *gorm.DB, reviewerID, revieweeID string, role models.UserRole, rating int, categories map[string]int) *models.Review {
	t.Helper()
	review := &models.Review{
		ReviewerID:   reviewerID,
		RevieweeID:   revieweeID,
		ReviewerRole: role,
		Rating:       rating,
		Review:       "test review",
	}
	for k, v := range categories {
		review.Categories = append(review.Categories, models.ReviewCategoryRating{Category: k, Score: v})
	}
	require.NoError(t, db.Create(review).Error, "failed to create review")
	return review
}
