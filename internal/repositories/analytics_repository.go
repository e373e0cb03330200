package repositories

import (
	"trainertrust_backend/internal/models"

	"gorm.io/gorm"
)

// AnalyticsRepository - агрегирующие запросы для дашборда
type AnalyticsRepository interface {
	CountApplicationsByStatusForTrainer(db *gorm.DB, trainerID string) (map[models.ApplicationStatus]int64, error)
	CountApplicationsByStatusForCompany(db *gorm.DB, companyID string) (map[models.ApplicationStatus]int64, error)
	CountReviewsGiven(db *gorm.DB, reviewerID string) (int64, error)
}

type analyticsRepository struct{}

func NewAnalyticsRepository() AnalyticsRepository {
	return &analyticsRepository{}
}

type statusCount struct {
	Status models.ApplicationStatus
	Total  int64
}

func (r *analyticsRepository) CountApplicationsByStatusForTrainer(db *gorm.DB, trainerID string) (map[models.ApplicationStatus]int64, error) {
	var rows []statusCount
	err := db.Model(&models.JobApplication{}).
		Select("status, COUNT(*) AS total").
		Where("trainer_id = ?", trainerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toStatusMap(rows), nil
}

func (r *analyticsRepository) CountApplicationsByStatusForCompany(db *gorm.DB, companyID string) (map[models.ApplicationStatus]int64, error) {
	var rows []statusCount
	err := db.Model(&models.JobApplication{}).
		Select("job_applications.status AS status, COUNT(*) AS total").
		Joins("JOIN jobs ON jobs.id = job_applications.job_id").
		Where("jobs.company_id = ?", companyID).
		Group("job_applications.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toStatusMap(rows), nil
}

func (r *analyticsRepository) CountReviewsGiven(db *gorm.DB, reviewerID string) (int64, error) {
	var count int64
	err := db.Model(&models.Review{}).Where("reviewer_id = ?", reviewerID).Count(&count).Error
	return count, err
}

// toStatusMap всегда содержит все известные статусы, даже с нулем
func toStatusMap(rows []statusCount) map[models.ApplicationStatus]int64 {
	out := make(map[models.ApplicationStatus]int64, len(models.ApplicationStatuses))
	for _, s := range models.ApplicationStatuses {
		out[s] = 0
	}
	for _, row := range rows {
		out[row.Status] += row.Total
	}
	return out
}
