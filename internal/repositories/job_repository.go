package repositories

import (
	"errors"

	"trainertrust_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	// List возвращает вакансии от новых к старым; companyID == "" - без фильтра
	List(db *gorm.DB, companyID string) ([]models.Job, error)
	CountByCompany(db *gorm.DB, companyID string) (int64, error)
	AdjustApplicationCount(db *gorm.DB, jobID string, delta int) error
	ReconcileApplicationCounts(db *gorm.DB) (int64, error)
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Omit("Company").Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	if err := db.Preload("Company").Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) List(db *gorm.DB, companyID string) ([]models.Job, error) {
	var jobs []models.Job
	query := db.Preload("Company").Order("created_at DESC")
	if companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}
	err := query.Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) CountByCompany(db *gorm.DB, companyID string) (int64, error) {
	var count int64
	err := db.Model(&models.Job{}).Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}

func (r *JobRepositoryImpl) AdjustApplicationCount(db *gorm.DB, jobID string, delta int) error {
	return db.Model(&models.Job{}).
		Where("id = ?", jobID).
		UpdateColumn("application_count", gorm.Expr("application_count + ?", delta)).Error
}

// ReconcileApplicationCounts выравнивает денормализованный счетчик откликов
// с реальным числом строк job_applications. Возвращает число исправленных вакансий.
func (r *JobRepositoryImpl) ReconcileApplicationCounts(db *gorm.DB) (int64, error) {
	result := db.Exec(`
		UPDATE jobs
		SET application_count = (
			SELECT COUNT(*) FROM job_applications WHERE job_applications.job_id = jobs.id
		)
		WHERE application_count <> (
			SELECT COUNT(*) FROM job_applications WHERE job_applications.job_id = jobs.id
		)`)
	return result.RowsAffected, result.Error
}
