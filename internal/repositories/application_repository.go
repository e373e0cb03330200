package repositories

import (
	"errors"

	"trainertrust_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationExists   = errors.New("trainer already applied to this job")
)

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.JobApplication) error
	FindByID(db *gorm.DB, id string) (*models.JobApplication, error)
	FindByJob(db *gorm.DB, jobID string) ([]models.JobApplication, error)
	FindByTrainer(db *gorm.DB, trainerID string) ([]models.JobApplication, error)
	Exists(db *gorm.DB, jobID, trainerID string) (bool, error)
	UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error
	// DeleteByIDAndTrainer удаляет отклик только если он принадлежит тренеру
	DeleteByIDAndTrainer(db *gorm.DB, id, trainerID string) error
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, app *models.JobApplication) error {
	if err := db.Omit("Job", "Trainer").Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrApplicationExists
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.JobApplication, error) {
	var app models.JobApplication
	if err := db.Preload("Job").Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindByJob(db *gorm.DB, jobID string) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := db.Preload("Trainer").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) FindByTrainer(db *gorm.DB, trainerID string) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := db.Preload("Job").Preload("Job.Company").
		Where("trainer_id = ?", trainerID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) Exists(db *gorm.DB, jobID, trainerID string) (bool, error) {
	var count int64
	err := db.Model(&models.JobApplication{}).
		Where("job_id = ? AND trainer_id = ?", jobID, trainerID).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error {
	result := db.Model(&models.JobApplication{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) DeleteByIDAndTrainer(db *gorm.DB, id, trainerID string) error {
	result := db.Where("id = ? AND trainer_id = ?", id, trainerID).Delete(&models.JobApplication{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
