package services

import (
	"context"
	"errors"

	"trainertrust_backend/internal/auth"
	"trainertrust_backend/internal/logger"
	"trainertrust_backend/internal/models"
	"trainertrust_backend/internal/repositories"
	"trainertrust_backend/internal/services/dto"
	"trainertrust_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type JobService interface {
	List(ctx context.Context, db *gorm.DB, companyID string) ([]models.Job, error)
	Get(ctx context.Context, db *gorm.DB, id string) (*models.Job, error)
	Create(ctx context.Context, db *gorm.DB, session *auth.Session, req *dto.CreateJobRequest) (*models.Job, error)
}

type jobService struct {
	jobRepo     repositories.JobRepository
	profileRepo repositories.ProfileRepository
}

func NewJobService(jobRepo repositories.JobRepository, profileRepo repositories.ProfileRepository) JobService {
	return &jobService{jobRepo: jobRepo, profileRepo: profileRepo}
}

// List возвращает вакансии, новые первыми. Пустой companyID - все вакансии.
func (s *jobService) List(ctx context.Context, db *gorm.DB, companyID string) ([]models.Job, error) {
	jobs, err := s.jobRepo.List(db.WithContext(ctx), companyID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return jobs, nil
}

func (s *jobService) Get(ctx context.Context, db *gorm.DB, id string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(db.WithContext(ctx), id)
	if err != nil {
		return nil, handleJobError(err)
	}
	return job, nil
}

func (s *jobService) Create(ctx context.Context, db *gorm.DB, session *auth.Session, req *dto.CreateJobRequest) (*models.Job, error) {
	if session.Role != models.UserRoleCompany {
		return nil, apperrors.ErrInvalidUserRole.Clone()
	}

	db = db.WithContext(ctx)

	exists, err := s.profileRepo.Exists(db, session.UserID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if !exists {
		return nil, apperrors.ErrProfileNotFound.Clone()
	}

	job := &models.Job{
		CompanyID:        session.UserID,
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		Rate:             req.Rate,
		Duration:         req.Duration,
		StartDate:        req.StartDate,
		Requirements:     models.StringList(req.Requirements),
		Responsibilities: models.StringList(req.Responsibilities),
		Skills:           models.StringList(req.Skills),
	}

	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, apperrors.WriteFailed(err, "job")
	}

	logger.CtxInfo(ctx, "job created", "job_id", job.ID, "company_id", job.CompanyID)
	return job, nil
}

func handleJobError(err error) error {
	if errors.Is(err, repositories.ErrJobNotFound) {
		return apperrors.ErrJobNotFound.Clone()
	}
	return apperrors.DatabaseError(err)
}
