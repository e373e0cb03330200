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

type ApplicationService interface {
	Apply(ctx context.Context, db *gorm.DB, session *auth.Session, jobID string, req *dto.ApplyRequest) (*models.JobApplication, error)
	ForJob(ctx context.Context, db *gorm.DB, session *auth.Session, jobID string) (*dto.ApplicationListResponse, error)
	Mine(ctx context.Context, db *gorm.DB, session *auth.Session) (*dto.ApplicationListResponse, error)
	HasApplied(ctx context.Context, db *gorm.DB, session *auth.Session, jobID string) (*dto.HasAppliedResponse, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, session *auth.Session, applicationID string, req *dto.UpdateApplicationStatusRequest) (*models.JobApplication, error)
	Cancel(ctx context.Context, db *gorm.DB, session *auth.Session, applicationID string) error
}

type applicationService struct {
	appRepo     repositories.ApplicationRepository
	jobRepo     repositories.JobRepository
	profileRepo repositories.ProfileRepository
	notifier    NotificationService
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	notifier NotificationService,
) ApplicationService {
	return &applicationService{
		appRepo:     appRepo,
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
	}
}

// Apply - отклик тренера. Повторный отклик дает 409 и при гонке: его ловит уникальный индекс.
func (s *applicationService) Apply(ctx context.Context, db *gorm.DB, session *auth.Session, jobID string, req *dto.ApplyRequest) (*models.JobApplication, error) {
	if session.Role != models.UserRoleTrainer {
		return nil, apperrors.ErrInvalidUserRole.Clone()
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	job, err := s.jobRepo.FindByID(tx, jobID)
	if err != nil {
		return nil, handleJobError(err)
	}

	applied, err := s.appRepo.Exists(tx, jobID, session.UserID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if applied {
		return nil, apperrors.ErrAlreadyApplied.Clone()
	}

	application := &models.JobApplication{
		JobID:     jobID,
		TrainerID: session.UserID,
		Status:    models.ApplicationStatusPending,
		CoverNote: req.CoverNote,
	}
	if err := s.appRepo.Create(tx, application); err != nil {
		return nil, handleApplicationError(err)
	}
	if err := s.jobRepo.AdjustApplicationCount(tx, jobID, 1); err != nil {
		return nil, apperrors.WriteFailed(err, "application")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, handleApplicationError(err)
	}

	logger.CtxInfo(ctx, "application created", "application_id", application.ID, "job_id", jobID)

	if s.notifier != nil {
		s.notifier.ApplicationReceived(job.Company, s.profileForNotice(ctx, db, session.UserID), job)
	}
	return application, nil
}

func (s *applicationService) ForJob(ctx context.Context, db *gorm.DB, session *auth.Session, jobID string) (*dto.ApplicationListResponse, error) {
	db = db.WithContext(ctx)

	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, handleJobError(err)
	}
	if job.CompanyID != session.UserID {
		return nil, apperrors.ErrInsufficientPermissions.Clone()
	}

	apps, err := s.appRepo.FindByJob(db, jobID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &dto.ApplicationListResponse{Applications: apps, Total: len(apps)}, nil
}

func (s *applicationService) Mine(ctx context.Context, db *gorm.DB, session *auth.Session) (*dto.ApplicationListResponse, error) {
	if session.Role != models.UserRoleTrainer {
		return nil, apperrors.ErrInvalidUserRole.Clone()
	}
	apps, err := s.appRepo.FindByTrainer(db.WithContext(ctx), session.UserID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &dto.ApplicationListResponse{Applications: apps, Total: len(apps)}, nil
}

func (s *applicationService) HasApplied(ctx context.Context, db *gorm.DB, session *auth.Session, jobID string) (*dto.HasAppliedResponse, error) {
	applied, err := s.appRepo.Exists(db.WithContext(ctx), jobID, session.UserID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &dto.HasAppliedResponse{JobID: jobID, HasApplied: applied}, nil
}

// UpdateStatus - смена статуса владельцем вакансии
func (s *applicationService) UpdateStatus(ctx context.Context, db *gorm.DB, session *auth.Session, applicationID string, req *dto.UpdateApplicationStatusRequest) (*models.JobApplication, error) {
	status := models.ApplicationStatus(req.Status)
	if !status.IsKnown() {
		return nil, apperrors.ErrInvalidStatus(apperrors.DomainApplication, "Unknown application status")
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	application, err := s.appRepo.FindByID(tx, applicationID)
	if err != nil {
		return nil, handleApplicationError(err)
	}
	job, err := s.jobRepo.FindByID(tx, application.JobID)
	if err != nil {
		return nil, handleJobError(err)
	}
	if job.CompanyID != session.UserID {
		return nil, apperrors.ErrInsufficientPermissions.Clone()
	}

	if application.Status == status {
		return application, nil
	}
	if err := s.appRepo.UpdateStatus(tx, applicationID, status); err != nil {
		return nil, handleApplicationError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.WriteFailed(err, "application")
	}
	application.Status = status

	logger.CtxInfo(ctx, "application status updated", "application_id", applicationID, "status", status)

	if s.notifier != nil {
		s.notifier.ApplicationStatusChanged(s.profileForNotice(ctx, db, application.TrainerID), job, status)
	}
	return application, nil
}

// Cancel удаляет отклик тренера. Чужой или уже удаленный отклик - 404.
func (s *applicationService) Cancel(ctx context.Context, db *gorm.DB, session *auth.Session, applicationID string) error {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	application, err := s.appRepo.FindByID(tx, applicationID)
	if err != nil {
		return handleApplicationError(err)
	}
	if err := s.appRepo.DeleteByIDAndTrainer(tx, applicationID, session.UserID); err != nil {
		return handleApplicationError(err)
	}
	if err := s.jobRepo.AdjustApplicationCount(tx, application.JobID, -1); err != nil {
		return apperrors.WriteFailed(err, "application")
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.WriteFailed(err, "application")
	}

	logger.CtxInfo(ctx, "application cancelled", "application_id", applicationID)
	return nil
}

func handleApplicationError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrApplicationNotFound):
		return apperrors.ErrApplicationNotFound.Clone()
	case errors.Is(err, repositories.ErrApplicationExists):
		return apperrors.ErrAlreadyApplied.Clone()
	default:
		return apperrors.DatabaseError(err)
	}
}

// profileForNotice - профиль для текста письма. nil при ошибке: письмо уйдет
// с запасным именем, а без адреса не уйдет вовсе.
func (s *applicationService) profileForNotice(ctx context.Context, db *gorm.DB, userID string) *models.Profile {
	profile, err := s.profileRepo.FindByID(db.WithContext(ctx), userID)
	if err != nil {
		logger.CtxWarn(ctx, "profile lookup for notification failed", "user_id", userID, "error", err)
		return nil
	}
	return profile
}
