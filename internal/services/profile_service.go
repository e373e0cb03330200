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

type ProfileService interface {
	Get(ctx context.Context, db *gorm.DB, id string) (*models.Profile, error)
	ListByRole(ctx context.Context, db *gorm.DB, role models.UserRole) ([]models.Profile, error)
	Companies(ctx context.Context, db *gorm.DB) ([]models.CompanySummary, error)
	CreateOwn(ctx context.Context, db *gorm.DB, session *auth.Session, req *dto.CreateProfileRequest) (*models.Profile, error)
	UpdateOwn(ctx context.Context, db *gorm.DB, session *auth.Session, req *dto.UpdateProfileRequest) (*models.Profile, error)
	// RoleFor используется аутентификатором, когда роли нет в токене
	RoleFor(ctx context.Context, db *gorm.DB, userID string) (models.UserRole, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Get(ctx context.Context, db *gorm.DB, id string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByID(db.WithContext(ctx), id)
	if err != nil {
		return nil, handleProfileError(err)
	}
	return profile, nil
}

func (s *profileService) ListByRole(ctx context.Context, db *gorm.DB, role models.UserRole) ([]models.Profile, error) {
	if !role.IsKnown() {
		return nil, apperrors.ErrInvalidUserRole.Clone()
	}
	profiles, err := s.profileRepo.FindByRole(db.WithContext(ctx), role)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return profiles, nil
}

func (s *profileService) Companies(ctx context.Context, db *gorm.DB) ([]models.CompanySummary, error) {
	companies, err := s.profileRepo.FindCompanies(db.WithContext(ctx))
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return companies, nil
}

func (s *profileService) CreateOwn(ctx context.Context, db *gorm.DB, session *auth.Session, req *dto.CreateProfileRequest) (*models.Profile, error) {
	role := models.UserRole(req.Role)
	if !role.IsKnown() {
		return nil, apperrors.ErrInvalidUserRole.Clone()
	}

	email := req.Email
	if email == "" {
		email = session.Email
	}

	profile := &models.Profile{
		Name:      req.Name,
		Email:     email,
		Role:      role,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
		Location:  req.Location,
	}
	profile.ID = session.UserID
	applyTrainerFields(profile, &req.TrainerFields)
	applyCompanyFields(profile, &req.CompanyFields)

	if err := s.profileRepo.Create(db.WithContext(ctx), profile); err != nil {
		return nil, handleProfileError(err)
	}

	logger.CtxInfo(ctx, "profile created", "profile_id", profile.ID, "role", profile.Role)
	return profile, nil
}

func (s *profileService) UpdateOwn(ctx context.Context, db *gorm.DB, session *auth.Session, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	profile, err := s.profileRepo.FindByID(tx, session.UserID)
	if err != nil {
		return nil, handleProfileError(err)
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	applyTrainerFields(profile, &req.TrainerFields)
	applyCompanyFields(profile, &req.CompanyFields)

	if err := s.profileRepo.Update(tx, profile); err != nil {
		return nil, handleProfileError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.WriteFailed(err, "profile")
	}
	return profile, nil
}

func (s *profileService) RoleFor(ctx context.Context, db *gorm.DB, userID string) (models.UserRole, error) {
	profile, err := s.profileRepo.FindByID(db.WithContext(ctx), userID)
	if err != nil {
		return "", err
	}
	return profile.Role, nil
}

func applyTrainerFields(p *models.Profile, f *dto.TrainerFields) {
	if f.Skills != nil {
		p.SetSkills(f.Skills)
	}
	if f.Languages != nil {
		p.Languages = models.EncodeList(f.Languages)
	}
	if f.Education != nil {
		p.Education = models.EncodeList(f.Education)
	}
	if f.Certifications != nil {
		p.Certifications = models.EncodeList(f.Certifications)
	}
	if f.HourlyRate != nil {
		p.HourlyRate = f.HourlyRate
	}
	if f.ExperienceYears != nil {
		p.ExperienceYears = f.ExperienceYears
	}
}

func applyCompanyFields(p *models.Profile, f *dto.CompanyFields) {
	if f.CompanySize != nil {
		p.CompanySize = *f.CompanySize
	}
	if f.FoundedYear != nil {
		p.FoundedYear = f.FoundedYear
	}
	if f.Website != nil {
		p.Website = *f.Website
	}
	if f.Specializations != nil {
		p.SetSpecializations(f.Specializations)
	}
	if f.TrainingPhilosophy != nil {
		p.TrainingPhilosophy = *f.TrainingPhilosophy
	}
	if f.AffiliatedColleges != nil {
		p.AffiliatedColleges = models.EncodeList(f.AffiliatedColleges)
	}
}

func handleProfileError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound.Clone()
	case errors.Is(err, repositories.ErrProfileAlreadyExists):
		return apperrors.ErrProfileExists.Clone()
	default:
		return apperrors.DatabaseError(err)
	}
}
