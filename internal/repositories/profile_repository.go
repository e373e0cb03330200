package repositories

import (
	"errors"

	"trainertrust_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this user")
)

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.Profile) error
	FindByID(db *gorm.DB, id string) (*models.Profile, error)
	// FindByIDs загружает профили одним запросом. Отсутствующие ID просто не попадают в результат.
	FindByIDs(db *gorm.DB, ids []string) (map[string]*models.Profile, error)
	FindByRole(db *gorm.DB, role models.UserRole) ([]models.Profile, error)
	FindCompanies(db *gorm.DB) ([]models.CompanySummary, error)
	Update(db *gorm.DB, profile *models.Profile) error
	Exists(db *gorm.DB, id string) (bool, error)
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.Profile) error {
	if err := db.Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ProfileRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByIDs(db *gorm.DB, ids []string) (map[string]*models.Profile, error) {
	out := make(map[string]*models.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var profiles []models.Profile
	if err := db.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for i := range profiles {
		out[profiles[i].ID] = &profiles[i]
	}
	return out, nil
}

func (r *ProfileRepositoryImpl) FindByRole(db *gorm.DB, role models.UserRole) ([]models.Profile, error) {
	var profiles []models.Profile
	err := db.Where("role = ?", role).Order("name ASC").Find(&profiles).Error
	return profiles, err
}

// FindCompanies - аналог процедуры get_companies: id/name/email/role всех компаний
func (r *ProfileRepositoryImpl) FindCompanies(db *gorm.DB) ([]models.CompanySummary, error) {
	var companies []models.CompanySummary
	err := db.Model(&models.Profile{}).
		Select("id, name, email, role").
		Where("role = ?", models.UserRoleCompany).
		Order("name ASC").
		Scan(&companies).Error
	return companies, err
}

func (r *ProfileRepositoryImpl) Update(db *gorm.DB, profile *models.Profile) error {
	result := db.Model(profile).Select("*").Omit("id", "created_at", "role").Updates(profile)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) Exists(db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.Model(&models.Profile{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
