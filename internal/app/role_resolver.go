package app

import (
	"context"

	"trainertrust_backend/internal/models"
	"trainertrust_backend/internal/repositories"
	"trainertrust_backend/internal/services"

	"gorm.io/gorm"
)

// ProfileRoleResolver берет роль из профиля, когда провайдер токенов ее не знает
// (токены Supabase не содержат роль приложения).
type ProfileRoleResolver struct {
	db       *gorm.DB
	profiles services.ProfileService
}

func NewProfileRoleResolver(db *gorm.DB) *ProfileRoleResolver {
	return &ProfileRoleResolver{
		db:       db,
		profiles: services.NewProfileService(repositories.NewProfileRepository()),
	}
}

func (r *ProfileRoleResolver) RoleFor(ctx context.Context, userID string) (models.UserRole, error) {
	return r.profiles.RoleFor(ctx, r.db, userID)
}
