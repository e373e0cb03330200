package validator

import (
	"trainertrust_backend/internal/logger"
	"trainertrust_backend/internal/models"
	"trainertrust_backend/internal/ratings"

	"github.com/go-playground/validator/v10"
)

// Теги правил маркетплейса, используются в validate:"..." у DTO
var marketplaceRules = map[string]validator.Func{
	"is-user-role":          knownRole,
	"is-application-status": knownApplicationStatus,
	"category-scores":       categoryScoresInRange,
}

func registerCustomRules(v *validator.Validate) {
	for tag, fn := range marketplaceRules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			logger.Fatal("failed to register custom validation tag", "tag", tag, "error", err)
		}
	}
}

// Пустые строки пропускаем: обязательность задает тег required.

func knownRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	return role == "" || models.UserRole(role).IsKnown()
}

func knownApplicationStatus(fl validator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "" || models.ApplicationStatus(status).IsKnown()
}

// categoryScoresInRange проверяет только диапазон. Принадлежность категории
// роли автора проверяет сервис отзывов.
func categoryScoresInRange(fl validator.FieldLevel) bool {
	scores, ok := fl.Field().Interface().(map[string]int)
	if !ok {
		return false
	}
	for _, score := range scores {
		if score < ratings.MinCategoryScore || score > ratings.MaxCategoryScore {
			return false
		}
	}
	return true
}
