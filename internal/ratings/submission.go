package ratings

import (
	"errors"
	"fmt"

	"trainertrust_backend/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5

	MinCategoryScore = 0
	MaxCategoryScore = 5
)

var (
	ErrUnknownRole        = errors.New("reviewer role has no rating categories")
	ErrUnknownCategory    = errors.New("category is not rated by this role")
	ErrCategoryOutOfRange = errors.New("category score must be between 0 and 5")
	ErrOverallOutOfRange  = errors.New("rating must be between 1 and 5")
)

// ValidateRating проверяет общий рейтинг отзыва.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrOverallOutOfRange
	}
	return nil
}

// BuildCategoryRatings превращает введенные оценки в ровно пять строк для роли автора.
// Пропущенные категории получают 0, чужие для роли категории отклоняются.
func BuildCategoryRatings(role models.UserRole, input map[string]int) ([]models.ReviewCategoryRating, error) {
	if !KnownRole(role) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	for key, score := range input {
		if !isRoleCategory(role, key) {
			return nil, fmt.Errorf("%w: %q for %s", ErrUnknownCategory, key, role)
		}
		if score < MinCategoryScore || score > MaxCategoryScore {
			return nil, fmt.Errorf("%w: %s=%d", ErrCategoryOutOfRange, key, score)
		}
	}

	keys := CategoryKeys(role)
	out := make([]models.ReviewCategoryRating, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.ReviewCategoryRating{Category: k, Score: input[k]})
	}
	return out, nil
}
