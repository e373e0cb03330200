// Package ratings содержит чистую логику отзывов: набор категорий по роли автора,
// обогащение отзывов для отображения, расчет общего рейтинга и подготовку
// категорий к записи.
package ratings

import "trainertrust_backend/internal/models"

const (
	CategoryExpertise       = "expertise"
	CategoryCommunication   = "communication"
	CategoryProfessionalism = "professionalism"
	CategoryCurriculum      = "curriculum"
	CategoryDelivery        = "delivery"
	CategoryRequirements    = "requirements"
	CategorySupport         = "support"
	CategoryPayment         = "payment"
)

// CategoryScore - одна категория формы отзыва
type CategoryScore struct {
	Key   string `json:"key"`
	Score int    `json:"score"`
}

// Компания оценивает тренера
var companyCategories = []string{
	CategoryExpertise,
	CategoryCommunication,
	CategoryProfessionalism,
	CategoryCurriculum,
	CategoryDelivery,
}

// Тренер оценивает компанию
var trainerCategories = []string{
	CategoryCommunication,
	CategoryRequirements,
	CategorySupport,
	CategoryProfessionalism,
	CategoryPayment,
}

var descriptions = map[string]string{
	CategoryExpertise:       "Subject matter expertise",
	CategoryCommunication:   "Communication",
	CategoryProfessionalism: "Professionalism",
	CategoryCurriculum:      "Curriculum design",
	CategoryDelivery:        "Training delivery",
	CategoryRequirements:    "Clarity of requirements",
	CategorySupport:         "Support during engagement",
	CategoryPayment:         "Payment timeliness",
}

// KnownRole сообщает, есть ли у роли собственный набор категорий.
func KnownRole(role models.UserRole) bool {
	return role.IsKnown()
}

// CategoryKeys возвращает ключи категорий для роли автора отзыва.
// Любая роль, кроме company, получает набор тренера.
func CategoryKeys(role models.UserRole) []string {
	src := trainerCategories
	if role == models.UserRoleCompany {
		src = companyCategories
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// CategoriesForRole возвращает пять категорий формы, каждая с нулевой оценкой.
func CategoriesForRole(role models.UserRole) []CategoryScore {
	keys := CategoryKeys(role)
	out := make([]CategoryScore, 0, len(keys))
	for _, k := range keys {
		out = append(out, CategoryScore{Key: k})
	}
	return out
}

// DescriptionFor возвращает описание категории, для неизвестного ключа - сам ключ.
func DescriptionFor(key string) string {
	if d, ok := descriptions[key]; ok {
		return d
	}
	return key
}

func isRoleCategory(role models.UserRole, key string) bool {
	for _, k := range CategoryKeys(role) {
		if k == key {
			return true
		}
	}
	return false
}
