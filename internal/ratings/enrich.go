package ratings

import (
	"time"

	"trainertrust_backend/internal/models"
)

const (
	UnknownUserName   = "Unknown User"
	PlaceholderAvatar = "/placeholder.svg"
)

// Direction - с чьей стороны смотрим на отзыв
type Direction int

const (
	// Received - отзывы о пользователе, собеседник = автор
	Received Direction = iota
	// Given - отзывы, оставленные пользователем, собеседник = адресат
	Given
)

// EnrichedReview - отзыв, готовый к отображению
type EnrichedReview struct {
	ID           string          `json:"id"`
	ReviewerID   string          `json:"reviewer_id"`
	RevieweeID   string          `json:"reviewee_id"`
	ReviewerRole models.UserRole `json:"reviewer_role"`
	JobTitle     string          `json:"job_title,omitempty"`
	Rating       int             `json:"rating"`
	Review       string          `json:"review"`
	CreatedAt    time.Time       `json:"created_at"`

	ReviewerName   string `json:"reviewer_name,omitempty"`
	ReviewerAvatar string `json:"reviewer_avatar,omitempty"`
	RevieweeName   string `json:"reviewee_name,omitempty"`
	RevieweeAvatar string `json:"reviewee_avatar,omitempty"`

	Categories map[string]int `json:"categories"`
}

// Enrich собирает отображаемый отзыв. counterpart может быть nil - тогда
// подставляются значения по умолчанию. lookedUpRole используется, только если
// у отзыва не сохранена роль автора.
func Enrich(review *models.Review, counterpart *models.Profile, lookedUpRole models.UserRole, dir Direction) EnrichedReview {
	role := review.ReviewerRole
	if role == "" {
		role = lookedUpRole
	}

	out := EnrichedReview{
		ID:           review.ID,
		ReviewerID:   review.ReviewerID,
		RevieweeID:   review.RevieweeID,
		ReviewerRole: role,
		JobTitle:     review.JobTitle,
		Rating:       review.Rating,
		Review:       review.Review,
		CreatedAt:    review.CreatedAt,
		Categories:   readCategories(review, role),
	}

	name, avatar := displayIdentity(counterpart)
	if dir == Received {
		out.ReviewerName, out.ReviewerAvatar = name, avatar
	} else {
		out.RevieweeName, out.RevieweeAvatar = name, avatar
	}
	return out
}

// EnrichAll обогащает пачку отзывов по заранее загруженным профилям.
// Отсутствие профиля влияет только на свою строку.
func EnrichAll(reviews []models.Review, profiles map[string]*models.Profile, dir Direction) []EnrichedReview {
	out := make([]EnrichedReview, 0, len(reviews))
	for i := range reviews {
		r := &reviews[i]
		counterpartID := r.ReviewerID
		if dir == Given {
			counterpartID = r.RevieweeID
		}

		var role models.UserRole
		if reviewer := profiles[r.ReviewerID]; reviewer != nil {
			role = reviewer.Role
		}
		out = append(out, Enrich(r, profiles[counterpartID], role, dir))
	}
	return out
}

// LookupIDs возвращает уникальные ID профилей, нужные для EnrichAll:
// собеседников и авторов без сохраненной роли.
func LookupIDs(reviews []models.Review, dir Direction) []string {
	seen := make(map[string]struct{}, len(reviews))
	ids := make([]string, 0, len(reviews))
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, r := range reviews {
		if dir == Received {
			add(r.ReviewerID)
		} else {
			add(r.RevieweeID)
		}
		if r.ReviewerRole == "" {
			add(r.ReviewerID)
		}
	}
	return ids
}

func readCategories(review *models.Review, role models.UserRole) map[string]int {
	stored := review.CategoryMap()
	keys := CategoryKeys(role)
	out := make(map[string]int, len(keys))
	for _, k := range keys {
		out[k] = stored[k]
	}
	return out
}

func displayIdentity(p *models.Profile) (string, string) {
	if p == nil {
		return UnknownUserName, PlaceholderAvatar
	}
	name, avatar := p.Name, p.AvatarURL
	if name == "" {
		name = UnknownUserName
	}
	if avatar == "" {
		avatar = PlaceholderAvatar
	}
	return name, avatar
}
