package models

// Review - отзыв одного участника о другом.
// ReviewerRole фиксирует роль автора на момент создания отзыва.
type Review struct {
	BaseModel
	ReviewerID   string   `gorm:"type:uuid;not null;index;check:chk_reviews_not_self,reviewer_id <> reviewee_id" json:"reviewer_id"`
	RevieweeID   string   `gorm:"type:uuid;not null;index" json:"reviewee_id"`
	ReviewerRole UserRole `gorm:"type:varchar(20)" json:"reviewer_role"`
	JobTitle     string   `json:"job_title,omitempty"`
	Rating       int      `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5" json:"rating"`
	Review       string   `json:"review"`

	Categories []ReviewCategoryRating `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"-"`
}

// ReviewCategoryRating - оценка по одной категории.
// У отзыва есть строки только для категорий роли автора.
type ReviewCategoryRating struct {
	ReviewID string `gorm:"type:uuid;primaryKey" json:"-"`
	Category string `gorm:"type:varchar(32);primaryKey" json:"category"`
	Score    int    `gorm:"not null;default:0;check:chk_review_category_score,score >= 0 AND score <= 5" json:"score"`
}

// CategoryMap возвращает оценки отзыва в виде "категория -> балл"
func (r *Review) CategoryMap() map[string]int {
	out := make(map[string]int, len(r.Categories))
	for _, c := range r.Categories {
		out[c.Category] = c.Score
	}
	return out
}
