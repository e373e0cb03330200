package repositories

import (
	"trainertrust_backend/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	// Create пишет отзыв вместе с оценками по категориям
	Create(db *gorm.DB, review *models.Review) error
	FindByReviewee(db *gorm.DB, revieweeID string) ([]models.Review, error)
	FindByReviewer(db *gorm.DB, reviewerID string) ([]models.Review, error)
	GetRatingStats(db *gorm.DB, revieweeID string) (*RatingStats, error)
}

type ReviewRepositoryImpl struct{}

// RatingStats - сводка по полученным отзывам
type RatingStats struct {
	Ratings      []int         `json:"-"`
	TotalReviews int64         `json:"total_reviews"`
	RatingCounts map[int]int64 `json:"rating_counts"`
}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	return db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindByReviewee(db *gorm.DB, revieweeID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Categories").
		Where("reviewee_id = ?", revieweeID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) FindByReviewer(db *gorm.DB, reviewerID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Categories").
		Where("reviewer_id = ?", reviewerID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) GetRatingStats(db *gorm.DB, revieweeID string) (*RatingStats, error) {
	var ratings []int
	if err := db.Model(&models.Review{}).
		Where("reviewee_id = ?", revieweeID).
		Pluck("rating", &ratings).Error; err != nil {
		return nil, err
	}

	stats := &RatingStats{
		Ratings:      ratings,
		TotalReviews: int64(len(ratings)),
		RatingCounts: make(map[int]int64, 5),
	}
	for star := 1; star <= 5; star++ {
		stats.RatingCounts[star] = 0
	}
	for _, v := range ratings {
		stats.RatingCounts[v]++
	}
	return stats, nil
}
