package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"trainertrust_backend/internal/auth"
	"trainertrust_backend/internal/cache"
	"trainertrust_backend/internal/logger"
	"trainertrust_backend/internal/models"
	"trainertrust_backend/internal/ratings"
	"trainertrust_backend/internal/repositories"
	"trainertrust_backend/internal/services/dto"
	"trainertrust_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewService interface {
	SubmitReview(ctx context.Context, db *gorm.DB, session *auth.Session, req *dto.SubmitReviewRequest) (*ratings.EnrichedReview, error)
	ReceivedReviews(ctx context.Context, db *gorm.DB, userID string) (*dto.ReviewListResponse, error)
	GivenReviews(ctx context.Context, db *gorm.DB, userID string) (*dto.ReviewListResponse, error)
	RatingSummary(ctx context.Context, db *gorm.DB, userID string) (*dto.RatingSummaryResponse, error)
	CategoryForm(role models.UserRole) *dto.CategoryFormResponse
}

type reviewService struct {
	reviewRepo  repositories.ReviewRepository
	profileRepo repositories.ProfileRepository
	cache       cache.Cache
	cacheTTL    time.Duration
	notifier    NotificationService
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	profileRepo repositories.ProfileRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	notifier NotificationService,
) ReviewService {
	if c == nil {
		c = cache.NoopCache{}
	}
	return &reviewService{
		reviewRepo:  reviewRepo,
		profileRepo: profileRepo,
		cache:       c,
		cacheTTL:    cacheTTL,
		notifier:    notifier,
	}
}

// ---------------- Submission ----------------

func (s *reviewService) SubmitReview(ctx context.Context, db *gorm.DB, session *auth.Session, req *dto.SubmitReviewRequest) (*ratings.EnrichedReview, error) {
	if session == nil || session.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}
	if !ratings.KnownRole(session.Role) {
		return nil, apperrors.ErrInvalidUserRole.Clone().WithDetails(map[string]string{
			"role": "Complete your profile with a trainer or company role before leaving reviews",
		})
	}

	revieweeID := strings.TrimSpace(req.RevieweeID)
	if revieweeID == "" {
		return nil, apperrors.ValidationError(map[string]string{"reviewee_id": "This field is required"})
	}
	jobTitle := strings.TrimSpace(req.JobTitle)
	body := strings.TrimSpace(req.Review)
	if missing := requiredFields(map[string]string{"job_title": jobTitle, "review": body}); len(missing) > 0 {
		return nil, apperrors.ValidationError(missing)
	}
	if revieweeID == session.UserID {
		return nil, apperrors.ErrSelfReview.Clone()
	}
	if err := ratings.ValidateRating(req.Rating); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"rating": err.Error()})
	}

	categories, err := ratings.BuildCategoryRatings(session.Role, req.Categories)
	if err != nil {
		return nil, categoryError(err)
	}

	db = db.WithContext(ctx)

	// Одним запросом: получатель (обязателен) и автор (для письма)
	profiles, err := s.profileRepo.FindByIDs(db, []string{revieweeID, session.UserID})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	reviewee := profiles[revieweeID]
	if reviewee == nil {
		return nil, apperrors.ErrProfileNotFound.Clone()
	}

	review := &models.Review{
		ReviewerID:   session.UserID,
		RevieweeID:   revieweeID,
		ReviewerRole: session.Role,
		JobTitle:     jobTitle,
		Rating:       req.Rating,
		Review:       body,
		Categories:   categories,
	}

	if err := s.reviewRepo.Create(db, review); err != nil {
		logger.CtxWithError(ctx, "review insert failed", err, "reviewee_id", revieweeID)
		return nil, apperrors.WriteFailed(err, apperrors.DomainReview)
	}

	s.invalidate(ctx, revieweeID, session.UserID)
	if s.notifier != nil {
		s.notifier.ReviewReceived(reviewee, profiles[session.UserID], review)
	}

	logger.CtxInfo(ctx, "review submitted", "review_id", review.ID, "reviewee_id", revieweeID, "rating", review.Rating)

	enriched := ratings.Enrich(review, reviewee, session.Role, ratings.Given)
	return &enriched, nil
}

// ---------------- Collections ----------------

func (s *reviewService) ReceivedReviews(ctx context.Context, db *gorm.DB, userID string) (*dto.ReviewListResponse, error) {
	return s.collection(ctx, db, userID, ratings.Received)
}

func (s *reviewService) GivenReviews(ctx context.Context, db *gorm.DB, userID string) (*dto.ReviewListResponse, error) {
	return s.collection(ctx, db, userID, ratings.Given)
}

func (s *reviewService) collection(ctx context.Context, db *gorm.DB, userID string, dir ratings.Direction) (*dto.ReviewListResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewBadRequestError("user id is required")
	}

	key := cache.ReceivedReviewsKey(userID)
	if dir == ratings.Given {
		key = cache.GivenReviewsKey(userID)
	}

	// Поколение читаем до запроса в БД: снимок, собранный до новой записи,
	// ляжет под старым ключом и больше не будет прочитан.
	generation, cacheable := s.generation(ctx, userID)
	key = cache.Versioned(key, generation)

	if cacheable {
		var cached dto.ReviewListResponse
		if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
			logger.CtxWarn(ctx, "review cache read failed", "key", key, "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	db = db.WithContext(ctx)

	var (
		rows []models.Review
		err  error
	)
	if dir == ratings.Received {
		rows, err = s.reviewRepo.FindByReviewee(db, userID)
	} else {
		rows, err = s.reviewRepo.FindByReviewer(db, userID)
	}
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	// Ошибка поиска профилей не фатальна: строки получат запасные имя и аватар
	profiles, err := s.profileRepo.FindByIDs(db, ratings.LookupIDs(rows, dir))
	if err != nil {
		logger.CtxWarn(ctx, "profile lookup for reviews failed, using fallbacks", "user_id", userID, "error", err)
		profiles = map[string]*models.Profile{}
	}

	enriched := ratings.EnrichAll(rows, profiles, dir)
	resp := &dto.ReviewListResponse{
		Reviews:       enriched,
		AverageRating: ratings.Aggregate(enriched),
		Total:         len(enriched),
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
			logger.CtxWarn(ctx, "review cache write failed", "key", key, "error", err)
		}
	}
	return resp, nil
}

func (s *reviewService) RatingSummary(ctx context.Context, db *gorm.DB, userID string) (*dto.RatingSummaryResponse, error) {
	stats, err := s.reviewRepo.GetRatingStats(db.WithContext(ctx), userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &dto.RatingSummaryResponse{
		UserID:        userID,
		AverageRating: ratings.AggregateRatings(stats.Ratings),
		TotalReviews:  stats.TotalReviews,
		RatingCounts:  stats.RatingCounts,
	}, nil
}

// CategoryForm - категории для формы отзыва. Неизвестная роль получает набор тренера.
func (s *reviewService) CategoryForm(role models.UserRole) *dto.CategoryFormResponse {
	resolved := role
	if !ratings.KnownRole(resolved) {
		resolved = models.UserRoleTrainer
	}

	fields := make([]dto.CategoryField, 0, 5)
	for _, c := range ratings.CategoriesForRole(resolved) {
		fields = append(fields, dto.CategoryField{
			Key:         c.Key,
			Description: ratings.DescriptionFor(c.Key),
			Score:       c.Score,
		})
	}
	return &dto.CategoryFormResponse{Role: string(resolved), Categories: fields}
}

// generation - текущая метка поколения пользователя. false - кэш недоступен,
// коллекцию отдаем из БД без записи в кэш.
func (s *reviewService) generation(ctx context.Context, userID string) (string, bool) {
	var gen string
	if _, err := s.cache.Get(ctx, cache.ReviewsGenerationKey(userID), &gen); err != nil {
		logger.CtxWarn(ctx, "review cache generation read failed", "user_id", userID, "error", err)
		return "", false
	}
	return gen, true
}

// invalidate выдает получателю и автору новые поколения. Ключи без поколения
// удаляются тоже: их могли записать до первой инвалидации.
func (s *reviewService) invalidate(ctx context.Context, revieweeID, reviewerID string) {
	for _, userID := range []string{revieweeID, reviewerID} {
		if err := s.cache.Set(ctx, cache.ReviewsGenerationKey(userID), uuid.NewString(), 0); err != nil {
			logger.CtxWarn(ctx, "review cache generation bump failed", "user_id", userID, "error", err)
		}
		keys := []string{cache.ReceivedReviewsKey(userID), cache.GivenReviewsKey(userID)}
		if err := s.cache.Delete(ctx, keys...); err != nil {
			logger.CtxWarn(ctx, "review cache invalidation failed", "keys", keys, "error", err)
		}
	}
}

// requiredFields - поля, пустые после TrimSpace
func requiredFields(values map[string]string) map[string]string {
	missing := map[string]string{}
	for field, v := range values {
		if v == "" {
			missing[field] = "This field is required"
		}
	}
	return missing
}

func categoryError(err error) error {
	switch {
	case errors.Is(err, ratings.ErrUnknownRole):
		return apperrors.ErrInvalidUserRole.Clone()
	case errors.Is(err, ratings.ErrUnknownCategory), errors.Is(err, ratings.ErrCategoryOutOfRange):
		return apperrors.ValidationError(map[string]string{"categories": err.Error()})
	default:
		return apperrors.InternalError(err)
	}
}
