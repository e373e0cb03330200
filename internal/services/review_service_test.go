package services_test

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"trainertrust_backend/internal/app"
	"trainertrust_backend/internal/auth"
	"trainertrust_backend/internal/cache"
	"trainertrust_backend/internal/email"
	"trainertrust_backend/internal/models"
	"trainertrust_backend/internal/ratings"
	"trainertrust_backend/internal/services"
	"trainertrust_backend/internal/services/dto"
	"trainertrust_backend/internal/testutil"
	"trainertrust_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type serviceEnv struct {
	db        *gorm.DB
	cache     *cache.MemoryCache
	mail      *app.MockEmailProvider
	container *services.ServiceContainer
}

func newServiceEnv(t *testing.T) *serviceEnv {
	t.Helper()
	mem := cache.NewMemoryCache()
	return newServiceEnvWithCache(t, mem, mem)
}

// newServiceEnvWithCache - сервисы работают через c, env.cache - хранилище под ним
func newServiceEnvWithCache(t *testing.T, c cache.Cache, mem *cache.MemoryCache) *serviceEnv {
	t.Helper()
	env := &serviceEnv{
		db:    testutil.NewTestDB(t),
		cache: mem,
		mail:  &app.MockEmailProvider{},
	}
	env.container = services.NewServiceContainer(services.Dependencies{
		Cache:         c,
		CacheTTL:      time.Minute,
		EmailProvider: env.mail,
		AppURL:        "http://localhost:5173",
	})
	t.Cleanup(env.container.NotificationService.Wait)
	return env
}

func sessionFor(p *models.Profile) *auth.Session {
	return &auth.Session{UserID: p.ID, Email: p.Email, Role: p.Role}
}

func assertAppError(t *testing.T, err error, status int) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	assert.Equal(t, status, appErr.HTTPCode, appErr.Error())
	return appErr
}

// valid - заполненный запрос, который проходит все проверки
func valid(revieweeID string, rating int) dto.SubmitReviewRequest {
	return dto.SubmitReviewRequest{
		RevieweeID: revieweeID,
		Rating:     rating,
		Review:     "Clear and well prepared",
		JobTitle:   "Go workshop",
	}
}

func withCategories(req dto.SubmitReviewRequest, categories map[string]int) dto.SubmitReviewRequest {
	req.Categories = categories
	return req
}

func TestReviewService_SubmitReview(t *testing.T) {
	ctx := context.Background()

	t.Run("company reviews trainer", func(t *testing.T) {
		env := newServiceEnv(t)
		company := testutil.CreateProfile(t, env.db, "Acme", models.UserRoleCompany)
		trainer := testutil.CreateProfile(t, env.db, "Tom", models.UserRoleTrainer)

		got, err := env.container.ReviewService.SubmitReview(ctx, env.db, sessionFor(company), &dto.SubmitReviewRequest{
			RevieweeID: trainer.ID,
			Rating:     4,
			Review:     "Great course",
			JobTitle:   "  Go workshop ",
			Categories: map[string]int{ratings.CategoryExpertise: 5, ratings.CategoryDelivery: 3},
		})
		require.NoError(t, err)

		assert.Equal(t, models.UserRoleCompany, got.ReviewerRole)
		assert.Equal(t, "Go workshop", got.JobTitle)
		assert.Equal(t, "Tom", got.RevieweeName)
		assert.Equal(t, map[string]int{
			ratings.CategoryExpertise:       5,
			ratings.CategoryCommunication:   0,
			ratings.CategoryProfessionalism: 0,
			ratings.CategoryCurriculum:      0,
			ratings.CategoryDelivery:        3,
		}, got.Categories)

		var rows int64
		require.NoError(t, env.db.Model(&models.ReviewCategoryRating{}).Where("review_id = ?", got.ID).Count(&rows).Error)
		assert.Equal(t, int64(5), rows)

		env.container.NotificationService.Wait()
		sent := env.mail.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, []string{trainer.Email}, sent[0].To)
		assert.Equal(t, email.TemplateReviewReceived, sent[0].Template)
		assert.Equal(t, "Acme", sent[0].Data["ReviewerName"])
	})

	t.Run("rejections", func(t *testing.T) {
		env := newServiceEnv(t)
		company := testutil.CreateProfile(t, env.db, "Acme", models.UserRoleCompany)
		trainer := testutil.CreateProfile(t, env.db, "Tom", models.UserRoleTrainer)
		noRole := testutil.CreateProfile(t, env.db, "Nobody", "")

		cases := []struct {
			name    string
			session *auth.Session
			req     dto.SubmitReviewRequest
			status  int
		}{
			{"no session", nil, valid(trainer.ID, 4), http.StatusUnauthorized},
			{"unknown role", sessionFor(noRole), valid(trainer.ID, 4), http.StatusBadRequest},
			{"self review", sessionFor(trainer), valid(trainer.ID, 4), http.StatusBadRequest},
			{"rating too low", sessionFor(company), valid(trainer.ID, 0), http.StatusBadRequest},
			{"rating too high", sessionFor(company), valid(trainer.ID, 6), http.StatusBadRequest},
			{"missing job title", sessionFor(company), dto.SubmitReviewRequest{
				RevieweeID: trainer.ID, Rating: 4, Review: "Solid",
			}, http.StatusBadRequest},
			{"blank review body", sessionFor(company), dto.SubmitReviewRequest{
				RevieweeID: trainer.ID, Rating: 4, JobTitle: "Go workshop", Review: "   ",
			}, http.StatusBadRequest},
			{"foreign category", sessionFor(company), withCategories(valid(trainer.ID, 4),
				map[string]int{ratings.CategoryPayment: 3}), http.StatusBadRequest},
			{"category out of range", sessionFor(company), withCategories(valid(trainer.ID, 4),
				map[string]int{ratings.CategoryExpertise: 9}), http.StatusBadRequest},
			{"missing reviewee", sessionFor(company), valid(uuid.NewString(), 4), http.StatusNotFound},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := tc.req
				_, err := env.container.ReviewService.SubmitReview(ctx, env.db, tc.session, &req)
				assertAppError(t, err, tc.status)
			})
		}

		var count int64
		require.NoError(t, env.db.Model(&models.Review{}).Count(&count).Error)
		assert.Zero(t, count, "rejected submissions must not write rows")
	})
}

func TestReviewService_ReceivedReviewsEnrichment(t *testing.T) {
	ctx := context.Background()
	env := newServiceEnv(t)

	trainer := testutil.CreateProfile(t, env.db, "Tom", models.UserRoleTrainer)
	company := testutil.CreateProfile(t, env.db, "Acme", models.UserRoleCompany)
	ghostID := uuid.NewString()

	testutil.CreateReview(t, env.db, company.ID, trainer.ID, models.UserRoleCompany, 5,
		map[string]int{ratings.CategoryExpertise: 4})
	// автор без профиля и без сохраненной роли
	testutil.CreateReview(t, env.db, ghostID, trainer.ID, "", 2, nil)

	resp, err := env.container.ReviewService.ReceivedReviews(ctx, env.db, trainer.ID)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.InDelta(t, 3.5, resp.AverageRating, 0.001)

	byReviewer := map[string]ratings.EnrichedReview{}
	for _, r := range resp.Reviews {
		byReviewer[r.ReviewerID] = r
	}

	known := byReviewer[company.ID]
	assert.Equal(t, "Acme", known.ReviewerName)
	assert.Equal(t, 4, known.Categories[ratings.CategoryExpertise])
	assert.Len(t, known.Categories, 5)

	ghost := byReviewer[ghostID]
	assert.Equal(t, ratings.UnknownUserName, ghost.ReviewerName)
	assert.Equal(t, ratings.PlaceholderAvatar, ghost.ReviewerAvatar)
	assert.Len(t, ghost.Categories, 5)
}

func TestReviewService_GivenReviews(t *testing.T) {
	ctx := context.Background()
	env := newServiceEnv(t)

	trainer := testutil.CreateProfile(t, env.db, "Tom", models.UserRoleTrainer)
	company := testutil.CreateProfile(t, env.db, "Acme", models.UserRoleCompany)
	testutil.CreateReview(t, env.db, trainer.ID, company.ID, models.UserRoleTrainer, 3,
		map[string]int{ratings.CategoryPayment: 1})

	resp, err := env.container.ReviewService.GivenReviews(ctx, env.db, trainer.ID)
	require.NoError(t, err)
	require.Len(t, resp.Reviews, 1)
	assert.Equal(t, "Acme", resp.Reviews[0].RevieweeName)
	assert.Empty(t, resp.Reviews[0].ReviewerName)
	assert.Equal(t, 1, resp.Reviews[0].Categories[ratings.CategoryPayment])

	empty, err := env.container.ReviewService.GivenReviews(ctx, env.db, company.ID)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.AverageRating)
	assert.NotNil(t, empty.Reviews)
}

func TestReviewService_CacheInvalidation(t *testing.T) {
	ctx := context.Background()
	env := newServiceEnv(t)

	trainer := testutil.CreateProfile(t, env.db, "Tom", models.UserRoleTrainer)
	company := testutil.CreateProfile(t, env.db, "Acme", models.UserRoleCompany)
	other := testutil.CreateProfile(t, env.db, "Beta", models.UserRoleCompany)

	testutil.CreateReview(t, env.db, company.ID, trainer.ID, models.UserRoleCompany, 5, nil)

	first, err := env.container.ReviewService.ReceivedReviews(ctx, env.db, trainer.ID)
	require.NoError(t, err)
	require.Equal(t, 1, first.Total)

	// запись в обход сервиса не видна, пока жив кэш
	testutil.CreateReview(t, env.db, other.ID, trainer.ID, models.UserRoleCompany, 1, nil)
	cached, err := env.container.ReviewService.ReceivedReviews(ctx, env.db, trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cached.Total)

	// отправка через сервис сбрасывает кэш получателя
	req := valid(trainer.ID, 3)
	_, err = env.container.ReviewService.SubmitReview(ctx, env.db, sessionFor(other), &req)
	require.NoError(t, err)

	fresh, err := env.container.ReviewService.ReceivedReviews(ctx, env.db, trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, fresh.Total)
	assert.InDelta(t, 3.0, fresh.AverageRating, 0.001)
}

// fillRacingCache перед первой записью коллекции "received" выполняет
// onFill: отзыв появляется между чтением из БД и записью в кэш.
type fillRacingCache struct {
	*cache.MemoryCache
	once   sync.Once
	onFill func()
}

func (c *fillRacingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if strings.HasPrefix(key, "reviews:received:") {
		c.once.Do(c.onFill)
	}
	return c.MemoryCache.Set(ctx, key, value, ttl)
}

func TestReviewService_SubmitDuringCacheFill(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache()
	racing := &fillRacingCache{MemoryCache: mem}
	env := newServiceEnvWithCache(t, racing, mem)

	trainer := testutil.CreateProfile(t, env.db, "Tom", models.UserRoleTrainer)
	company := testutil.CreateProfile(t, env.db, "Acme", models.UserRoleCompany)

	racing.onFill = func() {
		req := valid(trainer.ID, 5)
		_, err := env.container.ReviewService.SubmitReview(ctx, env.db, sessionFor(company), &req)
		require.NoError(t, err)
	}

	// снимок собран до отзыва
	first, err := env.container.ReviewService.ReceivedReviews(ctx, env.db, trainer.ID)
	require.NoError(t, err)
	assert.Zero(t, first.Total)

	second, err := env.container.ReviewService.ReceivedReviews(ctx, env.db, trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Total)

	given, err := env.container.ReviewService.GivenReviews(ctx, env.db, company.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, given.Total)
}

func TestReviewService_InsertRejectedByStore(t *testing.T) {
	ctx := context.Background()
	env := newServiceEnv(t)

	trainer := testutil.CreateProfile(t, env.db, "Tom", models.UserRoleTrainer)
	company := testutil.CreateProfile(t, env.db, "Acme", models.UserRoleCompany)

	_, err := env.container.ReviewService.ReceivedReviews(ctx, env.db, trainer.ID)
	require.NoError(t, err)

	// категории не сохранить - вставка отзыва должна откатиться целиком
	require.NoError(t, env.db.Migrator().DropTable(&models.ReviewCategoryRating{}))

	req := valid(trainer.ID, 4)
	_, err = env.container.ReviewService.SubmitReview(ctx, env.db, sessionFor(company), &req)
	appErr := assertAppError(t, err, http.StatusInternalServerError)
	assert.Equal(t, apperrors.CodeWriteFailed, appErr.Code)
	assert.Equal(t, apperrors.DomainReview, appErr.Domain)

	var rows int64
	require.NoError(t, env.db.Model(&models.Review{}).Count(&rows).Error)
	assert.Zero(t, rows)

	var gen string
	hit, err := env.cache.Get(ctx, cache.ReviewsGenerationKey(trainer.ID), &gen)
	require.NoError(t, err)
	assert.False(t, hit, "failed insert must not invalidate cached collections")

	var cached dto.ReviewListResponse
	hit, err = env.cache.Get(ctx, cache.ReceivedReviewsKey(trainer.ID), &cached)
	require.NoError(t, err)
	assert.True(t, hit)

	env.container.NotificationService.Wait()
	assert.Empty(t, env.mail.Sent())
}

func TestReviewService_RatingSummary(t *testing.T) {
	ctx := context.Background()
	env := newServiceEnv(t)

	trainer := testutil.CreateProfile(t, env.db, "Tom", models.UserRoleTrainer)
	a := testutil.CreateProfile(t, env.db, "A", models.UserRoleCompany)
	b := testutil.CreateProfile(t, env.db, "B", models.UserRoleCompany)
	testutil.CreateReview(t, env.db, a.ID, trainer.ID, models.UserRoleCompany, 5, nil)
	testutil.CreateReview(t, env.db, b.ID, trainer.ID, models.UserRoleCompany, 4, nil)

	summary, err := env.container.ReviewService.RatingSummary(ctx, env.db, trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, trainer.ID, summary.UserID)
	assert.Equal(t, int64(2), summary.TotalReviews)
	assert.InDelta(t, 4.5, summary.AverageRating, 0.001)
	assert.Equal(t, int64(1), summary.RatingCounts[5])
	assert.Equal(t, int64(1), summary.RatingCounts[4])
	assert.Equal(t, int64(0), summary.RatingCounts[1])
}

func TestReviewService_CategoryForm(t *testing.T) {
	env := newServiceEnv(t)

	company := env.container.ReviewService.CategoryForm(models.UserRoleCompany)
	assert.Equal(t, "company", company.Role)
	require.Len(t, company.Categories, 5)
	assert.Equal(t, ratings.CategoryExpertise, company.Categories[0].Key)
	assert.Equal(t, "Subject matter expertise", company.Categories[0].Description)

	unknown := env.container.ReviewService.CategoryForm("admin")
	assert.Equal(t, "trainer", unknown.Role)
	require.Len(t, unknown.Categories, 5)
	for _, c := range unknown.Categories {
		assert.Zero(t, c.Score)
	}
	assert.Equal(t, ratings.CategoryPayment, unknown.Categories[4].Key)
}
