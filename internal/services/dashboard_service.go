package services

import (
	"context"

	"trainertrust_backend/internal/auth"
	"trainertrust_backend/internal/models"
	"trainertrust_backend/internal/ratings"
	"trainertrust_backend/internal/repositories"
	"trainertrust_backend/internal/services/dto"
	"trainertrust_backend/pkg/apperrors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type DashboardService interface {
	Stats(ctx context.Context, db *gorm.DB, session *auth.Session) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	analyticsRepo repositories.AnalyticsRepository
	jobRepo       repositories.JobRepository
	reviewRepo    repositories.ReviewRepository
	messageRepo   repositories.MessageRepository
}

func NewDashboardService(
	analyticsRepo repositories.AnalyticsRepository,
	jobRepo repositories.JobRepository,
	reviewRepo repositories.ReviewRepository,
	messageRepo repositories.MessageRepository,
) DashboardService {
	return &dashboardService{
		analyticsRepo: analyticsRepo,
		jobRepo:       jobRepo,
		reviewRepo:    reviewRepo,
		messageRepo:   messageRepo,
	}
}

// Stats собирает статистику независимыми запросами параллельно.
// Первая ошибка отменяет остальные запросы через контекст группы.
func (s *dashboardService) Stats(ctx context.Context, db *gorm.DB, session *auth.Session) (*dto.DashboardResponse, error) {
	if !session.Role.IsKnown() {
		return nil, apperrors.ErrInvalidUserRole.Clone()
	}

	g, gctx := errgroup.WithContext(ctx)
	gdb := db.WithContext(gctx)
	userID := session.UserID

	var (
		byStatus     map[models.ApplicationStatus]int64
		stats        *repositories.RatingStats
		reviewsGiven int64
		unread       int64
		jobsPosted   int64
	)

	g.Go(func() (err error) {
		if session.Role == models.UserRoleCompany {
			byStatus, err = s.analyticsRepo.CountApplicationsByStatusForCompany(gdb, userID)
		} else {
			byStatus, err = s.analyticsRepo.CountApplicationsByStatusForTrainer(gdb, userID)
		}
		return err
	})
	g.Go(func() (err error) {
		stats, err = s.reviewRepo.GetRatingStats(gdb, userID)
		return err
	})
	g.Go(func() (err error) {
		reviewsGiven, err = s.analyticsRepo.CountReviewsGiven(gdb, userID)
		return err
	})
	g.Go(func() (err error) {
		unread, err = s.messageRepo.CountUnread(gdb, userID)
		return err
	})
	if session.Role == models.UserRoleCompany {
		g.Go(func() (err error) {
			jobsPosted, err = s.jobRepo.CountByCompany(gdb, userID)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	var totalApplications int64
	for _, n := range byStatus {
		totalApplications += n
	}

	resp := &dto.DashboardResponse{
		Role:                 session.Role,
		ApplicationsByStatus: byStatus,
		AverageRating:        ratings.AggregateRatings(stats.Ratings),
		ReviewsReceived:      stats.TotalReviews,
		ReviewsGiven:         reviewsGiven,
		UnreadMessages:       unread,
	}
	if session.Role == models.UserRoleCompany {
		resp.JobsPosted = &jobsPosted
		resp.ApplicationsReceived = &totalApplications
	} else {
		resp.ApplicationsSent = &totalApplications
	}
	return resp, nil
}
