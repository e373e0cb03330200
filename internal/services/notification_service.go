package services

import (
	"context"
	"sync"
	"time"

	"trainertrust_backend/internal/email"
	"trainertrust_backend/internal/logger"
	"trainertrust_backend/internal/models"
)

const notifyTimeout = 15 * time.Second

// NotificationService отправляет письма-уведомления. Ошибки только логируются:
// уведомление никогда не ломает основной запрос.
type NotificationService interface {
	ReviewReceived(reviewee, reviewer *models.Profile, review *models.Review)
	ApplicationReceived(owner *models.Profile, trainer *models.Profile, job *models.Job)
	ApplicationStatusChanged(trainer *models.Profile, job *models.Job, status models.ApplicationStatus)
	MessageReceived(recipient, sender *models.Profile)
	// Wait дожидается уже запущенных уведомлений (graceful shutdown, тесты).
	// Отправка, зависшая дольше таймаута, бросается: Wait ее не ждет, а gomail
	// не дает оборвать начатую SMTP-сессию.
	Wait()
}

type notificationService struct {
	provider email.Provider
	appURL   string
	enabled  bool
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NotificationOption настраивает NotificationService
type NotificationOption func(*notificationService)

// WithSendTimeout - сколько ждать одно письмо. По умолчанию 15 секунд.
func WithSendTimeout(d time.Duration) NotificationOption {
	return func(s *notificationService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewNotificationService - provider == nil отключает уведомления
func NewNotificationService(provider email.Provider, appURL string, opts ...NotificationOption) NotificationService {
	s := &notificationService{
		provider: provider,
		appURL:   appURL,
		enabled:  provider != nil,
		timeout:  notifyTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *notificationService) ReviewReceived(reviewee, reviewer *models.Profile, review *models.Review) {
	if reviewee == nil || reviewee.Email == "" {
		return
	}
	s.send(reviewee.Email, "You received a new review", email.TemplateReviewReceived, email.TemplateData{
		"RecipientName": displayName(reviewee),
		"ReviewerName":  displayName(reviewer),
		"Rating":        review.Rating,
		"JobTitle":      review.JobTitle,
	})
}

func (s *notificationService) ApplicationReceived(owner *models.Profile, trainer *models.Profile, job *models.Job) {
	if owner == nil || owner.Email == "" {
		return
	}
	s.send(owner.Email, "New application for "+job.Title, email.TemplateApplicationReceived, email.TemplateData{
		"RecipientName": displayName(owner),
		"TrainerName":   displayName(trainer),
		"JobTitle":      job.Title,
		"JobID":         job.ID,
	})
}

func (s *notificationService) ApplicationStatusChanged(trainer *models.Profile, job *models.Job, status models.ApplicationStatus) {
	if trainer == nil || trainer.Email == "" {
		return
	}
	s.send(trainer.Email, "Your application status changed", email.TemplateApplicationStatus, email.TemplateData{
		"RecipientName": displayName(trainer),
		"JobTitle":      job.Title,
		"Status":        string(status),
	})
}

func (s *notificationService) MessageReceived(recipient, sender *models.Profile) {
	if recipient == nil || recipient.Email == "" {
		return
	}
	s.send(recipient.Email, "You have a new message", email.TemplateMessageReceived, email.TemplateData{
		"RecipientName": displayName(recipient),
		"SenderName":    displayName(sender),
	})
}

func (s *notificationService) Wait() {
	s.wg.Wait()
}

func (s *notificationService) send(to, subject, template string, data email.TemplateData) {
	if !s.enabled {
		return
	}
	data["AppURL"] = s.appURL

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		done := make(chan error, 1)
		go func() { done <- s.provider.SendTemplate([]string{to}, subject, template, data) }()

		select {
		case err := <-done:
			if err != nil {
				logger.Warn("notification failed", "template", template, "error", err)
				return
			}
			logger.Debug("notification sent", "template", template)
		case <-ctx.Done():
			logger.Warn("notification timed out, send abandoned", "template", template, "timeout", s.timeout)
		}
	}()
}

func displayName(p *models.Profile) string {
	if p == nil || p.Name == "" {
		return "Someone"
	}
	return p.Name
}
