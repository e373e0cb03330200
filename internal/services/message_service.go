package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"trainertrust_backend/internal/auth"
	"trainertrust_backend/internal/models"
	"trainertrust_backend/internal/repositories"
	"trainertrust_backend/internal/services/dto"
	"trainertrust_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MessageService interface {
	Send(ctx context.Context, db *gorm.DB, session *auth.Session, req *dto.SendMessageRequest) (*models.Message, error)
	Thread(ctx context.Context, db *gorm.DB, session *auth.Session, otherUserID string) ([]models.Message, error)
	Inbox(ctx context.Context, db *gorm.DB, session *auth.Session) (*dto.InboxResponse, error)
	MarkRead(ctx context.Context, db *gorm.DB, session *auth.Session, messageID string) error
}

type messageService struct {
	messageRepo repositories.MessageRepository
	profileRepo repositories.ProfileRepository
	notifier    NotificationService
	now         func() time.Time
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	profileRepo repositories.ProfileRepository,
	notifier NotificationService,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (s *messageService) Send(ctx context.Context, db *gorm.DB, session *auth.Session, req *dto.SendMessageRequest) (*models.Message, error) {
	recipientID := strings.TrimSpace(req.RecipientID)
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, apperrors.ValidationError(map[string]string{"body": "This field is required"})
	}
	if recipientID == session.UserID {
		return nil, apperrors.ErrCannotModifySelf.Clone()
	}

	db = db.WithContext(ctx)

	profiles, err := s.profileRepo.FindByIDs(db, []string{recipientID, session.UserID})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	recipient := profiles[recipientID]
	if recipient == nil {
		return nil, apperrors.ErrProfileNotFound.Clone()
	}

	msg := &models.Message{SenderID: session.UserID, RecipientID: recipientID, Body: body}
	if err := s.messageRepo.Create(db, msg); err != nil {
		return nil, apperrors.WriteFailed(err, "message")
	}

	if s.notifier != nil {
		s.notifier.MessageReceived(recipient, profiles[session.UserID])
	}
	return msg, nil
}

// Thread - переписка двух пользователей в хронологическом порядке
func (s *messageService) Thread(ctx context.Context, db *gorm.DB, session *auth.Session, otherUserID string) ([]models.Message, error) {
	messages, err := s.messageRepo.FindThread(db.WithContext(ctx), session.UserID, otherUserID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return messages, nil
}

func (s *messageService) Inbox(ctx context.Context, db *gorm.DB, session *auth.Session) (*dto.InboxResponse, error) {
	db = db.WithContext(ctx)

	messages, err := s.messageRepo.FindInbox(db, session.UserID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	unread, err := s.messageRepo.CountUnread(db, session.UserID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &dto.InboxResponse{Messages: messages, UnreadCount: unread}, nil
}

func (s *messageService) MarkRead(ctx context.Context, db *gorm.DB, session *auth.Session, messageID string) error {
	err := s.messageRepo.MarkRead(db.WithContext(ctx), messageID, session.UserID, s.now().UTC())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrMessageNotFound):
		return apperrors.ErrMessageNotFound.Clone()
	default:
		return apperrors.WriteFailed(err, "message")
	}
}
