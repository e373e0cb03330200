package repositories

import (
	"errors"
	"time"

	"trainertrust_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	Create(db *gorm.DB, msg *models.Message) error
	// FindThread - переписка двух пользователей в хронологическом порядке
	FindThread(db *gorm.DB, userA, userB string) ([]models.Message, error)
	FindInbox(db *gorm.DB, recipientID string) ([]models.Message, error)
	CountUnread(db *gorm.DB, recipientID string) (int64, error)
	MarkRead(db *gorm.DB, id, recipientID string, at time.Time) error
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, msg *models.Message) error {
	return db.Create(msg).Error
}

func (r *MessageRepositoryImpl) FindThread(db *gorm.DB, userA, userB string) ([]models.Message, error) {
	var messages []models.Message
	err := db.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) FindInbox(db *gorm.DB, recipientID string) ([]models.Message, error) {
	var messages []models.Message
	err := db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) CountUnread(db *gorm.DB, recipientID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Count(&count).Error
	return count, err
}

// MarkRead помечает сообщение прочитанным. Повторный вызов не меняет read_at.
func (r *MessageRepositoryImpl) MarkRead(db *gorm.DB, id, recipientID string, at time.Time) error {
	var msg models.Message
	if err := db.Where("id = ? AND recipient_id = ?", id, recipientID).First(&msg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	if msg.ReadAt != nil {
		return nil
	}
	return db.Model(&msg).Update("read_at", at).Error
}
