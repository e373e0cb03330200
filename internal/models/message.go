package models

import "time"

type Message struct {
	BaseModel
	SenderID    string     `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID string     `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Body        string     `gorm:"not null" json:"body"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

// AllModels - список моделей для AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&Profile{},
		&Job{},
		&JobApplication{},
		&Review{},
		&ReviewCategoryRating{},
		&Message{},
	}
}
