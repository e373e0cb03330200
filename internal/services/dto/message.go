package dto

import "trainertrust_backend/internal/models"

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Body        string `json:"body" validate:"required,max=5000"`
}

type InboxResponse struct {
	Messages    []models.Message `json:"messages"`
	UnreadCount int64            `json:"unread_count"`
}
